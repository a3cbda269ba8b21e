package order

import (
	"context"
	"time"
)

// Repository defines data access for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// List returns orders newest first, optionally filtered by channel and status.
	List(ctx context.Context, channel Channel, status Status, limit int) ([]*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Summary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}
