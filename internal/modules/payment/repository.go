package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists payment attempt records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByOrderRef(ctx context.Context, orderRef string) (*Record, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, paymentID, lastError string) error
	List(ctx context.Context, limit int) ([]Record, error)
}
