package catalog

import "context"

// Repository defines the interface for product data storage. Two variants
// exist: the PostgreSQL store and an in-memory fixture catalog for demo
// deployments; callers cannot tell them apart.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	// SetStock writes an absolute stock count, clamped to zero.
	SetStock(ctx context.Context, id string, stock int) error
}
