package stock

import "context"

// Repository defines data access for the stock movement ledger.
type Repository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	List(ctx context.Context, productID string, limit int) ([]*HistoryEntry, error)
}
