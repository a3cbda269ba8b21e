package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/modules/catalog"
)

// Service defines stock management business logic.
type Service interface {
	// Adjust applies a manual add/remove movement and appends a ledger entry.
	Adjust(ctx context.Context, productID string, req AdjustRequest, actor string) (*HistoryEntry, error)
	// QuickAdjust applies a +n/-n edit from the stock table without a reason.
	QuickAdjust(ctx context.Context, productID string, delta int, actor string) (*HistoryEntry, error)
	History(ctx context.Context, productID string, limit int) ([]*HistoryEntry, error)
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	products catalog.Repository
	ledger   Repository
}

// NewService creates a new stock service.
func NewService(products catalog.Repository, ledger Repository) Service {
	return &service{products: products, ledger: ledger}
}

func (s *service) Adjust(ctx context.Context, productID string, req AdjustRequest, actor string) (*HistoryEntry, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero")
	}
	t := AdjustmentType(req.Type)
	if t != AdjustAdd && t != AdjustRemove {
		return nil, fmt.Errorf("invalid adjustment type: %s (allowed: add, remove)", req.Type)
	}

	delta := req.Quantity
	if t == AdjustRemove {
		delta = -req.Quantity
	}
	reason := req.Reason
	if reason == "" {
		if t == AdjustAdd {
			reason = "Stock added"
		} else {
			reason = "Stock removed"
		}
	}
	return s.apply(ctx, productID, delta, t, req.Quantity, reason, actor)
}

func (s *service) QuickAdjust(ctx context.Context, productID string, delta int, actor string) (*HistoryEntry, error) {
	if delta == 0 {
		return nil, fmt.Errorf("delta must be non-zero")
	}
	t := AdjustAdd
	qty := delta
	if delta < 0 {
		t = AdjustRemove
		qty = -delta
	}
	return s.apply(ctx, productID, delta, t, qty, "Quick update", actor)
}

func (s *service) apply(ctx context.Context, productID string, delta int, t AdjustmentType, qty int, reason, actor string) (*HistoryEntry, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	// Stock never goes negative; removals past zero are clamped.
	newStock := p.Stock + delta
	if newStock < 0 {
		newStock = 0
	}
	if err := s.products.SetStock(ctx, productID, newStock); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	entry := &HistoryEntry{
		ID:            uuid.New(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		Type:          t,
		Quantity:      qty,
		PreviousStock: p.Stock,
		NewStock:      newStock,
		Reason:        reason,
		Actor:         actor,
	}
	if err := s.ledger.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record stock movement: %w", err)
	}
	return entry, nil
}

func (s *service) History(ctx context.Context, productID string, limit int) ([]*HistoryEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.ledger.List(ctx, productID, limit)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	// High enough to cover the whole catalog; stats over a truncated list
	// would silently undercount.
	products, err := s.products.List(ctx, catalog.ListFilter{Limit: 10000})
	if err != nil {
		return nil, err
	}
	stats := &Stats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalStock += p.Stock
		switch p.Status() {
		case catalog.StockLow:
			stats.LowStock++
		case catalog.StockOut:
			stats.OutOfStock++
		}
	}
	return stats, nil
}
