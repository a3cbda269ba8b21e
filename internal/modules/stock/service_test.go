package stock

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/money"
)

type memoryLedger struct {
	entries []*HistoryEntry
}

func (l *memoryLedger) Append(_ context.Context, e *HistoryEntry) error {
	l.entries = append(l.entries, e)
	return nil
}

func (l *memoryLedger) List(_ context.Context, productID string, limit int) ([]*HistoryEntry, error) {
	var out []*HistoryEntry
	for i := len(l.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.entries[i]
		if productID == "" || e.ProductID.String() == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func findProduct(t *testing.T, repo catalog.Repository, search string) *catalog.Product {
	t.Helper()
	products, err := repo.List(context.Background(), catalog.ListFilter{Search: search})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	return products[0]
}

func TestAdjustAddAndRemove(t *testing.T) {
	repo := catalog.NewFixtureRepository()
	ledger := &memoryLedger{}
	svc := NewService(repo, ledger)

	mat := findProduct(t, repo, "Yoga Mat") // 28 in stock

	entry, err := svc.Adjust(context.Background(), mat.ID.String(), AdjustRequest{Type: "add", Quantity: 12}, "admin@samytrends.com")
	require.NoError(t, err)
	assert.Equal(t, AdjustAdd, entry.Type)
	assert.Equal(t, 28, entry.PreviousStock)
	assert.Equal(t, 40, entry.NewStock)
	assert.Equal(t, "Stock added", entry.Reason)
	assert.Equal(t, "admin@samytrends.com", entry.Actor)

	entry, err = svc.Adjust(context.Background(), mat.ID.String(), AdjustRequest{Type: "remove", Quantity: 15, Reason: "Damaged batch"}, "admin@samytrends.com")
	require.NoError(t, err)
	assert.Equal(t, 40, entry.PreviousStock)
	assert.Equal(t, 25, entry.NewStock)
	assert.Equal(t, "Damaged batch", entry.Reason)

	updated, err := repo.GetByID(context.Background(), mat.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Stock)
	assert.Len(t, ledger.entries, 2)
}

func TestAdjustRemoveClampsAtZero(t *testing.T) {
	repo := catalog.NewFixtureRepository()
	svc := NewService(repo, &memoryLedger{})

	lamp := findProduct(t, repo, "LED Desk Lamp") // 5 in stock

	entry, err := svc.Adjust(context.Background(), lamp.ID.String(), AdjustRequest{Type: "remove", Quantity: 50}, "admin@samytrends.com")
	require.NoError(t, err)
	assert.Equal(t, 5, entry.PreviousStock)
	assert.Equal(t, 0, entry.NewStock)

	updated, err := repo.GetByID(context.Background(), lamp.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
}

func TestAdjustValidation(t *testing.T) {
	repo := catalog.NewFixtureRepository()
	svc := NewService(repo, &memoryLedger{})
	mat := findProduct(t, repo, "Yoga Mat")

	_, err := svc.Adjust(context.Background(), mat.ID.String(), AdjustRequest{Type: "add", Quantity: 0}, "a")
	assert.EqualError(t, err, "quantity must be greater than zero")

	_, err = svc.Adjust(context.Background(), mat.ID.String(), AdjustRequest{Type: "transfer", Quantity: 5}, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid adjustment type")
}

func TestQuickAdjust(t *testing.T) {
	repo := catalog.NewFixtureRepository()
	ledger := &memoryLedger{}
	svc := NewService(repo, ledger)
	mat := findProduct(t, repo, "Yoga Mat")

	entry, err := svc.QuickAdjust(context.Background(), mat.ID.String(), -3, "cashier@samytrends.com")
	require.NoError(t, err)
	assert.Equal(t, AdjustRemove, entry.Type)
	assert.Equal(t, 3, entry.Quantity)
	assert.Equal(t, "Quick update", entry.Reason)

	_, err = svc.QuickAdjust(context.Background(), mat.ID.String(), 0, "cashier@samytrends.com")
	assert.EqualError(t, err, "delta must be non-zero")
}

func TestStatsCountsStockLevels(t *testing.T) {
	repo := catalog.NewFixtureRepository()
	svc := NewService(repo, &memoryLedger{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	// The demo catalog ships two out-of-stock and two low-stock products.
	assert.Equal(t, 12, stats.TotalProducts)
	assert.Equal(t, 2, stats.OutOfStock)
	assert.Equal(t, 2, stats.LowStock)
}

// pagedCatalog serves a fixed product list and honours ListFilter.Limit the
// way the SQL repository does.
type pagedCatalog struct {
	catalog.Repository
	products []*catalog.Product
}

func (c *pagedCatalog) List(_ context.Context, filter catalog.ListFilter) ([]*catalog.Product, error) {
	out := c.products
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func TestStatsCoverWholeCatalog(t *testing.T) {
	repo := &pagedCatalog{}
	for i := 0; i < 250; i++ {
		repo.products = append(repo.products, &catalog.Product{
			ID:       uuid.New(),
			Name:     fmt.Sprintf("Item %03d", i),
			Category: "Clothing",
			Price:    money.FromRupeeInt(100),
			Stock:    3,
			MinStock: 10,
		})
	}
	svc := NewService(repo, &memoryLedger{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250, stats.TotalProducts)
	assert.Equal(t, 250, stats.LowStock)
	assert.Equal(t, 750, stats.TotalStock)
}
