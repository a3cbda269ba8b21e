package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// fixtureRepo is the in-memory demo catalog used when no database is wired
// up. It satisfies the same Repository contract as the PostgreSQL store.
type fixtureRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
}

// NewFixtureRepository creates a repository seeded with the demo catalog.
func NewFixtureRepository() Repository {
	r := &fixtureRepo{products: make(map[uuid.UUID]*Product)}
	for _, seed := range fixtureProducts() {
		r.products[seed.ID] = seed
	}
	return r
}

func fixtureProducts() []*Product {
	now := time.Now()
	seeds := []struct {
		name     string
		category string
		price    int64
		stock    int
		minStock int
		sku      string
	}{
		{"Wireless Earbuds Pro", "Electronics", 2999, 45, 10, "SKU-001"},
		{"Smart Watch Elite", "Electronics", 8999, 8, 15, "SKU-002"},
		{"Designer Handbag", "Accessories", 4599, 0, 5, "SKU-003"},
		{"Premium Running Shoes", "Sports", 3499, 56, 20, "SKU-004"},
		{"Formal Cotton Shirt", "Clothing", 1299, 89, 30, "SKU-005"},
		{"LED Desk Lamp", "Home & Living", 899, 5, 10, "SKU-006"},
		{"Bluetooth Speaker", "Electronics", 1599, 34, 15, "SKU-007"},
		{"Leather Wallet", "Accessories", 799, 0, 10, "SKU-008"},
		{"Yoga Mat Premium", "Sports", 999, 28, 10, "SKU-009"},
		{"Casual Polo T-Shirt", "Clothing", 699, 112, 25, "SKU-010"},
		{"Ceramic Vase", "Home & Living", 1299, 20, 8, "SKU-011"},
		{"Lipstick Set", "Beauty", 1499, 65, 20, "SKU-012"},
	}
	products := make([]*Product, 0, len(seeds))
	for _, s := range seeds {
		products = append(products, &Product{
			ID:        uuid.New(),
			Name:      s.name,
			Category:  s.category,
			Price:     money.FromRupeeInt(s.price),
			Stock:     s.stock,
			MinStock:  s.minStock,
			SKU:       s.sku,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products
}

func (r *fixtureRepo) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fixtureRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[uid]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *fixtureRepo) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	r.mu.RLock()
	var out []*Product
	search := strings.ToLower(filter.Search)
	for _, p := range r.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		switch filter.SortBy {
		case "price":
			return out[i].Price < out[j].Price
		case "stock":
			return out[i].Stock < out[j].Stock
		default:
			return out[i].Name < out[j].Name
		}
	})

	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fixtureRepo) Update(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return fmt.Errorf("product %s not found", p.ID)
	}
	cp := *p
	if cp.Stock < 0 {
		cp.Stock = 0
	}
	cp.UpdatedAt = time.Now()
	r.products[p.ID] = &cp
	return nil
}

func (r *fixtureRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, uid)
	return nil
}

func (r *fixtureRepo) SetStock(ctx context.Context, id string, stock int) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}
	if stock < 0 {
		stock = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[uid]
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}
