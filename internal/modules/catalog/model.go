package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Categories is the fixed set the storefront and admin views filter by.
var Categories = []string{
	"Electronics", "Clothing", "Accessories", "Home & Living", "Sports", "Beauty",
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Product is a sellable item. Stock never goes below zero; adjustments are
// clamped at the repository boundary.
type Product struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Price     money.Paise `json:"price"`
	Stock     int         `json:"stock"`
	MinStock  int         `json:"min_stock"`
	SKU       string      `json:"sku,omitempty"`
	ImageURL  string      `json:"image_url,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// StockStatus summarises a product's stock level against its threshold.
type StockStatus string

const (
	StockOut StockStatus = "out-of-stock"
	StockLow StockStatus = "low-stock"
	StockIn  StockStatus = "in-stock"
)

// Status derives the stock status from the current count and threshold.
func (p *Product) Status() StockStatus {
	switch {
	case p.Stock == 0:
		return StockOut
	case p.Stock <= p.MinStock:
		return StockLow
	default:
		return StockIn
	}
}

// ListFilter narrows and orders a product listing.
type ListFilter struct {
	Search   string // matches name or SKU, case-insensitive
	Category string
	SortBy   string // name | price | stock (default name)
	Limit    int
	Offset   int
}
