package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Line is one product entry in a user's storefront cart. Name, price and
// stock are snapshots taken when the product was added; the stock value is
// the ceiling quantity updates are clamped against.
type Line struct {
	UserID    uuid.UUID   `json:"-"`
	ProductID uuid.UUID   `json:"product_id"`
	Name      string      `json:"name"`
	Price     money.Paise `json:"price"`
	Stock     int         `json:"stock"`
	Quantity  int         `json:"quantity"`
	ImageURL  string      `json:"image_url,omitempty"`
	AddedAt   time.Time   `json:"added_at"`
}

// LineTotal is the line's price times quantity.
func (l *Line) LineTotal() money.Paise {
	return l.Price.Mul(l.Quantity)
}

// Cart is a user's current cart with its subtotal.
type Cart struct {
	Items    []*Line     `json:"items"`
	Subtotal money.Paise `json:"subtotal"`
}

// WishlistItem is a saved product reference without a quantity.
type WishlistItem struct {
	UserID    uuid.UUID   `json:"-"`
	ProductID uuid.UUID   `json:"product_id"`
	Name      string      `json:"name"`
	Price     money.Paise `json:"price"`
	ImageURL  string      `json:"image_url,omitempty"`
	AddedAt   time.Time   `json:"added_at"`
}
