package pos

import (
	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// PaymentMethod represents how a counter sale was paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Line is one product entry in a POS cart. Stock is the ceiling recorded
// when the product was added; quantity updates are clamped against it.
type Line struct {
	ProductID uuid.UUID   `json:"product_id"`
	Name      string      `json:"name"`
	Price     money.Paise `json:"price"`
	Stock     int         `json:"stock"`
	Quantity  int         `json:"quantity"`
}

// LineTotal is the line's price times quantity.
func (l *Line) LineTotal() money.Paise {
	return l.Price.Mul(l.Quantity)
}

// Totals is the computed billing breakdown for a cart.
type Totals struct {
	Subtotal        money.Paise `json:"subtotal"`
	Tax             money.Paise `json:"tax"`
	DiscountPercent int         `json:"discount_percent"`
	Discount        money.Paise `json:"discount"`
	Total           money.Paise `json:"total"`
}

// CartView is the serializable snapshot of a cashier's current sale.
type CartView struct {
	Items         []Line        `json:"items"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Totals        Totals        `json:"totals"`
}
