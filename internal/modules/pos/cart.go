package pos

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/samytrends/retail-api/internal/money"
	"github.com/samytrends/retail-api/internal/modules/catalog"
)

// taxRate is the fixed 18% GST applied to every counter sale.
var taxRate = decimal.NewFromInt(18)

// Cart holds the state of one in-person sale: an ordered set of lines, a
// discount percentage and the selected payment method. All amounts are
// integer paise; tax and discount round half-up to whole rupees, matching
// the counter display.
type Cart struct {
	mu              sync.Mutex
	lines           []*Line
	discountPercent int
	paymentMethod   PaymentMethod
}

// NewCart returns an empty cart.
func NewCart() *Cart { return &Cart{} }

// AddLine puts one unit of the product in the cart. An existing line is
// incremented only while the new quantity stays at or under the stock
// ceiling recorded when the product was added; otherwise nothing changes.
func (c *Cart) AddLine(p *catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if l.ProductID == p.ID {
			if l.Quantity < l.Stock {
				l.Quantity++
			}
			return
		}
	}
	c.lines = append(c.lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Quantity:  1,
	})
}

// AdjustQuantity applies a delta to a line's quantity. A result of zero or
// less removes the line; a result above the stock ceiling is rejected and
// the line is left unchanged. Returns false when nothing was applied.
func (c *Cart) AdjustQuantity(productID uuid.UUID, delta int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ProductID != productID {
			continue
		}
		newQty := l.Quantity + delta
		if newQty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
		if newQty > l.Stock {
			return false
		}
		l.Quantity = newQty
		return true
	}
	return false
}

// RemoveLine deletes a line unconditionally. Removing an absent line is a
// no-op.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetDiscount stores the discount percentage, clamped to [0, 100].
func (c *Cart) SetDiscount(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.mu.Lock()
	c.discountPercent = percent
	c.mu.Unlock()
}

// SelectPayment records the chosen payment method.
func (c *Cart) SelectPayment(m PaymentMethod) bool {
	if !ValidPaymentMethod(m) {
		return false
	}
	c.mu.Lock()
	c.paymentMethod = m
	c.mu.Unlock()
	return true
}

// Totals computes the billing breakdown:
//
//	subtotal = Σ price × quantity
//	tax      = round(subtotal × 18%)   to whole rupees
//	discount = round(subtotal × pct%)  to whole rupees
//	total    = subtotal + tax − discount
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalsLocked()
}

func (c *Cart) totalsLocked() Totals {
	var subtotal money.Paise
	for _, l := range c.lines {
		subtotal += l.LineTotal()
	}
	tax := subtotal.PercentToRupee(taxRate)
	discount := subtotal.PercentToRupee(decimal.NewFromInt(int64(c.discountPercent)))
	return Totals{
		Subtotal:        subtotal,
		Tax:             tax,
		DiscountPercent: c.discountPercent,
		Discount:        discount,
		Total:           subtotal + tax - discount,
	}
}

// View returns a serializable snapshot of the cart.
func (c *Cart) View() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Line, len(c.lines))
	for i, l := range c.lines {
		items[i] = *l
	}
	return CartView{
		Items:         items,
		PaymentMethod: c.paymentMethod,
		Totals:        c.totalsLocked(),
	}
}

// Reset clears the lines, discount and payment method for a new sale.
func (c *Cart) Reset() {
	c.mu.Lock()
	c.lines = nil
	c.discountPercent = 0
	c.paymentMethod = ""
	c.mu.Unlock()
}

// snapshot returns copies of the lines plus the current method and totals.
func (c *Cart) snapshot() ([]Line, PaymentMethod, Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]Line, len(c.lines))
	for i, l := range c.lines {
		items[i] = *l
	}
	return items, c.paymentMethod, c.totalsLocked()
}
