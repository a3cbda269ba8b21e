package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/money"
)

func product(name string, priceRupees int64, stock int) *catalog.Product {
	return &catalog.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: money.FromRupeeInt(priceRupees),
		Stock: stock,
	}
}

func TestTotalsWithoutDiscount(t *testing.T) {
	jacket := product("Classic Denim Jacket", 2999, 10)
	tee := product("Graphic Tee", 899, 10)

	c := NewCart()
	c.AddLine(jacket)
	c.AddLine(jacket)
	c.AddLine(tee)

	totals := c.Totals()
	assert.Equal(t, money.FromRupeeInt(6897), totals.Subtotal)
	// 18% of 6897.00 is 1241.46, rounded to the whole rupee.
	assert.Equal(t, money.FromRupeeInt(1241), totals.Tax)
	assert.Equal(t, money.Paise(0), totals.Discount)
	assert.Equal(t, money.FromRupeeInt(8138), totals.Total)
}

func TestTotalsWithDiscount(t *testing.T) {
	jacket := product("Classic Denim Jacket", 2999, 10)
	tee := product("Graphic Tee", 899, 10)

	c := NewCart()
	c.AddLine(jacket)
	c.AddLine(jacket)
	c.AddLine(tee)
	c.SetDiscount(10)

	totals := c.Totals()
	assert.Equal(t, money.FromRupeeInt(6897), totals.Subtotal)
	assert.Equal(t, money.FromRupeeInt(1241), totals.Tax)
	assert.Equal(t, 10, totals.DiscountPercent)
	// 10% of 6897.00 is 689.70, rounded up to 690.
	assert.Equal(t, money.FromRupeeInt(690), totals.Discount)
	assert.Equal(t, money.FromRupeeInt(7448), totals.Total)
}

func TestAddLineRespectsStockCeiling(t *testing.T) {
	scarf := product("Silk Scarf", 450, 2)

	c := NewCart()
	c.AddLine(scarf)
	c.AddLine(scarf)
	c.AddLine(scarf) // past the ceiling, ignored

	view := c.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestAdjustQuantity(t *testing.T) {
	scarf := product("Silk Scarf", 450, 5)

	c := NewCart()
	c.AddLine(scarf)

	assert.True(t, c.AdjustQuantity(scarf.ID, 3))
	assert.Equal(t, 4, c.View().Items[0].Quantity)

	// Past the ceiling: rejected, quantity unchanged.
	assert.False(t, c.AdjustQuantity(scarf.ID, 5))
	assert.Equal(t, 4, c.View().Items[0].Quantity)

	// Down to zero removes the line.
	assert.True(t, c.AdjustQuantity(scarf.ID, -4))
	assert.Empty(t, c.View().Items)

	// Absent line.
	assert.False(t, c.AdjustQuantity(scarf.ID, 1))
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	scarf := product("Silk Scarf", 450, 5)

	c := NewCart()
	c.AddLine(scarf)
	c.RemoveLine(scarf.ID)
	c.RemoveLine(scarf.ID)

	assert.Empty(t, c.View().Items)
}

func TestSetDiscountClamps(t *testing.T) {
	c := NewCart()
	c.AddLine(product("Silk Scarf", 100, 5))

	c.SetDiscount(-10)
	assert.Equal(t, 0, c.Totals().DiscountPercent)

	c.SetDiscount(150)
	assert.Equal(t, 100, c.Totals().DiscountPercent)
	assert.Equal(t, money.FromRupeeInt(100), c.Totals().Discount)
}

func TestSelectPaymentValidatesMethod(t *testing.T) {
	c := NewCart()
	assert.True(t, c.SelectPayment(PaymentCash))
	assert.True(t, c.SelectPayment(PaymentUPI))
	assert.True(t, c.SelectPayment(PaymentCard))
	assert.False(t, c.SelectPayment("cheque"))
}

func TestResetClearsEverything(t *testing.T) {
	c := NewCart()
	c.AddLine(product("Silk Scarf", 450, 5))
	c.SetDiscount(10)
	c.SelectPayment(PaymentCash)

	c.Reset()

	view := c.View()
	assert.Empty(t, view.Items)
	assert.Equal(t, PaymentMethod(""), view.PaymentMethod)
	assert.Equal(t, money.Paise(0), view.Totals.Subtotal)
}
