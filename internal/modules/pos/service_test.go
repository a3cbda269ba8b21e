package pos

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/modules/order"
	"github.com/samytrends/retail-api/internal/money"
)

type fakeCatalog struct {
	products map[uuid.UUID]*catalog.Product
	stocks   map[uuid.UUID]int
}

func newFakeCatalog(products ...*catalog.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[uuid.UUID]*catalog.Product{}, stocks: map[uuid.UUID]int{}}
	for _, p := range products {
		f.products[p.ID] = p
		f.stocks[p.ID] = p.Stock
	}
	return f
}

func (f *fakeCatalog) Create(_ context.Context, _ *catalog.Product) error { return nil }
func (f *fakeCatalog) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := f.products[pid]
	if !ok {
		return nil, errors.New("product not found")
	}
	cp := *p
	cp.Stock = f.stocks[pid]
	return &cp, nil
}
func (f *fakeCatalog) List(_ context.Context, _ catalog.ListFilter) ([]*catalog.Product, error) {
	return nil, nil
}
func (f *fakeCatalog) Update(_ context.Context, _ *catalog.Product) error { return nil }
func (f *fakeCatalog) Delete(_ context.Context, _ string) error           { return nil }
func (f *fakeCatalog) SetStock(_ context.Context, id string, stock int) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	f.stocks[pid] = stock
	return nil
}

type fakeOrders struct {
	created []*order.Order
	fail    bool
}

func (f *fakeOrders) Create(_ context.Context, o *order.Order) error {
	if f.fail {
		return errors.New("insert failed")
	}
	f.created = append(f.created, o)
	return nil
}
func (f *fakeOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	for _, o := range f.created {
		if o.ID.String() == id {
			return o, nil
		}
	}
	return nil, errors.New("order not found")
}
func (f *fakeOrders) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	for _, o := range f.created {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, errors.New("order not found")
}
func (f *fakeOrders) List(_ context.Context, channel order.Channel, _ order.Status, _ int) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range f.created {
		if o.Channel == channel {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrders) ListByCustomer(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrders) UpdateStatus(_ context.Context, _ string, _ order.Status) error { return nil }
func (f *fakeOrders) Summary(_ context.Context, _, _ time.Time) (*order.SalesSummary, error) {
	return nil, nil
}

func newSale(t *testing.T) (Service, *fakeCatalog, *fakeOrders, *catalog.Product) {
	t.Helper()
	jacket := product("Classic Denim Jacket", 2999, 10)
	products := newFakeCatalog(jacket)
	orders := &fakeOrders{}
	svc := NewService(products, orders, nil)
	return svc, products, orders, jacket
}

func TestCompleteSaleRequiresPaymentMethod(t *testing.T) {
	svc, _, orders, jacket := newSale(t)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)

	_, err = svc.CompleteSale(context.Background(), "c1", "Asha")
	assert.EqualError(t, err, "payment method not selected")
	assert.Empty(t, orders.created)
}

func TestCompleteSaleRequiresItems(t *testing.T) {
	svc, _, orders, _ := newSale(t)

	_, err := svc.SelectPayment("c1", "cash")
	require.NoError(t, err)

	_, err = svc.CompleteSale(context.Background(), "c1", "Asha")
	assert.EqualError(t, err, "cart is empty")
	assert.Empty(t, orders.created)
}

func TestCompleteSalePersistsPaidOrder(t *testing.T) {
	svc, products, orders, jacket := newSale(t)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)
	_, err = svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)
	_, err = svc.SelectPayment("c1", "upi")
	require.NoError(t, err)

	o, err := svc.CompleteSale(context.Background(), "c1", "Asha")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))
	assert.True(t, strings.HasPrefix(o.InvoiceNumber, "INV-"))
	assert.Len(t, o.InvoiceNumber, 10)
	assert.Equal(t, order.ChannelPOS, o.Channel)
	assert.Equal(t, order.StatusPaid, o.Status)
	assert.Equal(t, "upi", o.PaymentMethod)
	assert.Equal(t, "Asha", o.CashierName)
	assert.Equal(t, money.FromRupeeInt(5998), o.Subtotal)
	assert.False(t, o.CreatedAt.IsZero())
	assert.False(t, o.UpdatedAt.IsZero())
	require.Len(t, orders.created, 1)

	// Stock dropped by the quantity sold.
	assert.Equal(t, 8, products.stocks[jacket.ID])

	// Completing a sale does not reset the cart; NewSale does.
	assert.NotEmpty(t, svc.Cart("c1").Items)
	svc.NewSale("c1")
	assert.Empty(t, svc.Cart("c1").Items)
}

func TestCompleteSaleSurfacesWriteFailure(t *testing.T) {
	jacket := product("Classic Denim Jacket", 2999, 10)
	products := newFakeCatalog(jacket)
	orders := &fakeOrders{fail: true}
	svc := NewService(products, orders, nil)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)
	_, err = svc.SelectPayment("c1", "cash")
	require.NoError(t, err)

	_, err = svc.CompleteSale(context.Background(), "c1", "Asha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save sale")

	// Stock untouched and the cart kept so the operator can retry.
	assert.Equal(t, 10, products.stocks[jacket.ID])
	assert.NotEmpty(t, svc.Cart("c1").Items)
}

func TestCartsAreIsolatedPerCashier(t *testing.T) {
	svc, _, _, jacket := newSale(t)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)

	assert.NotEmpty(t, svc.Cart("c1").Items)
	assert.Empty(t, svc.Cart("c2").Items)
}

func TestReceiptRendersSale(t *testing.T) {
	svc, _, _, jacket := newSale(t)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)
	_, err = svc.SelectPayment("c1", "cash")
	require.NoError(t, err)

	o, err := svc.CompleteSale(context.Background(), "c1", "Asha")
	require.NoError(t, err)

	receipt, err := svc.Receipt(context.Background(), o.ID.String())
	require.NoError(t, err)

	assert.Contains(t, receipt, "SAMY TRENDS")
	assert.Contains(t, receipt, o.InvoiceNumber)
	assert.Contains(t, receipt, "Classic Denim Jacket")
	assert.Contains(t, receipt, "Paid by : cash")
}

func TestReceiptResolvesByIDWhenInvoiceLabelsCollide(t *testing.T) {
	shirt := product("Linen Shirt", 1499, 5)
	scarf := product("Silk Scarf", 899, 5)
	products := newFakeCatalog(shirt, scarf)
	orders := &fakeOrders{}
	svc := NewService(products, orders, nil)

	sell := func(cashierID string, p *catalog.Product) *order.Order {
		t.Helper()
		_, err := svc.AddLine(context.Background(), cashierID, p.ID.String())
		require.NoError(t, err)
		_, err = svc.SelectPayment(cashierID, "cash")
		require.NoError(t, err)
		o, err := svc.CompleteSale(context.Background(), cashierID, "Asha")
		require.NoError(t, err)
		return o
	}

	first := sell("c1", shirt)
	second := sell("c2", scarf)

	// The invoice label is a timestamp suffix and can repeat between
	// sales. Receipts must still resolve to the right order.
	second.InvoiceNumber = first.InvoiceNumber
	require.NotEqual(t, first.ID, second.ID)
	require.NotEqual(t, first.OrderNumber, second.OrderNumber)

	r1, err := svc.Receipt(context.Background(), first.ID.String())
	require.NoError(t, err)
	r2, err := svc.Receipt(context.Background(), second.ID.String())
	require.NoError(t, err)

	assert.Contains(t, r1, "Linen Shirt")
	assert.NotContains(t, r1, "Silk Scarf")
	assert.Contains(t, r2, "Silk Scarf")
	assert.NotContains(t, r2, "Linen Shirt")
}

func TestHistoryFiltersByInvoiceAndMethod(t *testing.T) {
	svc, _, _, jacket := newSale(t)

	_, err := svc.AddLine(context.Background(), "c1", jacket.ID.String())
	require.NoError(t, err)
	_, err = svc.SelectPayment("c1", "cash")
	require.NoError(t, err)
	o, err := svc.CompleteSale(context.Background(), "c1", "Asha")
	require.NoError(t, err)

	all, err := svc.History(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	byInvoice, err := svc.History(context.Background(), o.InvoiceNumber, 0)
	require.NoError(t, err)
	assert.Len(t, byInvoice, 1)

	byMethod, err := svc.History(context.Background(), "cash", 0)
	require.NoError(t, err)
	assert.Len(t, byMethod, 1)

	none, err := svc.History(context.Background(), "upi", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
