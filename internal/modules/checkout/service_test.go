package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samytrends/retail-api/internal/modules/cart"
	"github.com/samytrends/retail-api/internal/modules/order"
	"github.com/samytrends/retail-api/internal/modules/payment"
	"github.com/samytrends/retail-api/internal/modules/user"
	"github.com/samytrends/retail-api/internal/money"
)

type fakeCarts struct {
	cart    *cart.Cart
	cleared bool
}

func (f *fakeCarts) GetCart(_ context.Context, _ string) (*cart.Cart, error) { return f.cart, nil }
func (f *fakeCarts) AddItem(_ context.Context, _, _ string) (*cart.Cart, error) {
	return nil, errors.New("not used")
}
func (f *fakeCarts) SetQuantity(_ context.Context, _, _ string, _ int) (*cart.Cart, error) {
	return nil, errors.New("not used")
}
func (f *fakeCarts) RemoveItem(_ context.Context, _, _ string) (*cart.Cart, error) {
	return nil, errors.New("not used")
}
func (f *fakeCarts) ClearCart(_ context.Context, _ string) error {
	f.cleared = true
	return nil
}
func (f *fakeCarts) GetWishlist(_ context.Context, _ string) ([]*cart.WishlistItem, error) {
	return nil, nil
}
func (f *fakeCarts) ToggleWishlist(_ context.Context, _, _ string) ([]*cart.WishlistItem, error) {
	return nil, nil
}
func (f *fakeCarts) ClearWishlist(_ context.Context, _ string) error { return nil }

type fakeOrderRepo struct {
	created []*order.Order
	fail    bool
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	if f.fail {
		return errors.New("insert failed")
	}
	f.created = append(f.created, o)
	return nil
}
func (f *fakeOrderRepo) GetByID(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not used")
}
func (f *fakeOrderRepo) GetByNumber(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not used")
}
func (f *fakeOrderRepo) List(_ context.Context, _ order.Channel, _ order.Status, _ int) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByCustomer(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) UpdateStatus(_ context.Context, _ string, _ order.Status) error { return nil }
func (f *fakeOrderRepo) Summary(_ context.Context, _, _ time.Time) (*order.SalesSummary, error) {
	return nil, nil
}

type fakeUserRepo struct {
	recorded money.Paise
}

func (f *fakeUserRepo) CreateUser(_ context.Context, _ *user.User) error { return nil }
func (f *fakeUserRepo) GetUserByID(_ context.Context, _ string) (*user.User, error) {
	return nil, errors.New("not used")
}
func (f *fakeUserRepo) GetUserByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, errors.New("not used")
}
func (f *fakeUserRepo) ListUsers(_ context.Context) ([]*user.User, error) { return nil, nil }
func (f *fakeUserRepo) UpdateUser(_ context.Context, _ *user.User) error  { return nil }
func (f *fakeUserRepo) UpdateRole(_ context.Context, _ string, _ user.Role) error {
	return nil
}
func (f *fakeUserRepo) RecordOrder(_ context.Context, _ string, amount money.Paise) error {
	f.recorded += amount
	return nil
}

type fakePayments struct {
	confirmErr error
}

func (f *fakePayments) Initiate(_ context.Context, amount money.Paise, _ string, _ map[string]string) (*payment.CheckoutSession, error) {
	return &payment.CheckoutSession{KeyID: "rzp_test_key", OrderRef: "order_abc", Amount: amount, Currency: "INR"}, nil
}
func (f *fakePayments) Confirm(_ context.Context, orderRef, paymentID, _ string) (*payment.Record, error) {
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &payment.Record{OrderRef: orderRef, PaymentID: paymentID, Status: payment.StatusPaid}, nil
}
func (f *fakePayments) List(_ context.Context, _ int) ([]payment.Record, error) { return nil, nil }

func testCart(subtotalRupees int64) *cart.Cart {
	line := &cart.Line{
		ProductID: uuid.New(),
		Name:      "Classic Denim Jacket",
		Price:     money.FromRupeeInt(subtotalRupees),
		Stock:     10,
		Quantity:  1,
	}
	return &cart.Cart{Items: []*cart.Line{line}, Subtotal: line.LineTotal()}
}

func validDetails() ShippingDetails {
	return ShippingDetails{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	}
}

func TestQuoteShippingRules(t *testing.T) {
	empty := quoteCart(&cart.Cart{Items: []*cart.Line{}})
	assert.Equal(t, money.Paise(0), empty.Shipping)
	assert.Equal(t, money.Paise(0), empty.Total)

	small := quoteCart(testCart(500))
	assert.Equal(t, money.FromRupeeInt(100), small.Shipping)

	large := quoteCart(testCart(1500))
	assert.Equal(t, money.Paise(0), large.Shipping)
}

func TestQuoteTaxKeepsPaisePrecision(t *testing.T) {
	q := quoteCart(&cart.Cart{
		Items:    []*cart.Line{{Quantity: 1}},
		Subtotal: money.FromRupeeInt(6897),
	})
	// 18% of 6897.00 is 1241.46, carried at paisa precision.
	assert.Equal(t, money.Paise(124146), q.Tax)
}

func TestPlaceCODOrderPersistsAndClearsCart(t *testing.T) {
	carts := &fakeCarts{cart: testCart(500)}
	orders := &fakeOrderRepo{}
	users := &fakeUserRepo{}
	svc := newTestService(carts, orders, users, &fakePayments{})

	customerID := uuid.New().String()
	o, err := svc.PlaceCODOrder(context.Background(), customerID, validDetails())
	require.NoError(t, err)

	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.ChannelOnline, o.Channel)
	assert.Equal(t, "cod", o.PaymentMethod)
	assert.Equal(t, customerID, o.CustomerID.String())
	require.NotNil(t, o.CustomerDetails)
	assert.Equal(t, "Priya Sharma", o.CustomerDetails.FullName)

	require.Len(t, orders.created, 1)
	assert.True(t, carts.cleared)
	assert.Equal(t, o.Total, users.recorded)
	assert.False(t, o.CreatedAt.IsZero())
	assert.False(t, o.UpdatedAt.IsZero())
}

func TestPlaceCODOrderRejectsBadPhone(t *testing.T) {
	carts := &fakeCarts{cart: testCart(500)}
	orders := &fakeOrderRepo{}
	svc := newTestService(carts, orders, &fakeUserRepo{}, &fakePayments{})

	details := validDetails()
	details.Phone = "987654321" // nine digits

	_, err := svc.PlaceCODOrder(context.Background(), uuid.New().String(), details)
	require.Error(t, err)

	var fields ValidationErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "phone")
	assert.Empty(t, orders.created)
	assert.False(t, carts.cleared)
}

func TestPlaceCODOrderRejectsEmptyCart(t *testing.T) {
	carts := &fakeCarts{cart: &cart.Cart{Items: []*cart.Line{}}}
	svc := newTestService(carts, &fakeOrderRepo{}, &fakeUserRepo{}, &fakePayments{})

	_, err := svc.PlaceCODOrder(context.Background(), uuid.New().String(), validDetails())
	assert.EqualError(t, err, "cart is empty")
}

func TestRazorpayCheckoutFlow(t *testing.T) {
	carts := &fakeCarts{cart: testCart(500)}
	orders := &fakeOrderRepo{}
	users := &fakeUserRepo{}
	svc := newTestService(carts, orders, users, &fakePayments{})

	customerID := uuid.New().String()
	intent, err := svc.BeginPayment(context.Background(), customerID, validDetails())
	require.NoError(t, err)
	assert.Equal(t, "order_abc", intent.Session.OrderRef)
	assert.Equal(t, intent.Quote.Total, intent.Session.Amount)
	assert.Empty(t, orders.created)

	o, err := svc.ConfirmPayment(context.Background(), customerID, "order_abc", "pay_123", "sig")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, o.Status)
	assert.Equal(t, "razorpay", o.PaymentMethod)
	assert.Equal(t, "pay_123", o.PaymentRef)
	require.Len(t, orders.created, 1)
	assert.True(t, carts.cleared)
}

func TestBeginPaymentEvictsAbandonedCheckouts(t *testing.T) {
	carts := &fakeCarts{cart: testCart(500)}
	svc := newTestService(carts, &fakeOrderRepo{}, &fakeUserRepo{}, &fakePayments{}).(*service)

	// An abandoned checkout whose shopper never confirmed.
	stale := uuid.New().String()
	svc.mu.Lock()
	svc.pending["order_stale"] = &pendingCheckout{
		userID:    stale,
		createdAt: time.Now().Add(-pendingTTL - time.Minute),
	}
	svc.mu.Unlock()

	customerID := uuid.New().String()
	_, err := svc.BeginPayment(context.Background(), customerID, validDetails())
	require.NoError(t, err)

	svc.mu.Lock()
	_, staleKept := svc.pending["order_stale"]
	_, freshKept := svc.pending["order_abc"]
	svc.mu.Unlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)

	_, err = svc.ConfirmPayment(context.Background(), stale, "order_stale", "pay_123", "sig")
	assert.EqualError(t, err, "checkout session not found")
}

func TestConfirmPaymentRejectsUnknownSession(t *testing.T) {
	svc := newTestService(&fakeCarts{cart: testCart(500)}, &fakeOrderRepo{}, &fakeUserRepo{}, &fakePayments{})

	_, err := svc.ConfirmPayment(context.Background(), uuid.New().String(), "order_missing", "pay_123", "sig")
	assert.EqualError(t, err, "checkout session not found")
}

func TestConfirmPaymentSurfacesVerificationFailure(t *testing.T) {
	carts := &fakeCarts{cart: testCart(500)}
	orders := &fakeOrderRepo{}
	payments := &fakePayments{confirmErr: errors.New("payment signature verification failed")}
	svc := newTestService(carts, orders, &fakeUserRepo{}, payments)

	customerID := uuid.New().String()
	_, err := svc.BeginPayment(context.Background(), customerID, validDetails())
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), customerID, "order_abc", "pay_123", "bogus")
	assert.EqualError(t, err, "payment signature verification failed")
	assert.Empty(t, orders.created)
	assert.False(t, carts.cleared)
}

func newTestService(carts cart.Service, orders order.Repository, users user.Repository, payments payment.Service) Service {
	return NewService(carts, orders, users, payments, nil)
}
