package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/samytrends/retail-api/internal/modules/cart"
	"github.com/samytrends/retail-api/internal/modules/order"
	"github.com/samytrends/retail-api/internal/modules/payment"
	"github.com/samytrends/retail-api/internal/modules/user"
	"github.com/samytrends/retail-api/internal/money"
)

var taxRate = decimal.NewFromInt(18)

// Shipping is free above this subtotal, otherwise a flat fee applies.
var (
	freeShippingAbove = money.FromRupeeInt(1000)
	shippingFee       = money.FromRupeeInt(100)
)

// PaymentIntent is the response to a razorpay checkout: the hosted widget
// session plus the quote the amount was derived from.
type PaymentIntent struct {
	Session *payment.CheckoutSession `json:"session"`
	Quote   *Quote                   `json:"quote"`
}

// Service defines the online checkout flow. Razorpay checkouts are two-step:
// BeginPayment opens a gateway order, ConfirmPayment verifies the callback
// and persists the order. Cash on delivery persists immediately as PENDING.
type Service interface {
	Quote(ctx context.Context, userID string) (*Quote, error)
	BeginPayment(ctx context.Context, userID string, details ShippingDetails) (*PaymentIntent, error)
	ConfirmPayment(ctx context.Context, userID, orderRef, paymentID, signature string) (*order.Order, error)
	PlaceCODOrder(ctx context.Context, userID string, details ShippingDetails) (*order.Order, error)
}

// pendingCheckout holds the cart snapshot between BeginPayment and
// ConfirmPayment, keyed by the gateway order reference.
type pendingCheckout struct {
	userID    string
	details   ShippingDetails
	items     []order.Item
	quote     *Quote
	createdAt time.Time
}

// pendingTTL bounds how long an unconfirmed razorpay checkout is kept. A
// shopper who abandons the hosted widget never calls ConfirmPayment, so
// stale entries are swept on the next BeginPayment.
const pendingTTL = 30 * time.Minute

type service struct {
	carts    cart.Service
	orders   order.Repository
	users    user.Repository
	payments payment.Service
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingCheckout
}

// NewService creates a new checkout service.
func NewService(carts cart.Service, orders order.Repository, users user.Repository, payments payment.Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		carts:    carts,
		orders:   orders,
		users:    users,
		payments: payments,
		logger:   logger,
		pending:  map[string]*pendingCheckout{},
	}
}

func (s *service) Quote(ctx context.Context, userID string) (*Quote, error) {
	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return quoteCart(c), nil
}

// quoteCart prices a cart: shipping is zero on an empty cart and above the
// free-shipping threshold, and tax is kept at paisa precision.
func quoteCart(c *cart.Cart) *Quote {
	q := &Quote{
		Subtotal:   c.Subtotal,
		TaxPercent: 18,
		Tax:        c.Subtotal.Percent(taxRate),
	}
	if len(c.Items) > 0 && c.Subtotal <= freeShippingAbove {
		q.Shipping = shippingFee
	}
	q.Total = q.Subtotal + q.Shipping + q.Tax
	return q
}

func (s *service) BeginPayment(ctx context.Context, userID string, details ShippingDetails) (*PaymentIntent, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, errors.New("cart is empty")
	}
	quote := quoteCart(c)

	session, err := s.payments.Initiate(ctx, quote.Total, order.GenerateOrderNumber(), map[string]string{
		"customer": details.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start payment: %w", err)
	}

	s.mu.Lock()
	s.sweepPending(time.Now())
	s.pending[session.OrderRef] = &pendingCheckout{
		userID:    userID,
		details:   details,
		items:     orderItems(c),
		quote:     quote,
		createdAt: time.Now(),
	}
	s.mu.Unlock()

	return &PaymentIntent{Session: session, Quote: quote}, nil
}

// sweepPending drops checkouts older than pendingTTL. Callers hold s.mu.
func (s *service) sweepPending(now time.Time) {
	for ref, pc := range s.pending {
		if now.Sub(pc.createdAt) > pendingTTL {
			delete(s.pending, ref)
			s.logger.Info("abandoned checkout evicted", zap.String("order_ref", ref))
		}
	}
}

func (s *service) ConfirmPayment(ctx context.Context, userID, orderRef, paymentID, signature string) (*order.Order, error) {
	s.mu.Lock()
	pc, ok := s.pending[orderRef]
	s.mu.Unlock()
	if !ok || pc.userID != userID {
		return nil, errors.New("checkout session not found")
	}

	rec, err := s.payments.Confirm(ctx, orderRef, paymentID, signature)
	if err != nil {
		return nil, err
	}

	o, err := s.persistOrder(ctx, pc, order.StatusPaid, "razorpay", rec.PaymentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.pending, orderRef)
	s.mu.Unlock()
	return o, nil
}

func (s *service) PlaceCODOrder(ctx context.Context, userID string, details ShippingDetails) (*order.Order, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	pc := &pendingCheckout{
		userID:  userID,
		details: details,
		items:   orderItems(c),
		quote:   quoteCart(c),
	}
	return s.persistOrder(ctx, pc, order.StatusPending, "cod", "")
}

func (s *service) persistOrder(ctx context.Context, pc *pendingCheckout, status order.Status, method, paymentRef string) (*order.Order, error) {
	customerID, err := uuid.Parse(pc.userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	now := time.Now()
	o := &order.Order{
		ID:            uuid.New(),
		OrderNumber:   order.GenerateOrderNumber(),
		Channel:       order.ChannelOnline,
		Status:        status,
		Items:         pc.items,
		Subtotal:      pc.quote.Subtotal,
		Shipping:      pc.quote.Shipping,
		Tax:           pc.quote.Tax,
		Total:         pc.quote.Total,
		PaymentMethod: method,
		PaymentRef:    paymentRef,
		CustomerID:    &customerID,
		CustomerDetails: &order.CustomerDetails{
			FullName: pc.details.FullName,
			Email:    pc.details.Email,
			Phone:    pc.details.Phone,
			Address:  pc.details.Address,
			City:     pc.details.City,
			State:    pc.details.State,
			Pincode:  pc.details.Pincode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	// The order is durable; cleanup failures are logged, not surfaced.
	if err := s.carts.ClearCart(ctx, pc.userID); err != nil {
		s.logger.Warn("cart clear failed", zap.String("user_id", pc.userID), zap.Error(err))
	}
	if err := s.users.RecordOrder(ctx, pc.userID, o.Total); err != nil {
		s.logger.Warn("customer stats update failed", zap.String("user_id", pc.userID), zap.Error(err))
	}

	s.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("method", method),
		zap.String("total", o.Total.String()))
	return o, nil
}

func orderItems(c *cart.Cart) []order.Item {
	items := make([]order.Item, len(c.Items))
	for i, l := range c.Items {
		items[i] = order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			LineTotal: l.LineTotal(),
		}
	}
	return items
}
