package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samytrends/retail-api/internal/modules/catalog"
	"github.com/samytrends/retail-api/internal/modules/order"
)

// Service defines the POS billing business logic. Each cashier has one live
// cart keyed by their user id.
type Service interface {
	Cart(cashierID string) CartView
	AddLine(ctx context.Context, cashierID, productID string) (CartView, error)
	AdjustQuantity(cashierID, productID string, delta int) (CartView, error)
	RemoveLine(cashierID, productID string) (CartView, error)
	SetDiscount(cashierID string, percent int) CartView
	SelectPayment(cashierID string, method string) (CartView, error)
	// CompleteSale persists the sale as a PAID order and decrements stock.
	// It fails when no payment method is selected or the cart is empty, and
	// a persistence failure is returned to the operator rather than
	// swallowed. The cart is reset only by an explicit NewSale.
	CompleteSale(ctx context.Context, cashierID, cashierName string) (*order.Order, error)
	NewSale(cashierID string)
	// Receipt renders the printable receipt for a completed sale. Lookup is
	// by order id; the invoice label on the receipt is not unique.
	Receipt(ctx context.Context, orderID string) (string, error)
	// History lists counter sales newest first, filtered by invoice number,
	// order number or payment method.
	History(ctx context.Context, search string, limit int) ([]*order.Order, error)
}

type service struct {
	sessions *sessionStore
	products catalog.Repository
	orders   order.Repository
	logger   *zap.Logger
}

// NewService creates a new POS service.
func NewService(products catalog.Repository, orders order.Repository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		sessions: newSessionStore(),
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

func (s *service) Cart(cashierID string) CartView {
	return s.sessions.cart(cashierID).View()
}

func (s *service) AddLine(ctx context.Context, cashierID, productID string) (CartView, error) {
	cart := s.sessions.cart(cashierID)
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return cart.View(), fmt.Errorf("product not found: %w", err)
	}
	if p.Stock == 0 {
		return cart.View(), fmt.Errorf("%s is out of stock", p.Name)
	}
	cart.AddLine(p)
	return cart.View(), nil
}

func (s *service) AdjustQuantity(cashierID, productID string, delta int) (CartView, error) {
	cart := s.sessions.cart(cashierID)
	pid, err := uuid.Parse(productID)
	if err != nil {
		return cart.View(), fmt.Errorf("invalid product id: %w", err)
	}
	cart.AdjustQuantity(pid, delta)
	return cart.View(), nil
}

func (s *service) RemoveLine(cashierID, productID string) (CartView, error) {
	cart := s.sessions.cart(cashierID)
	pid, err := uuid.Parse(productID)
	if err != nil {
		return cart.View(), fmt.Errorf("invalid product id: %w", err)
	}
	cart.RemoveLine(pid)
	return cart.View(), nil
}

func (s *service) SetDiscount(cashierID string, percent int) CartView {
	cart := s.sessions.cart(cashierID)
	cart.SetDiscount(percent)
	return cart.View()
}

func (s *service) SelectPayment(cashierID string, method string) (CartView, error) {
	cart := s.sessions.cart(cashierID)
	m := PaymentMethod(strings.ToLower(method))
	if !cart.SelectPayment(m) {
		return cart.View(), fmt.Errorf("invalid payment method: %s (allowed: cash, upi, card)", method)
	}
	return cart.View(), nil
}

func (s *service) CompleteSale(ctx context.Context, cashierID, cashierName string) (*order.Order, error) {
	cart := s.sessions.cart(cashierID)
	lines, method, totals := cart.snapshot()

	if method == "" {
		return nil, fmt.Errorf("payment method not selected")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	items := make([]order.Item, len(lines))
	for i, l := range lines {
		items[i] = order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			LineTotal: l.LineTotal(),
		}
	}

	now := time.Now()
	o := &order.Order{
		ID:              uuid.New(),
		OrderNumber:     order.GenerateOrderNumber(),
		InvoiceNumber:   generateInvoiceNumber(),
		Channel:         order.ChannelPOS,
		Status:          order.StatusPaid,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		DiscountPercent: totals.DiscountPercent,
		Discount:        totals.Discount,
		Total:           totals.Total,
		PaymentMethod:   string(method),
		CashierName:     cashierName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	// The sale is durable at this point; a stock write that fails is logged
	// and reconciled through the stock ledger rather than failing the sale.
	for _, l := range lines {
		p, err := s.products.GetByID(ctx, l.ProductID.String())
		if err != nil {
			s.logger.Warn("stock decrement skipped", zap.String("product_id", l.ProductID.String()), zap.Error(err))
			continue
		}
		newStock := p.Stock - l.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := s.products.SetStock(ctx, l.ProductID.String(), newStock); err != nil {
			s.logger.Warn("stock decrement failed", zap.String("product_id", l.ProductID.String()), zap.Error(err))
		}
	}

	s.logger.Info("sale completed",
		zap.String("invoice", o.InvoiceNumber),
		zap.String("order_number", o.OrderNumber),
		zap.String("cashier", cashierName),
		zap.String("method", string(method)),
		zap.String("total", o.Total.String()))
	return o, nil
}

func (s *service) NewSale(cashierID string) {
	s.sessions.cart(cashierID).Reset()
}

func (s *service) Receipt(ctx context.Context, orderID string) (string, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("sale not found: %w", err)
	}
	return renderReceipt(o)
}

func (s *service) History(ctx context.Context, search string, limit int) ([]*order.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	orders, err := s.orders.List(ctx, order.ChannelPOS, "", limit)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return orders, nil
	}
	needle := strings.ToLower(search)
	var out []*order.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.InvoiceNumber), needle) ||
			strings.Contains(strings.ToLower(o.OrderNumber), needle) ||
			strings.Contains(strings.ToLower(o.PaymentMethod), needle) {
			out = append(out, o)
		}
	}
	return out, nil
}

// generateInvoiceNumber creates the short invoice label printed on the
// receipt from the last six digits of the current epoch milliseconds:
// INV-123456. The label recurs over time, so it is never used as a lookup
// key; that is what OrderNumber is for.
func generateInvoiceNumber() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	return "INV-" + ms[len(ms)-6:]
}
