package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Channel indicates how the order was placed.
type Channel string

const (
	ChannelOnline Channel = "ONLINE"
	ChannelPOS    Channel = "POS"
)

// Item is a single line within an order. Name and price are captured at
// purchase time and never re-read from the product record.
type Item struct {
	ProductID uuid.UUID   `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Paise `json:"unit_price"`
	LineTotal money.Paise `json:"line_total"`
}

// CustomerDetails is the shipping/contact bundle collected at checkout.
type CustomerDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Order is a completed purchase, created once at checkout or sale completion.
// Only its status is ever mutated afterwards.
type Order struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`
	// InvoiceNumber is the short label printed on POS receipts. It is
	// derived from the sale timestamp and may recur; OrderNumber stays the
	// unique lookup key.
	InvoiceNumber   string           `json:"invoice_number,omitempty"`
	Channel         Channel          `json:"channel"`
	Status          Status           `json:"status"`
	Items           []Item           `json:"items"`
	Subtotal        money.Paise      `json:"subtotal"`
	Shipping        money.Paise      `json:"shipping"`
	Tax             money.Paise      `json:"tax"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	Discount        money.Paise      `json:"discount"`
	Total           money.Paise      `json:"total"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentRef      string           `json:"payment_ref,omitempty"`
	CustomerID      *uuid.UUID       `json:"customer_id,omitempty"`
	CustomerDetails *CustomerDetails `json:"customer_details,omitempty"`
	CashierName     string           `json:"cashier_name,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SalesSummary aggregates orders over a period for reporting.
type SalesSummary struct {
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	OrderCount int                    `json:"order_count"`
	Revenue    money.Paise            `json:"revenue"`
	ByMethod   map[string]money.Paise `json:"by_method"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
