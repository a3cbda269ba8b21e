package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Provider represents a supported payment route.
type Provider string

const (
	ProviderRazorpay Provider = "razorpay"
	ProviderCOD      Provider = "cod"
)

// Status represents the lifecycle of a payment attempt.
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

// Record is the provider-agnostic trace of one payment attempt.
type Record struct {
	ID        uuid.UUID   `json:"id"`
	Provider  Provider    `json:"provider"`
	OrderRef  string      `json:"order_ref"`
	PaymentID string      `json:"payment_id,omitempty"`
	Amount    money.Paise `json:"amount"`
	Status    Status      `json:"status"`
	LastError string      `json:"last_error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CheckoutSession is what the storefront needs to open the hosted widget:
// the key, the gateway order reference and the amount in minor units.
type CheckoutSession struct {
	KeyID    string      `json:"key_id"`
	OrderRef string      `json:"order_ref"`
	Amount   money.Paise `json:"amount"`
	Currency string      `json:"currency"`
}
