package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samytrends/retail-api/internal/config"
	"github.com/samytrends/retail-api/internal/money"
)

// Gateway abstracts the hosted payment provider so checkout can be
// exercised against a fake in tests.
type Gateway interface {
	// CreateOrder registers the amount with the provider and returns
	// the provider's order reference.
	CreateOrder(ctx context.Context, amount money.Paise, receipt string, notes map[string]string) (string, error)
	// VerifySignature checks the callback signature the widget hands back
	// after a successful payment.
	VerifySignature(orderRef, paymentID, signature string) bool
	// KeyID is the publishable key the storefront embeds in the widget.
	KeyID() string
}

type razorpayGateway struct {
	client    *resty.Client
	keyID     string
	keySecret string
}

// NewRazorpayGateway builds a Gateway backed by the Razorpay Orders API.
func NewRazorpayGateway(cfg config.RazorpayConfig) Gateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &razorpayGateway{
		client:    client,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
	}
}

type razorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount money.Paise, receipt string, notes map[string]string) (string, error) {
	var out razorpayOrderResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(razorpayOrderRequest{
			Amount:   int64(amount),
			Currency: "INR",
			Receipt:  receipt,
			Notes:    notes,
		}).
		SetResult(&out).
		Post("/v1/orders")
	if err != nil {
		return "", fmt.Errorf("razorpay create order: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("razorpay create order: status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.ID == "" {
		return "", fmt.Errorf("razorpay create order: empty order id in response")
	}

	return out.ID, nil
}

// VerifySignature recomputes HMAC-SHA256 over "<orderRef>|<paymentID>"
// with the key secret and compares it against the supplied signature.
func (g *razorpayGateway) VerifySignature(orderRef, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}
