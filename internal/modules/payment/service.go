package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samytrends/retail-api/internal/money"
)

// Service coordinates gateway calls with the local payment trace.
type Service interface {
	// Initiate registers the amount with the gateway and opens a local
	// CREATED record keyed by the gateway order reference.
	Initiate(ctx context.Context, amount money.Paise, receipt string, notes map[string]string) (*CheckoutSession, error)
	// Confirm verifies the widget callback signature and marks the
	// record PAID. A bad signature marks it FAILED and returns an error.
	Confirm(ctx context.Context, orderRef, paymentID, signature string) (*Record, error)
	// List returns recent payment attempts for the back office.
	List(ctx context.Context, limit int) ([]Record, error)
}

type service struct {
	gateway Gateway
	repo    Repository
}

// NewService creates a new payment service.
func NewService(gateway Gateway, repo Repository) Service {
	return &service{gateway: gateway, repo: repo}
}

func (s *service) Initiate(ctx context.Context, amount money.Paise, receipt string, notes map[string]string) (*CheckoutSession, error) {
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	orderRef, err := s.gateway.CreateOrder(ctx, amount, receipt, notes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &Record{
		ID:        uuid.New(),
		Provider:  ProviderRazorpay,
		OrderRef:  orderRef,
		Amount:    amount,
		Status:    StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return &CheckoutSession{
		KeyID:    s.gateway.KeyID(),
		OrderRef: orderRef,
		Amount:   amount,
		Currency: "INR",
	}, nil
}

func (s *service) Confirm(ctx context.Context, orderRef, paymentID, signature string) (*Record, error) {
	rec, err := s.repo.GetByOrderRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	if rec.Status == StatusPaid {
		return nil, errors.New("payment already captured")
	}

	if !s.gateway.VerifySignature(orderRef, paymentID, signature) {
		_ = s.repo.UpdateStatus(ctx, rec.ID, StatusFailed, paymentID, "signature mismatch")
		return nil, errors.New("payment signature verification failed")
	}

	if err := s.repo.UpdateStatus(ctx, rec.ID, StatusPaid, paymentID, ""); err != nil {
		return nil, err
	}
	rec.Status = StatusPaid
	rec.PaymentID = paymentID
	rec.UpdatedAt = time.Now()
	return rec, nil
}

func (s *service) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}
