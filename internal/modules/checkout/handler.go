package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samytrends/retail-api/internal/modules/auth"
)

// Handler exposes the online checkout endpoints. All routes require a
// logged-in user; the cart owner is always the token subject.
type Handler struct {
	service      Service
	authenticate func(http.Handler) http.Handler
}

func NewHandler(service Service, authenticate func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authenticate: authenticate}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/quote", h.quote)                      // GET  /api/v1/checkout/quote
		r.Post("/razorpay", h.beginPayment)           // POST /api/v1/checkout/razorpay
		r.Post("/razorpay/confirm", h.confirmPayment) // POST /api/v1/checkout/razorpay/confirm
		r.Post("/cod", h.placeCOD)                    // POST /api/v1/checkout/cod
	})
}

func userID(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Quote(r.Context(), userID(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) beginPayment(w http.ResponseWriter, r *http.Request) {
	var details ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	intent, err := h.service.BeginPayment(r.Context(), userID(r), details)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, intent)
}

func (h *Handler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		OrderRef  string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.ConfirmPayment(r.Context(), userID(r), req.OrderRef, req.PaymentID, req.Signature)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) placeCOD(w http.ResponseWriter, r *http.Request) {
	var details ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.PlaceCODOrder(r.Context(), userID(r), details)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func respondError(w http.ResponseWriter, err error) {
	var fields ValidationErrors
	if errors.As(err, &fields) {
		respond(w, http.StatusBadRequest, map[string]interface{}{"fields": fields})
		return
	}

	msg := err.Error()
	status := http.StatusInternalServerError
	switch {
	case strings.Contains(msg, "not found"):
		status = http.StatusNotFound
	case strings.Contains(msg, "cart is empty") || strings.Contains(msg, "verification failed"):
		status = http.StatusBadRequest
	}
	respond(w, status, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
