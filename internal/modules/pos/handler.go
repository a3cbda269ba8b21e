package pos

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samytrends/retail-api/internal/modules/auth"
)

// Handler exposes POS HTTP endpoints. All routes require a cashier or admin
// session; the cart is keyed by the authenticated user.
type Handler struct {
	service Service
	counter func(http.Handler) http.Handler
}

func NewHandler(service Service, counter func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, counter: counter}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/pos", func(r chi.Router) {
		r.Use(h.counter)
		r.Get("/cart", h.getCart)                             // GET    /api/v1/pos/cart
		r.Post("/cart/items/{product_id}", h.addLine)         // POST   /api/v1/pos/cart/items/{id}
		r.Patch("/cart/items/{product_id}", h.adjustQuantity) // PATCH  /api/v1/pos/cart/items/{id}
		r.Delete("/cart/items/{product_id}", h.removeLine)    // DELETE /api/v1/pos/cart/items/{id}
		r.Put("/cart/discount", h.setDiscount)                // PUT    /api/v1/pos/cart/discount
		r.Put("/cart/payment-method", h.selectPayment)        // PUT    /api/v1/pos/cart/payment-method
		r.Post("/sale", h.completeSale)                       // POST   /api/v1/pos/sale
		r.Post("/new-sale", h.newSale)                        // POST   /api/v1/pos/new-sale
		r.Get("/receipts/{order_id}", h.receipt)              // GET    /api/v1/pos/receipts/{order_id}
		r.Get("/history", h.history)                          // GET    /api/v1/pos/history?search=&limit=
	})
}

func cashier(r *http.Request) *auth.Claims {
	claims, _ := auth.ClaimsFromContext(r.Context())
	return claims
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.service.Cart(cashier(r).Subject))
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AddLine(r.Context(), cashier(r).Subject, chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) adjustQuantity(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Delta int `json:"delta"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.AdjustQuantity(cashier(r).Subject, chi.URLParam(r, "product_id"), req.Delta)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveLine(cashier(r).Subject, chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Percent int `json:"percent"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, h.service.SetDiscount(cashier(r).Subject, req.Percent))
}

func (h *Handler) selectPayment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Method string `json:"method"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	view, err := h.service.SelectPayment(cashier(r).Subject, req.Method)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, view)
}

func (h *Handler) completeSale(w http.ResponseWriter, r *http.Request) {
	c := cashier(r)
	name := c.Name
	if name == "" {
		name = c.Subject
	}
	o, err := h.service.CompleteSale(r.Context(), c.Subject, name)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) newSale(w http.ResponseWriter, r *http.Request) {
	h.service.NewSale(cashier(r).Subject)
	respond(w, http.StatusOK, h.service.Cart(cashier(r).Subject))
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Receipt(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	orders, err := h.service.History(r.Context(), r.URL.Query().Get("search"), limit)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not selected") || strings.Contains(msg, "empty") ||
		strings.Contains(msg, "out of stock") || strings.Contains(msg, "invalid"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
