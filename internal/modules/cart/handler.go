package cart

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samytrends/retail-api/internal/modules/auth"
)

// Handler exposes storefront cart and wishlist endpoints. The acting user is
// taken from the authenticated session, never from the request body.
type Handler struct {
	service      Service
	authenticate func(http.Handler) http.Handler
}

func NewHandler(service Service, authenticate func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authenticate: authenticate}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/", h.getCart)
		r.Post("/items/{product_id}", h.addItem)
		r.Put("/items/{product_id}", h.setQuantity)
		r.Delete("/items/{product_id}", h.removeItem)
		r.Delete("/", h.clearCart)
	})
	router.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/", h.getWishlist)
		r.Post("/{product_id}/toggle", h.toggleWishlist)
		r.Delete("/", h.clearWishlist)
	})
}

func currentUser(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCart(r.Context(), currentUser(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.AddItem(r.Context(), currentUser(r), chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Quantity int `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.SetQuantity(r.Context(), currentUser(r), chi.URLParam(r, "product_id"), req.Quantity)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveItem(r.Context(), currentUser(r), chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCart(r.Context(), currentUser(r)); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetWishlist(r.Context(), currentUser(r))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ToggleWishlist(r.Context(), currentUser(r), chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) clearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearWishlist(r.Context(), currentUser(r)); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "in stock") || strings.Contains(msg, "invalid"):
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
