package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the admin reporting endpoints.
type Handler struct {
	service Service
	admin   func(http.Handler) http.Handler
}

func NewHandler(service Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, admin: admin}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/reports", func(r chi.Router) {
		r.Use(h.admin)
		r.Get("/dashboard", h.dashboard) // GET /api/v1/reports/dashboard
		r.Get("/sales", h.sales)         // GET /api/v1/reports/sales?from=&to=
		r.Get("/daily", h.daily)         // GET /api/v1/reports/daily?limit=
		r.Post("/daily/run", h.runDaily) // POST /api/v1/reports/daily/run?date=
	})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid from date, want YYYY-MM-DD"})
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid to date, want YYYY-MM-DD"})
		return
	}
	if !to.IsZero() {
		// Make the range inclusive of the end date.
		to = to.AddDate(0, 0, 1)
	}

	rep, err := h.service.Sales(r.Context(), from, to)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rep)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := h.service.DailyReports(r.Context(), limit)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, reports)
}

func (h *Handler) runDaily(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		return
	}
	if day.IsZero() {
		day = time.Now().AddDate(0, 0, -1)
	}

	rep, err := h.service.RunDailyReport(r.Context(), day)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, rep)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
