package media

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/samytrends/retail-api/internal/config"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// Handler exposes product image uploads and serves the stored files.
type Handler struct {
	storage Storage
	cfg     config.MediaConfig
	admin   func(http.Handler) http.Handler
}

func NewHandler(storage Storage, cfg config.MediaConfig, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{storage: storage, cfg: cfg, admin: admin}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/media", func(r chi.Router) {
		r.Use(h.admin)
		r.Post("/", h.upload) // POST /api/v1/media (multipart field "file")
	})

	// Stored files are public; the storefront links straight to them.
	prefix := strings.TrimRight(h.cfg.BaseURL, "/")
	router.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(h.cfg.Dir))))
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	url, err := h.storage.Store(header.Filename, file)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]string{"url": url})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
