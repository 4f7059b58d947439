package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adpilot/internal/core/port"
)

// Handler contains dependencies and routes. It is the inbound HTTP
// adapter: request bodies are parsed and validated once at this edge
// into concrete typed structs, then handed to the usecases. The owner
// identity arrives as a trusted header set by the fronting auth layer.
type Handler struct {
	pipeline  port.PublishPipeline
	lifecycle port.CampaignLifecycle
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(pipeline port.PublishPipeline, lifecycle port.CampaignLifecycle, metricsHandler http.Handler, logger *slog.Logger) *Handler {
	h := &Handler{pipeline: pipeline, lifecycle: lifecycle, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Get("/{id}", h.handleGetCampaign)
			r.Patch("/{id}", h.handleRenameCampaign)
			r.Delete("/{id}", h.handleDeleteCampaign)
			r.Post("/{id}/ads/draft", h.handleCreateDraftAd)
		})
		r.Route("/ads", func(r chi.Router) {
			r.Get("/{id}/preflight", h.handlePreflight)
			r.Get("/{id}/preview", h.handlePreview)
			r.Post("/{id}/publish", h.handlePublish)
			r.Get("/{id}/publishes", h.handlePublishRecords)
		})
	})
	r.Get("/healthz", h.handleHealthz)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
