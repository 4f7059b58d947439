package httpadapter

import (
	"net/http"

	"github.com/google/uuid"
)

type publishRequest struct {
	CampaignID uuid.UUID `json:"campaignId"`
}

// handlePublish runs the full publish pipeline for an ad.
func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	adID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req publishRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	outcome, err := h.pipeline.Publish(r.Context(), ownerID, adID, req.CampaignID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, outcome)
}

// handlePreflight runs the read-only readiness checks for an ad.
func (h *Handler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	adID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	report, err := h.pipeline.Preflight(r.Context(), ownerID, adID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, report)
}

// handlePreview generates the publish payload without submitting it.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	adID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	preview, err := h.pipeline.Preview(r.Context(), ownerID, adID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, preview)
}

// handlePublishRecords lists the publish audit rows of an ad.
func (h *Handler) handlePublishRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	adID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	records, err := h.pipeline.PublishRecords(r.Context(), ownerID, adID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"publishes": records})
}
