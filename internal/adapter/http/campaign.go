package httpadapter

import (
	"net/http"
	"strings"

	"adpilot/internal/core/domain"
)

type renameCampaignRequest struct {
	Name string `json:"name"`
}

// handleListCampaigns returns every campaign of the calling user.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	campaigns, err := h.lifecycle.ListCampaigns(r.Context(), ownerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

// handleGetCampaign returns one campaign of the calling user.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	campaign, err := h.lifecycle.GetCampaign(r.Context(), ownerID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"campaign": campaign})
}

// handleRenameCampaign renames a campaign. A uniqueness conflict is
// retried once with a resolver-derived alternative; a second conflict
// answers 409.
func (h *Handler) handleRenameCampaign(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req renameCampaignRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		h.respondError(w, domain.E(domain.CodeValidation, "a campaign name is required"))
		return
	}
	campaign, err := h.lifecycle.RenameCampaign(r.Context(), ownerID, id, strings.TrimSpace(req.Name))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"campaign": campaign})
}

// handleDeleteCampaign deletes a campaign and its dependents. The
// response is 200 even when the campaign was already absent.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.lifecycle.DeleteCampaign(r.Context(), ownerID, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"deleted": true})
}

// handleCreateDraftAd creates a draft ad under the campaign.
func (h *Handler) handleCreateDraftAd(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	ad, err := h.lifecycle.CreateDraftAd(r.Context(), ownerID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, map[string]any{"ad": ad})
}
