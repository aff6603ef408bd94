package api

import (
	"net/http"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/services/campaign"
)

// RegisterCampaignRoutes mounts the campaign endpoints on mux
func (h *Handler) RegisterCampaignRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/campaigns", h.handleCreateCampaign)
	mux.HandleFunc("GET /api/campaigns", h.handleListCampaigns)
	mux.HandleFunc("GET /api/campaigns/{campaignID}", h.handleGetCampaign)
	mux.HandleFunc("DELETE /api/campaigns/{campaignID}", h.handleDeleteCampaign)
	mux.HandleFunc("PUT /api/campaigns/{campaignID}/ruleset", h.handleUpdateRuleset)
}

type createCampaignRequest struct {
	Name    string            `json:"name"`
	Ruleset *entities.Ruleset `json:"ruleset"`
}

func (h *Handler) campaigns() campaign.Service {
	return h.ServiceProvider.CampaignService
}

// ownedCampaign loads a campaign and checks the caller runs it
func (h *Handler) ownedCampaign(r *http.Request) (*entities.Campaign, error) {
	c, err := h.campaigns().GetCampaign(r.Context(), r.PathValue("campaignID"))
	if err != nil {
		return nil, err
	}
	if c.OwnerID != UserID(r.Context()) {
		return nil, apperr.PermissionDenied("campaign belongs to another user").
			WithMeta("campaign_id", c.ID)
	}
	return c, nil
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.campaigns().CreateCampaign(r.Context(), &campaign.CreateCampaignInput{
		OwnerID: UserID(r.Context()),
		Name:    req.Name,
		Ruleset: req.Ruleset,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.campaigns().ListCampaigns(r.Context(), UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*entities.Campaign{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.ownedCampaign(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.ownedCampaign(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.campaigns().DeleteCampaign(r.Context(), c.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateRuleset(w http.ResponseWriter, r *http.Request) {
	c, err := h.ownedCampaign(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var ruleset entities.Ruleset
	if err := decodeJSON(w, r, &ruleset, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.campaigns().UpdateRuleset(r.Context(), c.ID, &ruleset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}
