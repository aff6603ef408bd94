package api

import (
	"net/http"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/services/character"
)

// RegisterCharacterRoutes mounts the character endpoints on mux
func (h *Handler) RegisterCharacterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/characters", h.handleCreateCharacter)
	mux.HandleFunc("GET /api/characters", h.handleListCharacters)
	mux.HandleFunc("GET /api/characters/{characterID}", h.handleGetCharacter)
	mux.HandleFunc("PATCH /api/characters/{characterID}", h.handleUpdateCharacter)
	mux.HandleFunc("DELETE /api/characters/{characterID}", h.handleDeleteCharacter)
	mux.HandleFunc("GET /api/characters/{characterID}/team", h.handleListTeam)
	mux.HandleFunc("GET /api/characters/{characterID}/derived", h.handleDerivedStats)
	mux.HandleFunc("POST /api/characters/{characterID}/attachments", h.handleAddAttachment)
	mux.HandleFunc("DELETE /api/characters/{characterID}/attachments/{attachmentID}", h.handleRemoveAttachment)
	mux.HandleFunc("PUT /api/characters/{characterID}/attachments/{attachmentID}/position", h.handleMoveAttachment)
	mux.HandleFunc("POST /api/characters/{characterID}/attachments/{attachmentID}/roll", h.handleRollDamage)
}

type createCharacterRequest struct {
	CampaignID   string                 `json:"campaign_id"`
	TrainerID    string                 `json:"trainer_id"`
	Kind         entities.CharacterKind `json:"kind"`
	Name         string                 `json:"name"`
	Species      string                 `json:"species"`
	Nature       string                 `json:"nature"`
	Level        int                    `json:"level"`
	Types        []entities.PokemonType `json:"types"`
	BaseStats    entities.Stats         `json:"base_stats"`
	AddedStats   entities.Stats         `json:"added_stats"`
	CombatStages entities.Stages        `json:"combat_stages"`
	Abilities    []string               `json:"abilities"`
	CurrentHP    *int                   `json:"current_hp"`
}

type updateCharacterRequest struct {
	Version      *int64                  `json:"version"`
	Name         *string                 `json:"name"`
	Species      *string                 `json:"species"`
	Nature       *string                 `json:"nature"`
	Level        *int                    `json:"level"`
	TrainerID    *string                 `json:"trainer_id"`
	Types        *[]entities.PokemonType `json:"types"`
	Abilities    *[]string               `json:"abilities"`
	BaseStats    *entities.Stats         `json:"base_stats"`
	AddedStats   *entities.Stats         `json:"added_stats"`
	CombatStages *entities.Stages        `json:"combat_stages"`
	CurrentHP    *int                    `json:"current_hp"`
}

type addAttachmentRequest struct {
	Kind          entities.AttachmentKind `json:"kind"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description"`
	Type          entities.PokemonType    `json:"type"`
	Category      entities.MoveCategory   `json:"category"`
	Frequency     string                  `json:"frequency"`
	AccuracyCheck int                     `json:"accuracy_check"`
	DamageDice    string                  `json:"damage_dice"`
	Rank          int                     `json:"rank"`
	Value         int                     `json:"value"`
}

type moveAttachmentRequest struct {
	Position *int `json:"position"`
}

type rollDamageRequest struct {
	Critical bool `json:"critical"`
}

func (h *Handler) characters() character.Service {
	return h.ServiceProvider.CharacterService
}

// ownedCharacter loads a character and checks the caller owns it
func (h *Handler) ownedCharacter(r *http.Request) (*entities.Character, error) {
	char, err := h.characters().GetCharacter(r.Context(), r.PathValue("characterID"))
	if err != nil {
		return nil, err
	}
	if char.OwnerID != UserID(r.Context()) {
		return nil, apperr.PermissionDenied("character belongs to another user").
			WithMeta("character_id", char.ID)
	}
	return char, nil
}

func (h *Handler) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	char, err := h.characters().CreateCharacter(r.Context(), &character.CreateCharacterInput{
		OwnerID:      UserID(r.Context()),
		CampaignID:   req.CampaignID,
		TrainerID:    req.TrainerID,
		Kind:         req.Kind,
		Name:         req.Name,
		Species:      req.Species,
		Nature:       req.Nature,
		Level:        req.Level,
		Types:        req.Types,
		BaseStats:    req.BaseStats,
		AddedStats:   req.AddedStats,
		CombatStages: req.CombatStages,
		Abilities:    req.Abilities,
		CurrentHP:    req.CurrentHP,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, char)
}

func (h *Handler) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	chars, err := h.characters().ListCharacters(r.Context(), UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if chars == nil {
		chars = []*entities.Character{}
	}
	h.writeJSON(w, http.StatusOK, chars)
}

func (h *Handler) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, char)
}

func (h *Handler) handleUpdateCharacter(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateCharacterRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.characters().UpdateCharacter(r.Context(), &character.UpdateCharacterInput{
		CharacterID:  char.ID,
		Version:      req.Version,
		Name:         req.Name,
		Species:      req.Species,
		Nature:       req.Nature,
		Level:        req.Level,
		TrainerID:    req.TrainerID,
		Types:        req.Types,
		Abilities:    req.Abilities,
		BaseStats:    req.BaseStats,
		AddedStats:   req.AddedStats,
		CombatStages: req.CombatStages,
		CurrentHP:    req.CurrentHP,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.characters().DeleteCharacter(r.Context(), char.ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListTeam(w http.ResponseWriter, r *http.Request) {
	trainer, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	team, err := h.characters().ListTeam(r.Context(), trainer.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if team == nil {
		team = []*entities.Character{}
	}
	h.writeJSON(w, http.StatusOK, team)
}

func (h *Handler) handleDerivedStats(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	derived, err := h.characters().DerivedStats(r.Context(), char.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, derived)
}

func (h *Handler) handleAddAttachment(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req addAttachmentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	attachment, err := h.characters().AddAttachment(r.Context(), &character.AddAttachmentInput{
		CharacterID:   char.ID,
		Kind:          req.Kind,
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Category:      req.Category,
		Frequency:     req.Frequency,
		AccuracyCheck: req.AccuracyCheck,
		DamageDice:    req.DamageDice,
		Rank:          req.Rank,
		Value:         req.Value,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, attachment)
}

func (h *Handler) handleRemoveAttachment(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	attachmentID, err := pathInt64(r, "attachmentID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.characters().RemoveAttachment(r.Context(), char.ID, attachmentID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleMoveAttachment(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	attachmentID, err := pathInt64(r, "attachmentID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req moveAttachmentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Position == nil {
		h.writeError(w, r, apperr.InvalidArgument("position is required"))
		return
	}

	updated, err := h.characters().MoveAttachment(r.Context(), char.ID, attachmentID, *req.Position)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleRollDamage(w http.ResponseWriter, r *http.Request) {
	char, err := h.ownedCharacter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	attachmentID, err := pathInt64(r, "attachmentID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req rollDamageRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.characters().RollDamage(r.Context(), &character.RollDamageInput{
		CharacterID:  char.ID,
		AttachmentID: attachmentID,
		Critical:     req.Critical,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}
