// Package api serves the character sheet JSON API over net/http.
package api

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/logging"
	"github.com/KirkDiggler/pokesheet/internal/services"
)

// UserHeader carries the caller's user id, set by the auth proxy in front of the API
const UserHeader = "X-User-ID"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Handler handles all API requests
type Handler struct {
	ServiceProvider *services.Provider
	logger          *zap.Logger
}

// HandlerConfig holds configuration for the API handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	Logger          *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ServiceProvider == nil {
		panic("service provider is required")
	}
	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		logger:          logging.OrNop(cfg.Logger),
	}
}

// Routes returns the full HTTP handler with middleware applied
func (h *Handler) Routes() http.Handler {
	api := http.NewServeMux()
	h.RegisterCampaignRoutes(api)
	h.RegisterCharacterRoutes(api)
	api.HandleFunc("POST /api/formulas/evaluate", h.handleEvaluateFormula)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", h.handleHealth)
	root.Handle("/api/", h.RequireUser(api))

	return gzhttp.GzipHandler(h.RecoverMiddleware(h.LogRequests(root)))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
