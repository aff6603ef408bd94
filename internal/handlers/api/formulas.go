package api

import (
	"net/http"
	"slices"

	"github.com/KirkDiggler/pokesheet/internal/formula"
)

type evaluateFormulaRequest struct {
	Template string             `json:"template"`
	Stats    map[string]float64 `json:"stats"`

	// MissingStatValue overrides the sentinel for unknown placeholders
	MissingStatValue *float64 `json:"missing_stat_value,omitempty"`
}

type evaluateFormulaResponse struct {
	Value        float64  `json:"value"`
	Placeholders []string `json:"placeholders"`
	Missing      []string `json:"missing,omitempty"`
}

// handleEvaluateFormula lets ruleset authors try a template against ad hoc stats
func (h *Handler) handleEvaluateFormula(w http.ResponseWriter, r *http.Request) {
	var req evaluateFormulaRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.writeError(w, r, err)
		return
	}

	var missing []string
	evaluator := formula.NewEvaluator(&formula.EvaluatorConfig{
		MissingValue: req.MissingStatValue,
		OnMissing: func(name string) {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
		},
	})

	value, err := evaluator.Evaluate(req.Template, req.Stats)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, evaluateFormulaResponse{
		Value:        value,
		Placeholders: formula.Placeholders(req.Template),
		Missing:      missing,
	})
}
