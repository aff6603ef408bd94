package character

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/formula"
	"github.com/KirkDiggler/pokesheet/internal/stats"
)

// DerivedValue is one evaluated formula. Value is nil when the formula
// failed; Error then carries the reason.
type DerivedValue struct {
	Stat    entities.DerivedStat `json:"stat"`
	Formula string               `json:"formula"`
	Value   *float64             `json:"value"`
	Error   string               `json:"error,omitempty"`
}

// DerivedStats are the computed combat values of a character
type DerivedStats struct {
	CharacterID string                           `json:"character_id"`
	Ruleset     string                           `json:"ruleset"`
	Values      []DerivedValue                   `json:"values"`
	Stats       map[string]float64               `json:"stats"`
	Defenses    map[entities.PokemonType]float64 `json:"defenses"`
}

// Value returns the evaluated value of stat, if it could be computed
func (d *DerivedStats) Value(stat entities.DerivedStat) (float64, bool) {
	for _, v := range d.Values {
		if v.Stat == stat && v.Value != nil {
			return *v.Value, true
		}
	}
	return 0, false
}

// DerivedStats evaluates the character's ruleset formulas
func (s *service) DerivedStats(ctx context.Context, characterID string) (*DerivedStats, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return s.derive(ctx, char)
}

func (s *service) derive(ctx context.Context, char *entities.Character) (*DerivedStats, error) {
	ruleset, err := s.rulesets.Ruleset(ctx, char.CampaignID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to resolve ruleset").
			WithMeta("character_id", char.ID).
			WithMeta("campaign_id", char.CampaignID)
	}

	missing := s.missingStatValue
	if ruleset.MissingStatValue != nil {
		missing = *ruleset.MissingStatValue
	}

	log := s.logger.With(
		zap.String("character_id", char.ID),
		zap.String("ruleset", ruleset.Name))
	evaluator := formula.NewEvaluator(&formula.EvaluatorConfig{
		MissingValue: &missing,
		OnMissing: func(name string) {
			log.Warn("formula references unknown stat",
				zap.String("stat", name),
				zap.Float64("substituted", missing))
		},
	})

	statMap := stats.Build(char)
	formulas := ruleset.FormulasFor(char.Kind)
	result := &DerivedStats{
		CharacterID: char.ID,
		Ruleset:     ruleset.Name,
		Values:      make([]DerivedValue, 0, len(entities.AllDerivedStats)),
		Stats:       statMap,
		Defenses:    entities.DefensiveChart(char.Types),
	}

	for _, stat := range entities.AllDerivedStats {
		template := formulas.Get(stat)
		dv := DerivedValue{Stat: stat, Formula: template}

		value, err := evaluator.Evaluate(template, statMap)
		if err != nil {
			// one bad formula leaves the rest of the sheet usable
			log.Error("failed to evaluate formula",
				zap.String("derived_stat", string(stat)),
				zap.String("formula", template),
				zap.Error(err))
			dv.Error = err.Error()
		} else {
			dv.Value = &value
		}
		result.Values = append(result.Values, dv)
	}

	return result, nil
}
