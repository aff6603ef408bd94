// Package stats assembles the flat stat map that ruleset formulas read.
package stats

import (
	"github.com/KirkDiggler/pokesheet/internal/entities"
)

// Key prefixes in the stat map. For every stat s the map holds base_s,
// add_s, total_s, stage_s and staged_s.
const (
	PrefixBase   = "base_"
	PrefixAdded  = "add_"
	PrefixTotal  = "total_"
	PrefixStage  = "stage_"
	PrefixStaged = "staged_"

	KeyLevel = "level"
)

// StageMultiplier converts a combat stage into a stat multiplier: +20% per
// positive stage, -10% per negative stage. Stages are clamped to -6..+6.
func StageMultiplier(stage int) float64 {
	stage = max(entities.MinCombatStage, min(entities.MaxCombatStage, stage))
	if stage >= 0 {
		return 1 + 0.2*float64(stage)
	}
	return 1 + 0.1*float64(stage)
}

// Staged applies a combat stage to a stat value, rounding down. It works in
// tenths so 10 at +1 is exactly 12.
func Staged(value, stage int) int {
	stage = max(entities.MinCombatStage, min(entities.MaxCombatStage, stage))
	tenths := 10 + stage
	if stage > 0 {
		tenths = 10 + 2*stage
	}
	num := value * tenths
	q := num / 10
	if num%10 != 0 && num < 0 {
		q--
	}
	return q
}

// Build returns a fresh stat map for c. The caller owns the map.
func Build(c *entities.Character) map[string]float64 {
	m := make(map[string]float64, len(entities.AllStats)*5+1)
	m[KeyLevel] = float64(c.Level)

	total := c.BaseStats.Add(c.AddedStats)
	for _, s := range entities.AllStats {
		name := string(s)
		stage := c.CombatStages.Get(s)

		m[PrefixBase+name] = float64(c.BaseStats.Get(s))
		m[PrefixAdded+name] = float64(c.AddedStats.Get(s))
		m[PrefixTotal+name] = float64(total.Get(s))
		m[PrefixStage+name] = float64(stage)

		staged := total.Get(s)
		if s != entities.StatHP {
			staged = Staged(staged, stage)
		}
		m[PrefixStaged+name] = float64(staged)
	}
	return m
}
