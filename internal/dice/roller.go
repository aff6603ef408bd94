package dice

import (
	"math/rand/v2"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// Roller rolls dice. Inject a deterministic implementation in tests.
type Roller interface {
	// Roll rolls count dice with the given sides and adds bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// RollResult is the outcome of one roll
type RollResult struct {
	Total    int   `json:"total"`
	RawTotal int   `json:"raw_total"`
	Rolls    []int `json:"rolls"`
	Bonus    int   `json:"bonus"`
	Count    int   `json:"count"`
	Sides    int   `json:"sides"`
	Critical bool  `json:"critical,omitempty"`
}

type randomRoller struct{}

// NewRandomRoller returns a Roller backed by math/rand/v2
func NewRandomRoller() Roller {
	return &randomRoller{}
}

func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, apperr.InvalidArgumentf("invalid dice count %d", count)
	}
	if sides < 1 {
		return nil, apperr.InvalidArgumentf("invalid dice size %d", sides)
	}

	rolls := make([]int, count)
	raw := 0
	for i := range rolls {
		rolls[i] = rand.IntN(sides) + 1
		raw += rolls[i]
	}

	return &RollResult{
		Total:    raw + bonus,
		RawTotal: raw,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
	}, nil
}

// RollDamage rolls a damage notation. A critical hit rolls the dice twice but
// adds the bonus once.
func RollDamage(r Roller, n Notation, critical bool) (*RollResult, error) {
	count := n.Count
	if critical {
		count *= 2
	}
	result, err := r.Roll(count, n.Sides, n.Bonus)
	if err != nil {
		return nil, err
	}
	result.Critical = critical
	return result, nil
}
