package dice

import (
	"fmt"
	"strconv"
	"strings"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// Notation is a dice expression such as 2d6+8
type Notation struct {
	Count int
	Sides int
	Bonus int
}

func (n Notation) String() string {
	switch {
	case n.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Bonus)
	case n.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", n.Count, n.Sides, n.Bonus)
	}
	return fmt.Sprintf("%dd%d", n.Count, n.Sides)
}

// Parse reads notation like "2d6+8", "1d8-1" or "3d6". Whitespace is ignored.
func Parse(s string) (Notation, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if compact == "" {
		return Notation{}, apperr.InvalidArgument("dice notation is empty")
	}

	dice, bonusPart, sign := compact, "", 1
	if i := strings.IndexAny(compact, "+-"); i >= 0 {
		dice, bonusPart = compact[:i], compact[i+1:]
		if compact[i] == '-' {
			sign = -1
		}
	}

	countStr, sidesStr, ok := strings.Cut(dice, "d")
	if !ok {
		return Notation{}, apperr.InvalidArgumentf("invalid dice notation %q", s)
	}

	count := 1
	if countStr != "" {
		var err error
		if count, err = strconv.Atoi(countStr); err != nil {
			return Notation{}, apperr.InvalidArgumentf("invalid dice count in %q", s)
		}
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Notation{}, apperr.InvalidArgumentf("invalid dice size in %q", s)
	}

	bonus := 0
	if bonusPart != "" {
		if bonus, err = strconv.Atoi(bonusPart); err != nil {
			return Notation{}, apperr.InvalidArgumentf("invalid dice bonus in %q", s)
		}
	}

	n := Notation{Count: count, Sides: sides, Bonus: sign * bonus}
	if n.Count < 1 || n.Sides < 1 {
		return Notation{}, apperr.InvalidArgumentf("dice notation %q needs at least one die with one side", s)
	}
	return n, nil
}

// RollString parses notation such as "2d6+8" and rolls it
func RollString(r Roller, notation string) (*RollResult, error) {
	n, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	return r.Roll(n.Count, n.Sides, n.Bonus)
}
