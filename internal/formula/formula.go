// Package formula evaluates ruleset formulas such as
// "min(floor({staged_defense} / 5), 6)" against a character's stat map.
//
// Placeholders of the form {name} are replaced with stat values, then the
// text is compiled against a closed grammar: numbers, + - * /, parentheses
// and the functions min, max, floor and ceil. Nothing else is accepted, so a
// formula can never reach arbitrary behaviour.
package formula

import (
	"math"
	"strconv"
	"strings"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// DefaultMissingValue is substituted for placeholders with no matching stat.
// It is large on purpose so an authoring mistake shows up on the sheet.
const DefaultMissingValue = 9999

// Evaluator evaluates formulas with a configurable missing-stat policy.
// The zero value is not ready for use; call NewEvaluator.
type Evaluator struct {
	missingValue float64
	onMissing    func(name string)
}

// EvaluatorConfig configures an Evaluator
type EvaluatorConfig struct {
	// MissingValue replaces unknown placeholders. Nil means DefaultMissingValue.
	MissingValue *float64

	// OnMissing is called once per unknown placeholder occurrence
	OnMissing func(name string)
}

// NewEvaluator creates an evaluator. A nil config uses the defaults.
func NewEvaluator(cfg *EvaluatorConfig) *Evaluator {
	e := &Evaluator{missingValue: DefaultMissingValue}
	if cfg == nil {
		return e
	}
	if cfg.MissingValue != nil {
		e.missingValue = *cfg.MissingValue
	}
	e.onMissing = cfg.OnMissing
	return e
}

// Sentinel returns a pointer to v for EvaluatorConfig.MissingValue
func Sentinel(v float64) *float64 {
	return &v
}

// MissingValue reports the sentinel used for unknown placeholders
func (e *Evaluator) MissingValue() float64 {
	return e.missingValue
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate evaluates template with the default evaluator
func Evaluate(template string, stats map[string]float64) (float64, error) {
	return defaultEvaluator.Evaluate(template, stats)
}

// Evaluate substitutes stats into template and computes the result. The
// result is not rounded. Failures are errors with code formula; a missing
// stat is never a failure.
func (e *Evaluator) Evaluate(template string, stats map[string]float64) (float64, error) {
	text, err := substitute(template, func(name string) (float64, error) {
		if v, ok := stats[name]; ok {
			return v, nil
		}
		if e.onMissing != nil {
			e.onMissing(name)
		}
		return e.missingValue, nil
	})
	if err != nil {
		return 0, err
	}

	root, err := compile(text)
	if err != nil {
		return 0, apperr.Wrap(err, "compile formula").WithMeta("template", template)
	}

	v, err := root.eval()
	if err != nil {
		return 0, apperr.Wrap(err, "evaluate formula").WithMeta("template", template)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Formulaf("formula produced a non-finite result").WithMeta("template", template)
	}
	return v, nil
}

// Validate checks that template compiles, without evaluating it
func Validate(template string) error {
	text, err := substitute(template, func(string) (float64, error) { return 1, nil })
	if err != nil {
		return err
	}
	if _, err := compile(text); err != nil {
		return apperr.Wrap(err, "compile formula").WithMeta("template", template)
	}
	return nil
}

// Placeholders lists the stat names template refers to, in order of first use
func Placeholders(template string) []string {
	var names []string
	seen := map[string]bool{}
	_, _ = substitute(template, func(name string) (float64, error) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return 0, nil
	})
	return names
}

// substitute replaces every {name} in template with the value from lookup.
// Values are parenthesized so negative stats keep their sign under any operator.
func substitute(template string, lookup func(name string) (float64, error)) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", apperr.Formulaf("formula is empty")
	}

	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return "", apperr.Formulaf("unmatched '}' in formula %q", template)
			}
			b.WriteString(rest)
			break
		}
		if strings.IndexByte(rest[:open], '}') >= 0 {
			return "", apperr.Formulaf("unmatched '}' in formula %q", template)
		}

		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			return "", apperr.Formulaf("unterminated placeholder in formula %q", template)
		}
		name := strings.TrimSpace(rest[open+1 : open+1+end])
		if !validName(name) {
			return "", apperr.Formulaf("invalid placeholder {%s} in formula %q", name, template)
		}

		v, err := lookup(name)
		if err != nil {
			return "", err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", apperr.Formulaf("stat %q is not a finite number", name)
		}

		b.WriteString(rest[:open])
		b.WriteByte('(')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte(')')
		rest = rest[open+1+end+1:]
	}
	return b.String(), nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
