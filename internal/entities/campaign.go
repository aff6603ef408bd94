package entities

import "time"

// DerivedStat names a value computed from a ruleset formula
type DerivedStat string

const (
	DerivedMaxHP           DerivedStat = "max_hp"
	DerivedPhysicalEvasion DerivedStat = "physical_evasion"
	DerivedSpecialEvasion  DerivedStat = "special_evasion"
	DerivedSpeedEvasion    DerivedStat = "speed_evasion"
)

// AllDerivedStats lists derived stats in display order
var AllDerivedStats = []DerivedStat{DerivedMaxHP, DerivedPhysicalEvasion, DerivedSpecialEvasion, DerivedSpeedEvasion}

// Formulas are the templates for one kind of character
type Formulas struct {
	MaxHP           string `json:"max_hp" yaml:"max_hp"`
	PhysicalEvasion string `json:"physical_evasion" yaml:"physical_evasion"`
	SpecialEvasion  string `json:"special_evasion" yaml:"special_evasion"`
	SpeedEvasion    string `json:"speed_evasion" yaml:"speed_evasion"`
}

// Get returns the template for d
func (f Formulas) Get(d DerivedStat) string {
	switch d {
	case DerivedMaxHP:
		return f.MaxHP
	case DerivedPhysicalEvasion:
		return f.PhysicalEvasion
	case DerivedSpecialEvasion:
		return f.SpecialEvasion
	case DerivedSpeedEvasion:
		return f.SpeedEvasion
	}
	return ""
}

// Ruleset holds the GM-authored formulas a campaign computes derived stats with
type Ruleset struct {
	Name string `json:"name" yaml:"name"`

	// MissingStatValue replaces placeholders with no matching stat.
	// Nil means the service default; zero is a valid choice.
	MissingStatValue *float64 `json:"missing_stat_value,omitempty" yaml:"missing_stat_value,omitempty"`

	Pokemon Formulas `json:"pokemon" yaml:"pokemon"`
	Trainer Formulas `json:"trainer" yaml:"trainer"`
}

// FormulasFor picks the formula set for a character kind
func (r *Ruleset) FormulasFor(kind CharacterKind) Formulas {
	if kind == CharacterKindTrainer {
		return r.Trainer
	}
	return r.Pokemon
}

// Campaign groups characters under a GM and a ruleset
type Campaign struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Ruleset   *Ruleset  `json:"ruleset,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	out := *c
	out.Ruleset = c.Ruleset.Clone()
	return &out
}

// Clone returns a copy that shares no pointers with r
func (r *Ruleset) Clone() *Ruleset {
	if r == nil {
		return nil
	}
	out := *r
	if r.MissingStatValue != nil {
		v := *r.MissingStatValue
		out.MissingStatValue = &v
	}
	return &out
}
