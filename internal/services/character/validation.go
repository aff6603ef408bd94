package character

import (
	"strings"

	"github.com/KirkDiggler/pokesheet/internal/dice"
	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// MaxNameLength bounds character and attachment names
const MaxNameLength = 50

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ValidateInput validates any input that implements Validator
func ValidateInput(input Validator) error {
	if input == nil {
		return apperr.InvalidArgument("input cannot be nil")
	}
	return input.Validate()
}

// Validate checks CreateCharacterInput for validity
func (i *CreateCharacterInput) Validate() error {
	if i == nil {
		return apperr.InvalidArgument("CreateCharacterInput cannot be nil")
	}

	if strings.TrimSpace(i.OwnerID) == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if i.CurrentHP != nil && *i.CurrentHP < 0 {
		return apperr.InvalidArgument("current hp cannot be negative")
	}

	return validateCharacter(&entities.Character{
		OwnerID:      i.OwnerID,
		TrainerID:    i.TrainerID,
		Kind:         i.Kind,
		Name:         i.Name,
		Level:        i.Level,
		Types:        i.Types,
		BaseStats:    i.BaseStats,
		AddedStats:   i.AddedStats,
		CombatStages: i.CombatStages,
	})
}

// Validate checks UpdateCharacterInput for validity. Field ranges are checked
// against the merged character in UpdateCharacter.
func (i *UpdateCharacterInput) Validate() error {
	if i == nil {
		return apperr.InvalidArgument("UpdateCharacterInput cannot be nil")
	}

	if strings.TrimSpace(i.CharacterID) == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	return nil
}

// Validate checks AddAttachmentInput for validity
func (i *AddAttachmentInput) Validate() error {
	if i == nil {
		return apperr.InvalidArgument("AddAttachmentInput cannot be nil")
	}

	if strings.TrimSpace(i.CharacterID) == "" {
		return apperr.InvalidArgument("character ID is required")
	}
	if !i.Kind.Valid() {
		return apperr.InvalidArgumentf("unknown attachment kind '%s'", i.Kind)
	}
	if err := validateName(i.Name, "attachment"); err != nil {
		return err
	}

	switch i.Kind {
	case entities.AttachmentKindMove:
		if i.Type != "" && !i.Type.Valid() {
			return apperr.InvalidArgumentf("unknown move type '%s'", i.Type)
		}
		if i.Category != "" && !i.Category.Valid() {
			return apperr.InvalidArgumentf("unknown move category '%s'", i.Category)
		}
		if i.AccuracyCheck < 0 {
			return apperr.InvalidArgument("accuracy check cannot be negative")
		}
		if i.DamageDice != "" {
			if _, err := dice.Parse(i.DamageDice); err != nil {
				return err
			}
		}
	case entities.AttachmentKindSkill:
		if i.Rank < entities.MinSkillRank || i.Rank > entities.MaxSkillRank {
			return apperr.InvalidArgumentf("skill rank must be between %d and %d, got %d",
				entities.MinSkillRank, entities.MaxSkillRank, i.Rank)
		}
	case entities.AttachmentKindCapability:
		if i.Value < 0 {
			return apperr.InvalidArgument("capability value cannot be negative")
		}
	}

	return nil
}

// Validate checks RollDamageInput for validity
func (i *RollDamageInput) Validate() error {
	if i == nil {
		return apperr.InvalidArgument("RollDamageInput cannot be nil")
	}

	if strings.TrimSpace(i.CharacterID) == "" {
		return apperr.InvalidArgument("character ID is required")
	}
	if i.AttachmentID <= 0 {
		return apperr.InvalidArgument("attachment ID is required")
	}

	return nil
}

// validateCharacter checks the fields every stored character must satisfy
func validateCharacter(c *entities.Character) error {
	if !c.Kind.Valid() {
		return apperr.InvalidArgumentf("unknown character kind '%s'", c.Kind)
	}
	if err := validateName(c.Name, "character"); err != nil {
		return err
	}
	if c.Level < entities.MinLevel || c.Level > entities.MaxLevel {
		return apperr.InvalidArgumentf("level must be between %d and %d, got %d",
			entities.MinLevel, entities.MaxLevel, c.Level)
	}
	if c.Kind == entities.CharacterKindTrainer && c.TrainerID != "" {
		return apperr.InvalidArgument("a trainer cannot belong to another trainer")
	}
	if c.TrainerID != "" && c.TrainerID == c.ID {
		return apperr.InvalidArgument("a character cannot be its own trainer")
	}

	if len(c.Types) > entities.MaxTypes {
		return apperr.InvalidArgumentf("a character has at most %d types", entities.MaxTypes)
	}
	for idx, t := range c.Types {
		if !t.Valid() {
			return apperr.InvalidArgumentf("unknown type '%s'", t)
		}
		for _, other := range c.Types[:idx] {
			if other == t {
				return apperr.InvalidArgumentf("type '%s' listed twice", t)
			}
		}
	}

	for _, s := range entities.AllStats {
		if c.BaseStats.Get(s) < 0 {
			return apperr.InvalidArgumentf("base %s cannot be negative", s)
		}
		if c.AddedStats.Get(s) < 0 {
			return apperr.InvalidArgumentf("added %s cannot be negative", s)
		}
	}
	if !c.CombatStages.InRange() {
		return apperr.InvalidArgumentf("combat stages must be between %d and %d",
			entities.MinCombatStage, entities.MaxCombatStage)
	}
	if c.CurrentHP < 0 {
		return apperr.InvalidArgument("current hp cannot be negative")
	}

	return nil
}

func validateName(name, what string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.InvalidArgumentf("%s name is required", what)
	}
	if len(name) > MaxNameLength {
		return apperr.InvalidArgumentf("%s name cannot exceed %d characters", what, MaxNameLength)
	}
	return nil
}
