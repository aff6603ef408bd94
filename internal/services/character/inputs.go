package character

import (
	"github.com/KirkDiggler/pokesheet/internal/entities"
)

// CreateCharacterInput contains the data needed to create a character
type CreateCharacterInput struct {
	OwnerID    string
	CampaignID string
	TrainerID  string
	Kind       entities.CharacterKind
	Name       string
	Species    string
	Nature     string
	Level      int

	Types        []entities.PokemonType
	BaseStats    entities.Stats
	AddedStats   entities.Stats
	CombatStages entities.Stages
	Abilities    []string

	// CurrentHP defaults to the derived max hp
	CurrentHP *int
}

// UpdateCharacterInput is a partial update. Nil fields are left unchanged.
type UpdateCharacterInput struct {
	CharacterID string

	// Version, when set, must match the stored version
	Version *int64

	Name         *string
	Species      *string
	Nature       *string
	Level        *int
	TrainerID    *string
	Types        *[]entities.PokemonType
	Abilities    *[]string
	BaseStats    *entities.Stats
	AddedStats   *entities.Stats
	CombatStages *entities.Stages
	CurrentHP    *int
}

// apply copies the set fields onto char and reports whether the trainer changed
func (i *UpdateCharacterInput) apply(char *entities.Character) bool {
	if i.Name != nil {
		char.Name = *i.Name
	}
	if i.Species != nil {
		char.Species = *i.Species
	}
	if i.Nature != nil {
		char.Nature = *i.Nature
	}
	if i.Level != nil {
		char.Level = *i.Level
	}
	if i.Types != nil {
		char.Types = *i.Types
	}
	if i.Abilities != nil {
		char.Abilities = *i.Abilities
	}
	if i.BaseStats != nil {
		char.BaseStats = *i.BaseStats
	}
	if i.AddedStats != nil {
		char.AddedStats = *i.AddedStats
	}
	if i.CombatStages != nil {
		char.CombatStages = *i.CombatStages
	}
	if i.CurrentHP != nil {
		char.CurrentHP = *i.CurrentHP
	}

	trainerChanged := i.TrainerID != nil && *i.TrainerID != char.TrainerID
	if trainerChanged {
		char.TrainerID = *i.TrainerID
	}
	return trainerChanged
}

// AddAttachmentInput describes a move, capability, skill or edge to append
type AddAttachmentInput struct {
	CharacterID string
	Kind        entities.AttachmentKind
	Name        string
	Description string

	Type          entities.PokemonType
	Category      entities.MoveCategory
	Frequency     string
	AccuracyCheck int
	DamageDice    string

	Rank  int
	Value int
}

// RollDamageInput selects the move to roll
type RollDamageInput struct {
	CharacterID  string
	AttachmentID int64
	Critical     bool
}
