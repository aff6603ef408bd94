package testutils

import (
	"github.com/KirkDiggler/pokesheet/internal/entities"
)

// CreateTestPokemon creates a level 10 Pokémon with a typical stat spread
func CreateTestPokemon(id, ownerID, trainerID, name string) *entities.Character {
	return &entities.Character{
		ID:        id,
		OwnerID:   ownerID,
		TrainerID: trainerID,
		Kind:      entities.CharacterKindPokemon,
		Name:      name,
		Species:   "Pikachu",
		Nature:    "Hardy",
		Level:     10,
		Types:     []entities.PokemonType{entities.TypeElectric},
		BaseStats: entities.Stats{
			HP:             4,
			Attack:         6,
			Defense:        4,
			SpecialAttack:  5,
			SpecialDefense: 5,
			Speed:          9,
		},
		AddedStats: entities.Stats{
			Attack: 2,
			Speed:  3,
		},
		CurrentHP: 32,
		Abilities: []string{"Static"},
	}
}

// CreateTestTrainer creates a trainer sheet
func CreateTestTrainer(id, ownerID, name string) *entities.Character {
	return &entities.Character{
		ID:      id,
		OwnerID: ownerID,
		Kind:    entities.CharacterKindTrainer,
		Name:    name,
		Level:   5,
		BaseStats: entities.Stats{
			HP:             10,
			Attack:         5,
			Defense:        5,
			SpecialAttack:  5,
			SpecialDefense: 5,
			Speed:          5,
		},
		CurrentHP: 50,
	}
}

// CreateTestMove creates a move attachment at the given position
func CreateTestMove(id int64, name string, sortOrder int) *entities.Attachment {
	return &entities.Attachment{
		ID:            id,
		Kind:          entities.AttachmentKindMove,
		Name:          name,
		SortOrder:     sortOrder,
		Type:          entities.TypeElectric,
		Category:      entities.MoveCategorySpecial,
		Frequency:     "At-Will",
		AccuracyCheck: 2,
		DamageDice:    "2d6+8",
	}
}

// CreateTestSkill creates a skill attachment at the given position
func CreateTestSkill(id int64, name string, rank, sortOrder int) *entities.Attachment {
	return &entities.Attachment{
		ID:        id,
		Kind:      entities.AttachmentKindSkill,
		Name:      name,
		SortOrder: sortOrder,
		Rank:      rank,
	}
}

// CreateTestCampaign creates a campaign without a custom ruleset
func CreateTestCampaign(id, ownerID, name string) *entities.Campaign {
	return &entities.Campaign{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
	}
}
