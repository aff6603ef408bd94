package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokesheet/internal/entities"
)

func TestEffectiveness(t *testing.T) {
	tests := []struct {
		name     string
		attack   entities.PokemonType
		defender []entities.PokemonType
		want     float64
	}{
		{"neutral", entities.TypeNormal, []entities.PokemonType{entities.TypeFire}, 1},
		{"super effective", entities.TypeWater, []entities.PokemonType{entities.TypeFire}, 1.5},
		{"doubly super effective", entities.TypeWater, []entities.PokemonType{entities.TypeFire, entities.TypeGround}, 2},
		{"resisted", entities.TypeFire, []entities.PokemonType{entities.TypeWater}, 0.5},
		{"cancels out", entities.TypeFire, []entities.PokemonType{entities.TypeGrass, entities.TypeWater}, 1},
		{"immunity wins", entities.TypeElectric, []entities.PokemonType{entities.TypeWater, entities.TypeGround}, 0},
		{"ghost immune to normal", entities.TypeNormal, []entities.PokemonType{entities.TypeGhost}, 0},
		{"unknown attack", entities.PokemonType("shadow"), []entities.PokemonType{entities.TypeFire}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.Effectiveness(tt.attack, tt.defender))
		})
	}
}

func TestDefensiveChart(t *testing.T) {
	chart := entities.DefensiveChart([]entities.PokemonType{entities.TypeElectric})
	assert.Len(t, chart, len(entities.AllTypes))
	assert.Equal(t, 1.5, chart[entities.TypeGround])
	assert.Equal(t, 0.5, chart[entities.TypeSteel])
	assert.Equal(t, 0.5, chart[entities.TypeElectric])
	assert.Equal(t, 1.0, chart[entities.TypeFire])
}

func TestCharacter_Siblings(t *testing.T) {
	char := &entities.Character{
		Attachments: []*entities.Attachment{
			{ID: 1, Kind: entities.AttachmentKindMove, Name: "Tackle", SortOrder: 1},
			{ID: 2, Kind: entities.AttachmentKindSkill, Name: "Athletics", SortOrder: 0},
			{ID: 3, Kind: entities.AttachmentKindMove, Name: "Growl", SortOrder: 0},
		},
	}

	moves := char.Siblings(entities.AttachmentKindMove)
	require.Len(t, moves, 2)
	assert.Equal(t, "Growl", moves[0].Name)
	assert.Equal(t, "Tackle", moves[1].Name)

	assert.True(t, char.RemoveAttachment(3))
	assert.False(t, char.RemoveAttachment(3))
	_, ok := char.Attachment(3)
	assert.False(t, ok)

	// remaining positions are left for the caller to compact
	moves = char.Siblings(entities.AttachmentKindMove)
	require.Len(t, moves, 1)
	assert.Equal(t, 1, moves[0].SortOrder)
}

func TestCharacter_CloneIsDeep(t *testing.T) {
	char := &entities.Character{
		ID:          "p1",
		Types:       []entities.PokemonType{entities.TypeElectric},
		Attachments: []*entities.Attachment{{ID: 1, Name: "Tackle"}},
	}

	clone := char.Clone()
	clone.Types[0] = entities.TypeWater
	clone.Attachments[0].Name = "Growl"

	assert.Equal(t, entities.TypeElectric, char.Types[0])
	assert.Equal(t, "Tackle", char.Attachments[0].Name)
	assert.Nil(t, (*entities.Character)(nil).Clone())
}

func TestStages_InRange(t *testing.T) {
	assert.True(t, entities.Stages{Attack: 6, Speed: -6}.InRange())
	assert.False(t, entities.Stages{Defense: 7}.InRange())
	assert.False(t, entities.Stages{SpecialDefense: -7}.InRange())
}
