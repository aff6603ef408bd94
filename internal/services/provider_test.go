package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	"github.com/KirkDiggler/pokesheet/internal/rulesets"
	"github.com/KirkDiggler/pokesheet/internal/services"
	"github.com/KirkDiggler/pokesheet/internal/services/campaign"
	"github.com/KirkDiggler/pokesheet/internal/services/character"
)

func TestProvider_CampaignRulesetDrivesDerivedStats(t *testing.T) {
	ctx := context.Background()
	provider := services.NewProvider(&services.ProviderConfig{})

	c, err := provider.CampaignService.CreateCampaign(ctx, &campaign.CreateCampaignInput{OwnerID: "gm", Name: "Johto"})
	require.NoError(t, err)

	house := rulesets.Default()
	house.Name = "house"
	house.Pokemon.MaxHP = "{total_hp} * 10"
	_, err = provider.CampaignService.UpdateRuleset(ctx, c.ID, house)
	require.NoError(t, err)

	char, err := provider.CharacterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		OwnerID:    "user_1",
		CampaignID: c.ID,
		Kind:       entities.CharacterKindPokemon,
		Name:       "Sparky",
		Level:      10,
		BaseStats:  entities.Stats{HP: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 40, char.CurrentHP)

	derived, err := provider.CharacterService.DerivedStats(ctx, char.ID)
	require.NoError(t, err)
	assert.Equal(t, "house", derived.Ruleset)
}
