package services

import (
	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/dice"
	"github.com/KirkDiggler/pokesheet/internal/repositories/campaigns"
	"github.com/KirkDiggler/pokesheet/internal/repositories/characters"
	campaignService "github.com/KirkDiggler/pokesheet/internal/services/campaign"
	characterService "github.com/KirkDiggler/pokesheet/internal/services/character"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	CampaignService  campaignService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	CampaignRepository  campaigns.Repository
	Roller              dice.Roller
	Logger              *zap.Logger
	MissingStatValue    *float64
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	campaignRepo := cfg.CampaignRepository
	if campaignRepo == nil {
		campaignRepo = campaigns.NewInMemoryRepository()
	}

	campaignSvc := campaignService.NewService(&campaignService.ServiceConfig{
		Repository: campaignRepo,
		Logger:     cfg.Logger,
	})

	// campaigns resolve the ruleset each character is derived with
	charSvc := characterService.NewService(&characterService.ServiceConfig{
		Repository:       charRepo,
		Rulesets:         campaignSvc,
		Roller:           cfg.Roller,
		Logger:           cfg.Logger,
		MissingStatValue: cfg.MissingStatValue,
	})

	return &Provider{
		CharacterService: charSvc,
		CampaignService:  campaignSvc,
	}
}
