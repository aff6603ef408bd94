package campaign

//go:generate mockgen -destination=mock/mock.go -package=mockcampaign -source=service.go

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/logging"
	"github.com/KirkDiggler/pokesheet/internal/repositories/campaigns"
	"github.com/KirkDiggler/pokesheet/internal/rulesets"
	"github.com/KirkDiggler/pokesheet/internal/uuid"
)

// MaxNameLength bounds campaign names
const MaxNameLength = 80

// Service defines the campaign service interface
type Service interface {
	// CreateCampaign creates a campaign run by OwnerID
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*entities.Campaign, error)

	// GetCampaign retrieves a campaign by ID
	GetCampaign(ctx context.Context, campaignID string) (*entities.Campaign, error)

	// ListCampaigns lists the campaigns a GM runs
	ListCampaigns(ctx context.Context, ownerID string) ([]*entities.Campaign, error)

	// UpdateRuleset replaces a campaign's ruleset after compiling every formula
	UpdateRuleset(ctx context.Context, campaignID string, ruleset *entities.Ruleset) (*entities.Campaign, error)

	// DeleteCampaign removes a campaign
	DeleteCampaign(ctx context.Context, campaignID string) error

	// Ruleset returns the campaign's ruleset. An empty campaign ID or a
	// campaign without a custom ruleset gets the built-in one.
	Ruleset(ctx context.Context, campaignID string) (*entities.Ruleset, error)
}

// CreateCampaignInput contains the data needed to create a campaign
type CreateCampaignInput struct {
	OwnerID string
	Name    string

	// Ruleset defaults to the built-in ruleset
	Ruleset *entities.Ruleset
}

// Validate checks CreateCampaignInput for validity
func (i *CreateCampaignInput) Validate() error {
	if i == nil {
		return apperr.InvalidArgument("CreateCampaignInput cannot be nil")
	}
	if strings.TrimSpace(i.OwnerID) == "" {
		return apperr.InvalidArgument("owner ID is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return apperr.InvalidArgument("campaign name is required")
	}
	if len(i.Name) > MaxNameLength {
		return apperr.InvalidArgumentf("campaign name cannot exceed %d characters", MaxNameLength)
	}
	if i.Ruleset != nil {
		return rulesets.Validate(i.Ruleset)
	}
	return nil
}

type service struct {
	repository    campaigns.Repository
	uuidGenerator uuid.Generator
	logger        *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    campaigns.Repository // Required
	UUIDGenerator uuid.Generator
	Logger        *zap.Logger
}

// NewService creates a new campaign service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logging.OrNop(cfg.Logger),
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}

func (s *service) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*entities.Campaign, error) {
	if err := input.Validate(); err != nil {
		return nil, apperr.Wrap(err, "invalid campaign input").
			WithMeta("operation", "CreateCampaign")
	}

	campaign := &entities.Campaign{
		ID:      s.uuidGenerator.New(),
		OwnerID: input.OwnerID,
		Name:    input.Name,
		Ruleset: input.Ruleset,
	}
	if err := s.repository.Create(ctx, campaign); err != nil {
		return nil, apperr.Wrap(err, "failed to save campaign").
			WithMeta("campaign_id", campaign.ID)
	}

	s.logger.Info("campaign created",
		zap.String("campaign_id", campaign.ID),
		zap.String("owner_id", campaign.OwnerID))
	return campaign, nil
}

func (s *service) GetCampaign(ctx context.Context, campaignID string) (*entities.Campaign, error) {
	if campaignID == "" {
		return nil, apperr.InvalidArgument("campaign ID is required")
	}

	campaign, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get campaign '%s'", campaignID).
			WithMeta("campaign_id", campaignID)
	}
	return campaign, nil
}

func (s *service) ListCampaigns(ctx context.Context, ownerID string) ([]*entities.Campaign, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	list, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list campaigns").WithMeta("owner_id", ownerID)
	}
	return list, nil
}

func (s *service) UpdateRuleset(ctx context.Context, campaignID string, ruleset *entities.Ruleset) (*entities.Campaign, error) {
	if err := rulesets.Validate(ruleset); err != nil {
		return nil, apperr.Wrap(err, "invalid ruleset").WithMeta("campaign_id", campaignID)
	}

	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	campaign.Ruleset = ruleset
	if err := s.repository.Update(ctx, campaign); err != nil {
		return nil, apperr.Wrap(err, "failed to save ruleset").WithMeta("campaign_id", campaignID)
	}

	s.logger.Info("ruleset updated",
		zap.String("campaign_id", campaignID),
		zap.String("ruleset", ruleset.Name))
	return campaign, nil
}

func (s *service) DeleteCampaign(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return apperr.InvalidArgument("campaign ID is required")
	}
	if err := s.repository.Delete(ctx, campaignID); err != nil {
		return apperr.Wrap(err, "failed to delete campaign").WithMeta("campaign_id", campaignID)
	}
	return nil
}

func (s *service) Ruleset(ctx context.Context, campaignID string) (*entities.Ruleset, error) {
	if campaignID == "" {
		return rulesets.Default(), nil
	}

	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.Ruleset == nil {
		return rulesets.Default(), nil
	}
	return campaign.Ruleset, nil
}
