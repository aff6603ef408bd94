package campaigns

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// InMemoryRepository keeps campaigns in a map
type InMemoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]*entities.Campaign
}

// NewInMemoryRepository creates a new in-memory campaign repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		campaigns: make(map[string]*entities.Campaign),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[campaign.ID]; exists {
		return apperr.AlreadyExistsf("campaign with ID '%s' already exists", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}

	campaign.CreatedAt = now()
	campaign.UpdatedAt = campaign.CreatedAt
	r.campaigns[campaign.ID] = campaign.Clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Campaign, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("campaign ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	campaign, exists := r.campaigns[id]
	if !exists {
		return nil, notFound(id)
	}
	return campaign.Clone(), nil
}

func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Campaign, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Campaign, 0)
	for _, campaign := range r.campaigns {
		if campaign.OwnerID == ownerID {
			result = append(result, campaign.Clone())
		}
	}
	slices.SortFunc(result, byCreation)
	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.campaigns[campaign.ID]
	if !exists {
		return notFound(campaign.ID)
	}

	campaign.CreatedAt = stored.CreatedAt
	campaign.UpdatedAt = now()
	r.campaigns[campaign.ID] = campaign.Clone()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("campaign ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[id]; !exists {
		return notFound(id)
	}
	delete(r.campaigns, id)
	return nil
}

func validateForWrite(campaign *entities.Campaign) error {
	if campaign == nil {
		return apperr.InvalidArgument("campaign cannot be nil")
	}
	if campaign.ID == "" {
		return apperr.InvalidArgument("campaign ID is required")
	}
	if campaign.OwnerID == "" {
		return apperr.InvalidArgument("campaign owner ID is required")
	}
	return nil
}

func notFound(id string) error {
	return apperr.NotFoundf("campaign with ID '%s' not found", id).
		WithMeta("campaign_id", id)
}
