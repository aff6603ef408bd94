package campaigns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

const (
	// Key patterns
	campaignKeyPrefix = "campaign:"
	ownerCampaignsKey = "owner:%s:campaigns"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed campaign repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}
	return &redisRepository{client: cfg.Client}
}

func (r *redisRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	stored := campaign.Clone()
	stored.CreatedAt = now()
	stored.UpdatedAt = stored.CreatedAt
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to serialize campaign: %w", err)
	}

	created, err := r.client.SetNX(ctx, campaignKeyPrefix+campaign.ID, string(data), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	if !created {
		return apperr.AlreadyExistsf("campaign with ID '%s' already exists", campaign.ID).
			WithMeta("campaign_id", campaign.ID)
	}
	if err := r.client.SAdd(ctx, fmt.Sprintf(ownerCampaignsKey, campaign.OwnerID), campaign.ID).Err(); err != nil {
		return fmt.Errorf("failed to index campaign: %w", err)
	}

	campaign.CreatedAt = stored.CreatedAt
	campaign.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Campaign, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("campaign ID is required")
	}

	data, err := r.client.Get(ctx, campaignKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	var campaign entities.Campaign
	if err := json.Unmarshal(data, &campaign); err != nil {
		return nil, fmt.Errorf("failed to deserialize campaign: %w", err)
	}
	return &campaign, nil
}

func (r *redisRepository) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Campaign, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(ownerCampaignsKey, ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign IDs: %w", err)
	}

	result := make([]*entities.Campaign, 0, len(ids))
	for _, id := range ids {
		campaign, err := r.Get(ctx, id)
		if apperr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, campaign)
	}
	slices.SortFunc(result, byCreation)
	return result, nil
}

func (r *redisRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	if err := validateForWrite(campaign); err != nil {
		return err
	}

	existing, err := r.Get(ctx, campaign.ID)
	if err != nil {
		return err
	}

	stored := campaign.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = now()
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to serialize campaign: %w", err)
	}

	if err := r.client.Set(ctx, campaignKeyPrefix+campaign.ID, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	campaign.CreatedAt = stored.CreatedAt
	campaign.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	campaign, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, campaignKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(ownerCampaignsKey, campaign.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}
