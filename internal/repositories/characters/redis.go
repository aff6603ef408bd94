package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

const attachmentSequenceKey = "attachment:id_seq"

// maxFanOut bounds concurrent GETs during list reads
const maxFanOut = 8

// redisRepo implements the Repository interface using Redis.
// A character and its attachments are one JSON document.
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	if cfg.TimeProvider == nil {
		cfg.TimeProvider = realTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func (r *redisRepo) trainerPokemonKey(trainerID string) string {
	return fmt.Sprintf("trainer:%s:pokemon", trainerID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *entities.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	stored := char.Clone()
	stored.Version = 1
	stored.CreatedAt = r.timeProvider.Now()
	stored.UpdatedAt = stored.CreatedAt

	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)
	if char.TrainerID != "" {
		pipe.SAdd(ctx, r.trainerPokemonKey(char.TrainerID), char.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	char.Version = stored.Version
	char.CreatedAt = stored.CreatedAt
	char.UpdatedAt = stored.UpdatedAt
	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	return decode(data)
}

// GetByOwner retrieves all characters for a specific owner
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	return r.getIndexed(ctx, r.ownerCharactersKey(ownerID))
}

// GetByTrainer retrieves the Pokémon a trainer carries
func (r *redisRepo) GetByTrainer(ctx context.Context, trainerID string) ([]*entities.Character, error) {
	if trainerID == "" {
		return nil, apperr.InvalidArgument("trainer ID is required")
	}
	return r.getIndexed(ctx, r.trainerPokemonKey(trainerID))
}

// getIndexed loads every character listed in an index set. Ids whose document
// has gone away are skipped.
func (r *redisRepo) getIndexed(ctx context.Context, indexKey string) ([]*entities.Character, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	loaded := make([]*entities.Character, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOut)
	for i, id := range ids {
		g.Go(func() error {
			char, err := r.Get(gctx, id)
			if apperr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			loaded[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*entities.Character, 0, len(loaded))
	for _, char := range loaded {
		if char != nil {
			result = append(result, char)
		}
	}
	slices.SortFunc(result, less)
	return result, nil
}

// Update replaces the stored document under WATCH so a concurrent writer
// between the version check and the SET aborts this transaction.
func (r *redisRepo) Update(ctx context.Context, char *entities.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	key := r.key(char.ID)
	var next *entities.Character
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperr.NotFoundf("character with ID '%s' not found", char.ID).
				WithMeta("character_id", char.ID)
		}
		if err != nil {
			return fmt.Errorf("failed to get existing character: %w", err)
		}

		existing, err := decode(data)
		if err != nil {
			return err
		}
		if existing.Version != char.Version {
			return versionConflict(char.ID, existing.Version, char.Version)
		}

		next = char.Clone()
		next.Version = existing.Version + 1
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = r.timeProvider.Now()

		jsonData, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal character: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, string(jsonData), 0)
			if existing.OwnerID != next.OwnerID {
				pipe.SRem(ctx, r.ownerCharactersKey(existing.OwnerID), char.ID)
				pipe.SAdd(ctx, r.ownerCharactersKey(next.OwnerID), char.ID)
			}
			if existing.TrainerID != next.TrainerID {
				if existing.TrainerID != "" {
					pipe.SRem(ctx, r.trainerPokemonKey(existing.TrainerID), char.ID)
				}
				if next.TrainerID != "" {
					pipe.SAdd(ctx, r.trainerPokemonKey(next.TrainerID), char.ID)
				}
			}
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return apperr.Conflictf("character '%s' was modified concurrently", char.ID).
			WithMeta("character_id", char.ID)
	}
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return fmt.Errorf("failed to update character: %w", err)
	}

	char.Version = next.Version
	char.CreatedAt = next.CreatedAt
	char.UpdatedAt = next.UpdatedAt
	return nil
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(char.OwnerID), id)
	if char.TrainerID != "" {
		pipe.SRem(ctx, r.trainerPokemonKey(char.TrainerID), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	return nil
}

// NextAttachmentID hands out a unique attachment id
func (r *redisRepo) NextAttachmentID(ctx context.Context) (int64, error) {
	id, err := r.client.Incr(ctx, attachmentSequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate attachment id: %w", err)
	}
	return id, nil
}

func decode(data []byte) (*entities.Character, error) {
	var char entities.Character
	if err := json.Unmarshal(data, &char); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &char, nil
}
