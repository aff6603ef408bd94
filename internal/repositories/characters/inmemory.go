package characters

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	characters   map[string]*entities.Character
	attachmentID int64
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*entities.Character),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, character *entities.Character) error {
	if err := validateForWrite(character); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.ID]; exists {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", character.ID).
			WithMeta("character_id", character.ID)
	}

	character.Version = 1
	character.CreatedAt = now()
	character.UpdatedAt = character.CreatedAt
	r.characters[character.ID] = character.Clone()

	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	character, exists := r.characters[id]
	if !exists {
		return nil, apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	return character.Clone(), nil
}

// GetByOwner retrieves all characters for a specific owner
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}
	return r.filter(func(c *entities.Character) bool { return c.OwnerID == ownerID }), nil
}

// GetByTrainer retrieves the Pokémon a trainer carries
func (r *InMemoryRepository) GetByTrainer(ctx context.Context, trainerID string) ([]*entities.Character, error) {
	if trainerID == "" {
		return nil, apperr.InvalidArgument("trainer ID is required")
	}
	return r.filter(func(c *entities.Character) bool { return c.TrainerID == trainerID }), nil
}

func (r *InMemoryRepository) filter(keep func(*entities.Character) bool) []*entities.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Character, 0)
	for _, char := range r.characters {
		if keep(char) {
			result = append(result, char.Clone())
		}
	}
	slices.SortFunc(result, less)
	return result
}

// Update updates an existing character
func (r *InMemoryRepository) Update(ctx context.Context, character *entities.Character) error {
	if err := validateForWrite(character); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.characters[character.ID]
	if !exists {
		return apperr.NotFoundf("character with ID '%s' not found", character.ID).
			WithMeta("character_id", character.ID)
	}
	if stored.Version != character.Version {
		return versionConflict(character.ID, stored.Version, character.Version)
	}

	character.Version++
	character.CreatedAt = stored.CreatedAt
	character.UpdatedAt = now()
	r.characters[character.ID] = character.Clone()

	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return apperr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	delete(r.characters, id)
	return nil
}

// NextAttachmentID hands out a unique attachment id
func (r *InMemoryRepository) NextAttachmentID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attachmentID++
	return r.attachmentID, nil
}

func validateForWrite(character *entities.Character) error {
	if character == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" {
		return apperr.InvalidArgument("character ID is required")
	}
	if character.OwnerID == "" {
		return apperr.InvalidArgument("character owner ID is required")
	}
	return nil
}

func versionConflict(id string, stored, given int64) error {
	return apperr.Conflictf("character '%s' was modified (stored version %d, given %d)", id, stored, given).
		WithMeta("character_id", id).
		WithMeta("stored_version", stored).
		WithMeta("given_version", given)
}
