package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go
//go:generate mockgen -destination=mock/time_provider.go -package=mockcharacters -source=time_provider.go

import (
	"context"

	"github.com/KirkDiggler/pokesheet/internal/entities"
)

// Repository defines the interface for character persistence.
//
// Every implementation stores a character together with its attachments as one
// aggregate, so a reorder written through Update lands atomically.
type Repository interface {
	// Create stores a new character. It sets Version to 1 and both timestamps.
	Create(ctx context.Context, character *entities.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*entities.Character, error)

	// GetByOwner retrieves all characters for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error)

	// GetByTrainer retrieves the Pokémon a trainer carries
	GetByTrainer(ctx context.Context, trainerID string) ([]*entities.Character, error)

	// Update replaces the stored aggregate when character.Version matches the
	// stored version, then bumps Version and UpdatedAt on character.
	// A stale version returns a conflict error.
	Update(ctx context.Context, character *entities.Character) error

	// Delete removes a character and its attachments
	Delete(ctx context.Context, id string) error

	// NextAttachmentID hands out a unique attachment id
	NextAttachmentID(ctx context.Context) (int64, error)
}

// less orders listings by creation time, then id
func less(a, b *entities.Character) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
