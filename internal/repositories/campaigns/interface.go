package campaigns

//go:generate mockgen -destination=mock/mock.go -package=mockcampaigns -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/pokesheet/internal/entities"
)

// Repository defines the interface for campaign storage
type Repository interface {
	// Create stores a new campaign and stamps its timestamps
	Create(ctx context.Context, campaign *entities.Campaign) error

	// Get retrieves a campaign by ID
	Get(ctx context.Context, id string) (*entities.Campaign, error)

	// GetByOwner retrieves the campaigns a GM runs
	GetByOwner(ctx context.Context, ownerID string) ([]*entities.Campaign, error)

	// Update replaces an existing campaign
	Update(ctx context.Context, campaign *entities.Campaign) error

	// Delete removes a campaign
	Delete(ctx context.Context, id string) error
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func byCreation(a, b *entities.Campaign) int {
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
