package character

//go:generate mockgen -destination=mock/mock.go -package=mockcharacter -source=service.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/dice"
	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/formula"
	"github.com/KirkDiggler/pokesheet/internal/logging"
	"github.com/KirkDiggler/pokesheet/internal/repositories/characters"
	"github.com/KirkDiggler/pokesheet/internal/rulesets"
	"github.com/KirkDiggler/pokesheet/internal/uuid"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// Rulesets resolves the ruleset a character's derived stats are computed with
type Rulesets interface {
	// Ruleset returns the campaign's ruleset, or the default for an empty id
	Ruleset(ctx context.Context, campaignID string) (*entities.Ruleset, error)
}

// Service defines the character service interface
type Service interface {
	// CreateCharacter creates a trainer or Pokémon sheet
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*entities.Character, error)

	// ListCharacters lists all characters for a user
	ListCharacters(ctx context.Context, ownerID string) ([]*entities.Character, error)

	// ListTeam lists the Pokémon a trainer carries
	ListTeam(ctx context.Context, trainerID string) ([]*entities.Character, error)

	// UpdateCharacter applies a partial update
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*entities.Character, error)

	// DeleteCharacter removes a character. A deleted trainer's Pokémon are released.
	DeleteCharacter(ctx context.Context, characterID string) error

	// AddAttachment appends a move, capability, skill or edge to the end of its list
	AddAttachment(ctx context.Context, input *AddAttachmentInput) (*entities.Attachment, error)

	// RemoveAttachment drops an attachment and closes the gap it leaves
	RemoveAttachment(ctx context.Context, characterID string, attachmentID int64) (*entities.Character, error)

	// MoveAttachment moves an attachment to position within its list and
	// returns the updated character
	MoveAttachment(ctx context.Context, characterID string, attachmentID int64, position int) (*entities.Character, error)

	// DerivedStats evaluates the ruleset formulas for a character
	DerivedStats(ctx context.Context, characterID string) (*DerivedStats, error)

	// RollDamage rolls a move's damage dice
	RollDamage(ctx context.Context, input *RollDamageInput) (*dice.RollResult, error)
}

// service implements the Service interface
type service struct {
	repository       Repository
	rulesets         Rulesets
	uuidGenerator    uuid.Generator
	roller           dice.Roller
	logger           *zap.Logger
	missingStatValue float64
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	Rulesets      Rulesets       // Optional, defaults to the embedded ruleset
	UUIDGenerator uuid.Generator // Optional
	Roller        dice.Roller    // Optional
	Logger        *zap.Logger    // Optional

	// MissingStatValue is used when a ruleset does not set its own.
	// Nil means formula.DefaultMissingValue.
	MissingStatValue *float64
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:       cfg.Repository,
		rulesets:         cfg.Rulesets,
		uuidGenerator:    cfg.UUIDGenerator,
		roller:           cfg.Roller,
		logger:           logging.OrNop(cfg.Logger),
		missingStatValue: formula.DefaultMissingValue,
	}
	if svc.rulesets == nil {
		svc.rulesets = defaultRulesets{}
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if cfg.MissingStatValue != nil {
		svc.missingStatValue = *cfg.MissingStatValue
	}

	return svc
}

type defaultRulesets struct{}

func (defaultRulesets) Ruleset(ctx context.Context, campaignID string) (*entities.Ruleset, error) {
	return rulesets.Default(), nil
}

// CreateCharacter creates a new character
func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*entities.Character, error) {
	if err := ValidateInput(input); err != nil {
		return nil, apperr.Wrap(err, "invalid character creation input").
			WithMeta("operation", "CreateCharacter")
	}

	char := &entities.Character{
		ID:           s.uuidGenerator.New(),
		OwnerID:      input.OwnerID,
		CampaignID:   input.CampaignID,
		TrainerID:    input.TrainerID,
		Kind:         input.Kind,
		Name:         input.Name,
		Species:      input.Species,
		Nature:       input.Nature,
		Level:        input.Level,
		Types:        input.Types,
		BaseStats:    input.BaseStats,
		AddedStats:   input.AddedStats,
		CombatStages: input.CombatStages,
		Abilities:    input.Abilities,
	}

	if err := s.checkTrainer(ctx, char); err != nil {
		return nil, err
	}

	if input.CurrentHP != nil {
		char.CurrentHP = *input.CurrentHP
	} else {
		// new sheets start at full health when the formula can be evaluated
		derived, err := s.derive(ctx, char)
		if err != nil {
			return nil, err
		}
		if hp, ok := derived.Value(entities.DerivedMaxHP); ok {
			char.CurrentHP = int(hp)
		}
	}

	if err := s.repository.Create(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to save character").
			WithMeta("character_id", char.ID)
	}

	s.logger.Info("character created",
		zap.String("character_id", char.ID),
		zap.String("owner_id", char.OwnerID),
		zap.String("kind", string(char.Kind)))
	return char, nil
}

// GetCharacter retrieves a character by ID
func (s *service) GetCharacter(ctx context.Context, characterID string) (*entities.Character, error) {
	if characterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get character '%s'", characterID).
			WithMeta("character_id", characterID)
	}
	return char, nil
}

// ListCharacters lists all characters for a user
func (s *service) ListCharacters(ctx context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, apperr.InvalidArgument("owner ID is required")
	}

	chars, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to list characters for owner '%s'", ownerID).
			WithMeta("owner_id", ownerID)
	}
	return chars, nil
}

// ListTeam lists the Pokémon a trainer carries
func (s *service) ListTeam(ctx context.Context, trainerID string) ([]*entities.Character, error) {
	if trainerID == "" {
		return nil, apperr.InvalidArgument("trainer ID is required")
	}

	team, err := s.repository.GetByTrainer(ctx, trainerID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to list team for trainer '%s'", trainerID).
			WithMeta("trainer_id", trainerID)
	}
	return team, nil
}

// UpdateCharacter applies a partial update
func (s *service) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*entities.Character, error) {
	if err := ValidateInput(input); err != nil {
		return nil, apperr.Wrap(err, "invalid character update input").
			WithMeta("operation", "UpdateCharacter")
	}

	char, err := s.GetCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	if input.Version != nil && *input.Version != char.Version {
		return nil, apperr.Conflictf("character '%s' is at version %d, not %d",
			char.ID, char.Version, *input.Version).
			WithMeta("character_id", char.ID)
	}

	trainerChanged := input.apply(char)
	if err := validateCharacter(char); err != nil {
		return nil, apperr.Wrap(err, "invalid character update").
			WithMeta("character_id", char.ID)
	}
	if trainerChanged {
		if err := s.checkTrainer(ctx, char); err != nil {
			return nil, err
		}
	}

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to update character").
			WithMeta("character_id", char.ID)
	}
	return char, nil
}

// DeleteCharacter removes a character
func (s *service) DeleteCharacter(ctx context.Context, characterID string) error {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return err
	}

	if char.Kind == entities.CharacterKindTrainer {
		team, err := s.ListTeam(ctx, char.ID)
		if err != nil {
			return err
		}
		for _, pokemon := range team {
			pokemon.TrainerID = ""
			if err := s.repository.Update(ctx, pokemon); err != nil {
				return apperr.Wrapf(err, "failed to release '%s' from trainer", pokemon.ID).
					WithMeta("character_id", pokemon.ID).
					WithMeta("trainer_id", char.ID)
			}
		}
		if len(team) > 0 {
			s.logger.Info("released team of deleted trainer",
				zap.String("trainer_id", char.ID),
				zap.Int("released", len(team)))
		}
	}

	if err := s.repository.Delete(ctx, characterID); err != nil {
		return apperr.Wrap(err, "failed to delete character").
			WithMeta("character_id", characterID)
	}
	return nil
}

// checkTrainer confirms a Pokémon's trainer exists, is a trainer and belongs
// to the same owner
func (s *service) checkTrainer(ctx context.Context, char *entities.Character) error {
	if char.TrainerID == "" {
		return nil
	}

	trainer, err := s.repository.Get(ctx, char.TrainerID)
	if apperr.IsNotFound(err) {
		return apperr.InvalidArgumentf("trainer '%s' does not exist", char.TrainerID).
			WithMeta("trainer_id", char.TrainerID)
	}
	if err != nil {
		return apperr.Wrap(err, "failed to get trainer").WithMeta("trainer_id", char.TrainerID)
	}
	if trainer.Kind != entities.CharacterKindTrainer {
		return apperr.InvalidArgumentf("'%s' is not a trainer", trainer.ID).
			WithMeta("trainer_id", trainer.ID)
	}
	if trainer.OwnerID != char.OwnerID {
		return apperr.PermissionDenied("trainer belongs to another user").
			WithMeta("trainer_id", trainer.ID)
	}
	return nil
}
