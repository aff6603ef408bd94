package character

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/pokesheet/internal/dice"
	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/sortorder"
)

// AddAttachment appends an attachment after its existing siblings
func (s *service) AddAttachment(ctx context.Context, input *AddAttachmentInput) (*entities.Attachment, error) {
	if err := ValidateInput(input); err != nil {
		return nil, apperr.Wrap(err, "invalid attachment input").
			WithMeta("operation", "AddAttachment")
	}

	char, err := s.GetCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	id, err := s.repository.NextAttachmentID(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to allocate attachment id").
			WithMeta("character_id", char.ID)
	}

	attachment := &entities.Attachment{
		ID:            id,
		Kind:          input.Kind,
		Name:          input.Name,
		Description:   input.Description,
		SortOrder:     len(char.Siblings(input.Kind)),
		Type:          input.Type,
		Category:      input.Category,
		Frequency:     input.Frequency,
		AccuracyCheck: input.AccuracyCheck,
		DamageDice:    input.DamageDice,
		Rank:          input.Rank,
		Value:         input.Value,
	}
	char.Attachments = append(char.Attachments, attachment)

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to save attachment").
			WithMeta("character_id", char.ID).
			WithMeta("attachment_id", id)
	}
	return attachment, nil
}

// RemoveAttachment drops an attachment and compacts the siblings left behind
func (s *service) RemoveAttachment(ctx context.Context, characterID string, attachmentID int64) (*entities.Character, error) {
	char, attachment, err := s.loadAttachment(ctx, characterID, attachmentID)
	if err != nil {
		return nil, err
	}

	char.RemoveAttachment(attachment.ID)
	for _, shift := range sortorder.Compact(char.Siblings(attachment.Kind), entities.Position) {
		shift.Item.SortOrder = shift.Position
	}

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to remove attachment").
			WithMeta("character_id", char.ID).
			WithMeta("attachment_id", attachmentID)
	}
	return char, nil
}

// MoveAttachment reorders an attachment among its siblings. The shifted
// siblings and the moved item are persisted in one write.
func (s *service) MoveAttachment(ctx context.Context, characterID string, attachmentID int64, position int) (*entities.Character, error) {
	char, attachment, err := s.loadAttachment(ctx, characterID, attachmentID)
	if err != nil {
		return nil, err
	}

	previous := attachment.SortOrder
	shifts, err := sortorder.ShiftedPositions(previous, position, char.Siblings(attachment.Kind), entities.Position)
	if err != nil {
		return nil, apperr.Wrap(err, "invalid attachment position").
			WithMeta("character_id", char.ID).
			WithMeta("attachment_id", attachmentID)
	}
	if previous == position {
		return char, nil
	}

	for _, shift := range shifts {
		shift.Item.SortOrder = shift.Position
	}
	attachment.SortOrder = position

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to save attachment order").
			WithMeta("character_id", char.ID).
			WithMeta("attachment_id", attachmentID)
	}

	s.logger.Debug("attachment moved",
		zap.String("character_id", char.ID),
		zap.Int64("attachment_id", attachmentID),
		zap.Int("from", previous),
		zap.Int("to", position),
		zap.Int("shifted", len(shifts)))
	return char, nil
}

// RollDamage rolls the damage dice of a move
func (s *service) RollDamage(ctx context.Context, input *RollDamageInput) (*dice.RollResult, error) {
	if err := ValidateInput(input); err != nil {
		return nil, apperr.Wrap(err, "invalid roll input").
			WithMeta("operation", "RollDamage")
	}

	_, attachment, err := s.loadAttachment(ctx, input.CharacterID, input.AttachmentID)
	if err != nil {
		return nil, err
	}
	if attachment.Kind != entities.AttachmentKindMove {
		return nil, apperr.InvalidArgumentf("'%s' is a %s, not a move", attachment.Name, attachment.Kind).
			WithMeta("attachment_id", attachment.ID)
	}
	if attachment.DamageDice == "" {
		return nil, apperr.InvalidArgumentf("move '%s' has no damage dice", attachment.Name).
			WithMeta("attachment_id", attachment.ID)
	}

	notation, err := dice.Parse(attachment.DamageDice)
	if err != nil {
		return nil, apperr.Wrap(err, "stored damage dice are invalid").
			WithMeta("attachment_id", attachment.ID)
	}

	result, err := dice.RollDamage(s.roller, notation, input.Critical)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll damage").
			WithMeta("attachment_id", attachment.ID)
	}
	return result, nil
}

func (s *service) loadAttachment(ctx context.Context, characterID string, attachmentID int64) (*entities.Character, *entities.Attachment, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, nil, err
	}

	attachment, ok := char.Attachment(attachmentID)
	if !ok {
		return nil, nil, apperr.NotFoundf("attachment %d not found on character '%s'", attachmentID, characterID).
			WithMeta("character_id", characterID).
			WithMeta("attachment_id", attachmentID)
	}
	return char, attachment, nil
}
