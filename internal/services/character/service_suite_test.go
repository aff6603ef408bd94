package character_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	mockdice "github.com/KirkDiggler/pokesheet/internal/dice/mock"
	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/formula"
	mockrepo "github.com/KirkDiggler/pokesheet/internal/repositories/characters/mock"
	"github.com/KirkDiggler/pokesheet/internal/rulesets"
	"github.com/KirkDiggler/pokesheet/internal/services/character"
	mockcharacter "github.com/KirkDiggler/pokesheet/internal/services/character/mock"
	"github.com/KirkDiggler/pokesheet/internal/testutils"
	mockuuid "github.com/KirkDiggler/pokesheet/internal/uuid/mock"
)

// CharacterServiceTestSuite defines the test suite for character service
type CharacterServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepository *mockrepo.MockRepository
	mockRulesets   *mockcharacter.MockRulesets
	mockUUID       *mockuuid.MockGenerator
	roller         *mockdice.ManualMockRoller
	logs           *observer.ObservedLogs
	service        character.Service
	ctx            context.Context
}

// SetupTest runs before each test
func (s *CharacterServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepository = mockrepo.NewMockRepository(s.ctrl)
	s.mockRulesets = mockcharacter.NewMockRulesets(s.ctrl)
	s.mockUUID = mockuuid.NewMockGenerator(s.ctrl)
	s.roller = mockdice.NewManualMockRoller()
	s.ctx = context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	s.logs = logs

	s.service = character.NewService(&character.ServiceConfig{
		Repository:    s.mockRepository,
		Rulesets:      s.mockRulesets,
		UUIDGenerator: s.mockUUID,
		Roller:        s.roller,
		Logger:        zap.New(core),
	})
}

// TearDownTest runs after each test
func (s *CharacterServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCharacterServiceSuite(t *testing.T) {
	suite.Run(t, new(CharacterServiceTestSuite))
}

func (s *CharacterServiceTestSuite) pokemonWithMoves() *entities.Character {
	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	char.Version = 3
	char.Attachments = []*entities.Attachment{
		testutils.CreateTestMove(10, "Thunder Shock", 0),
		testutils.CreateTestMove(11, "Quick Attack", 1),
		testutils.CreateTestSkill(12, "Athletics", 3, 0),
		testutils.CreateTestMove(13, "Iron Tail", 2),
		testutils.CreateTestMove(14, "Thunderbolt", 3),
	}
	return char
}

func moveNames(char *entities.Character) []string {
	var names []string
	for _, m := range char.Siblings(entities.AttachmentKindMove) {
		names = append(names, m.Name)
	}
	return names
}

// CreateCharacter Tests

func (s *CharacterServiceTestSuite) TestCreateCharacter_DefaultsCurrentHPToMax() {
	input := &character.CreateCharacterInput{
		OwnerID:   "user_1",
		Kind:      entities.CharacterKindPokemon,
		Name:      "Sparky",
		Species:   "Pikachu",
		Level:     10,
		Types:     []entities.PokemonType{entities.TypeElectric},
		BaseStats: entities.Stats{HP: 4, Attack: 6, Defense: 4, SpecialAttack: 5, SpecialDefense: 5, Speed: 9},
	}

	s.mockUUID.EXPECT().New().Return("p1")
	s.mockRulesets.EXPECT().Ruleset(s.ctx, "").Return(rulesets.Default(), nil)
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, char *entities.Character) error {
			s.Equal("p1", char.ID)
			s.Equal(32, char.CurrentHP)
			return nil
		})

	char, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("Sparky", char.Name)
	s.Equal(32, char.CurrentHP)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_ExplicitCurrentHP() {
	hp := 5
	input := &character.CreateCharacterInput{
		OwnerID:   "user_1",
		Kind:      entities.CharacterKindTrainer,
		Name:      "Ash",
		Level:     5,
		CurrentHP: &hp,
	}

	s.mockUUID.EXPECT().New().Return("t1")
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	char, err := s.service.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(5, char.CurrentHP)
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_InvalidInput() {
	tests := []struct {
		name  string
		input *character.CreateCharacterInput
	}{
		{"nil input", nil},
		{"missing owner", &character.CreateCharacterInput{Kind: entities.CharacterKindPokemon, Name: "A", Level: 1}},
		{"unknown kind", &character.CreateCharacterInput{OwnerID: "u", Kind: "wizard", Name: "A", Level: 1}},
		{"blank name", &character.CreateCharacterInput{OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "  ", Level: 1}},
		{"level too high", &character.CreateCharacterInput{OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "A", Level: 101}},
		{"three types", &character.CreateCharacterInput{
			OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "A", Level: 1,
			Types: []entities.PokemonType{entities.TypeFire, entities.TypeWater, entities.TypeGrass},
		}},
		{"duplicate type", &character.CreateCharacterInput{
			OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "A", Level: 1,
			Types: []entities.PokemonType{entities.TypeFire, entities.TypeFire},
		}},
		{"negative stat", &character.CreateCharacterInput{
			OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "A", Level: 1,
			BaseStats: entities.Stats{Speed: -1},
		}},
		{"stage out of range", &character.CreateCharacterInput{
			OwnerID: "u", Kind: entities.CharacterKindPokemon, Name: "A", Level: 1,
			CombatStages: entities.Stages{Attack: 7},
		}},
		{"trainer with trainer", &character.CreateCharacterInput{
			OwnerID: "u", Kind: entities.CharacterKindTrainer, Name: "A", Level: 1, TrainerID: "t2",
		}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateCharacter(s.ctx, tt.input)
			s.Error(err)
			s.True(apperr.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_TrainerChecks() {
	input := func() *character.CreateCharacterInput {
		return &character.CreateCharacterInput{
			OwnerID:   "user_1",
			TrainerID: "t1",
			Kind:      entities.CharacterKindPokemon,
			Name:      "Sparky",
			Level:     10,
		}
	}

	s.Run("missing trainer", func() {
		s.mockUUID.EXPECT().New().Return("p1")
		s.mockRepository.EXPECT().Get(s.ctx, "t1").Return(nil, apperr.NotFound("character not found"))

		_, err := s.service.CreateCharacter(s.ctx, input())
		s.True(apperr.IsInvalidArgument(err))
	})

	s.Run("not a trainer", func() {
		s.mockUUID.EXPECT().New().Return("p1")
		s.mockRepository.EXPECT().Get(s.ctx, "t1").
			Return(testutils.CreateTestPokemon("t1", "user_1", "", "Other"), nil)

		_, err := s.service.CreateCharacter(s.ctx, input())
		s.True(apperr.IsInvalidArgument(err))
	})

	s.Run("someone else's trainer", func() {
		s.mockUUID.EXPECT().New().Return("p1")
		s.mockRepository.EXPECT().Get(s.ctx, "t1").
			Return(testutils.CreateTestTrainer("t1", "user_2", "Gary"), nil)

		_, err := s.service.CreateCharacter(s.ctx, input())
		s.Equal(apperr.CodePermissionDenied, apperr.GetCode(err))
	})
}

func (s *CharacterServiceTestSuite) TestCreateCharacter_RepositoryError() {
	hp := 1
	s.mockUUID.EXPECT().New().Return("p1")
	s.mockRepository.EXPECT().Create(s.ctx, gomock.Any()).Return(errors.New("database error"))

	_, err := s.service.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		OwnerID:   "user_1",
		Kind:      entities.CharacterKindPokemon,
		Name:      "Sparky",
		Level:     10,
		CurrentHP: &hp,
	})
	s.Error(err)
	s.Contains(err.Error(), "failed to save character")
}

// UpdateCharacter Tests

func (s *CharacterServiceTestSuite) TestUpdateCharacter_AppliesSetFields() {
	stored := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	stored.Version = 2
	level, name := 12, "Zappy"
	stages := entities.Stages{Speed: 2}

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(stored, nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, char *entities.Character) error {
			s.Equal(12, char.Level)
			s.Equal("Zappy", char.Name)
			s.Equal(2, char.CombatStages.Speed)
			s.Equal("Hardy", char.Nature)
			char.Version++
			return nil
		})

	char, err := s.service.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID:  "p1",
		Level:        &level,
		Name:         &name,
		CombatStages: &stages,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), char.Version)
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter_VersionMismatch() {
	stored := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	stored.Version = 4
	stale := int64(3)

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(stored, nil)

	_, err := s.service.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID: "p1",
		Version:     &stale,
	})
	s.True(apperr.IsConflict(err))
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter_RejectsInvalidMerge() {
	level := 0
	s.mockRepository.EXPECT().Get(s.ctx, "p1").
		Return(testutils.CreateTestPokemon("p1", "user_1", "", "Sparky"), nil)

	_, err := s.service.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{
		CharacterID: "p1",
		Level:       &level,
	})
	s.True(apperr.IsInvalidArgument(err))
}

func (s *CharacterServiceTestSuite) TestUpdateCharacter_ConflictFromRepository() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").
		Return(testutils.CreateTestPokemon("p1", "user_1", "", "Sparky"), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).
		Return(apperr.Conflictf("version mismatch"))

	name := "Zappy"
	_, err := s.service.UpdateCharacter(s.ctx, &character.UpdateCharacterInput{CharacterID: "p1", Name: &name})
	s.True(apperr.IsConflict(err))
}

// DeleteCharacter Tests

func (s *CharacterServiceTestSuite) TestDeleteCharacter_ReleasesTeam() {
	trainer := testutils.CreateTestTrainer("t1", "user_1", "Ash")
	team := []*entities.Character{
		testutils.CreateTestPokemon("p1", "user_1", "t1", "Sparky"),
		testutils.CreateTestPokemon("p2", "user_1", "t1", "Bulby"),
	}

	s.mockRepository.EXPECT().Get(s.ctx, "t1").Return(trainer, nil)
	s.mockRepository.EXPECT().GetByTrainer(s.ctx, "t1").Return(team, nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, char *entities.Character) error {
			s.Empty(char.TrainerID)
			return nil
		}).Times(2)
	s.mockRepository.EXPECT().Delete(s.ctx, "t1").Return(nil)

	s.Require().NoError(s.service.DeleteCharacter(s.ctx, "t1"))
}

func (s *CharacterServiceTestSuite) TestDeleteCharacter_NotFound() {
	s.mockRepository.EXPECT().Get(s.ctx, "missing").Return(nil, apperr.NotFound("not found"))

	err := s.service.DeleteCharacter(s.ctx, "missing")
	s.True(apperr.IsNotFound(err))
}

// Attachment Tests

func (s *CharacterServiceTestSuite) TestAddAttachment_AppendsAfterSiblings() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.mockRepository.EXPECT().NextAttachmentID(s.ctx).Return(int64(20), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, char *entities.Character) error {
			s.Len(char.Attachments, 6)
			return nil
		})

	attachment, err := s.service.AddAttachment(s.ctx, &character.AddAttachmentInput{
		CharacterID: "p1",
		Kind:        entities.AttachmentKindMove,
		Name:        "Volt Tackle",
		Type:        entities.TypeElectric,
		Category:    entities.MoveCategoryPhysical,
		DamageDice:  "3d12+10",
	})
	s.Require().NoError(err)
	s.Equal(int64(20), attachment.ID)
	s.Equal(4, attachment.SortOrder)
}

func (s *CharacterServiceTestSuite) TestAddAttachment_InvalidInput() {
	tests := []struct {
		name  string
		input *character.AddAttachmentInput
	}{
		{"unknown kind", &character.AddAttachmentInput{CharacterID: "p1", Kind: "item", Name: "Potion"}},
		{"missing name", &character.AddAttachmentInput{CharacterID: "p1", Kind: entities.AttachmentKindEdge}},
		{"bad dice", &character.AddAttachmentInput{CharacterID: "p1", Kind: entities.AttachmentKindMove, Name: "Tackle", DamageDice: "lots"}},
		{"bad type", &character.AddAttachmentInput{CharacterID: "p1", Kind: entities.AttachmentKindMove, Name: "Tackle", Type: "sound"}},
		{"rank too high", &character.AddAttachmentInput{CharacterID: "p1", Kind: entities.AttachmentKindSkill, Name: "Focus", Rank: 7}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.AddAttachment(s.ctx, tt.input)
			s.True(apperr.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *CharacterServiceTestSuite) TestMoveAttachment_SingleWrite() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, char *entities.Character) error {
			s.Equal([]string{"Thunderbolt", "Thunder Shock", "Quick Attack", "Iron Tail"}, moveNames(char))
			return nil
		}).Times(1)

	char, err := s.service.MoveAttachment(s.ctx, "p1", 14, 0)
	s.Require().NoError(err)

	for i, m := range char.Siblings(entities.AttachmentKindMove) {
		s.Equal(i, m.SortOrder)
	}
	skill, ok := char.Attachment(12)
	s.Require().True(ok)
	s.Equal(0, skill.SortOrder)
}

func (s *CharacterServiceTestSuite) TestMoveAttachment_Later() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	char, err := s.service.MoveAttachment(s.ctx, "p1", 10, 2)
	s.Require().NoError(err)
	s.Equal([]string{"Quick Attack", "Iron Tail", "Thunder Shock", "Thunderbolt"}, moveNames(char))
}

func (s *CharacterServiceTestSuite) TestMoveAttachment_SamePositionSkipsWrite() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)

	char, err := s.service.MoveAttachment(s.ctx, "p1", 11, 1)
	s.Require().NoError(err)
	s.Equal(int64(3), char.Version)
}

func (s *CharacterServiceTestSuite) TestMoveAttachment_OutOfRange() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)

	_, err := s.service.MoveAttachment(s.ctx, "p1", 11, 4)
	s.True(apperr.IsContractViolation(err))
}

func (s *CharacterServiceTestSuite) TestMoveAttachment_UnknownAttachment() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)

	_, err := s.service.MoveAttachment(s.ctx, "p1", 99, 0)
	s.True(apperr.IsNotFound(err))
}

func (s *CharacterServiceTestSuite) TestRemoveAttachment_Compacts() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.mockRepository.EXPECT().Update(s.ctx, gomock.Any()).Return(nil)

	char, err := s.service.RemoveAttachment(s.ctx, "p1", 11)
	s.Require().NoError(err)

	moves := char.Siblings(entities.AttachmentKindMove)
	s.Require().Len(moves, 3)
	for i, m := range moves {
		s.Equal(i, m.SortOrder)
	}
	s.Equal([]string{"Thunder Shock", "Iron Tail", "Thunderbolt"}, moveNames(char))
}

func (s *CharacterServiceTestSuite) TestRollDamage() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.roller.SetRolls([]int{3, 4})

	result, err := s.service.RollDamage(s.ctx, &character.RollDamageInput{CharacterID: "p1", AttachmentID: 10})
	s.Require().NoError(err)
	s.Equal(15, result.Total)
	s.Equal([]int{3, 4}, result.Rolls)
}

func (s *CharacterServiceTestSuite) TestRollDamage_CriticalDoublesDice() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)
	s.roller.SetRolls([]int{1, 2, 3, 4})

	result, err := s.service.RollDamage(s.ctx, &character.RollDamageInput{CharacterID: "p1", AttachmentID: 10, Critical: true})
	s.Require().NoError(err)
	s.Equal(18, result.Total)
	s.True(result.Critical)
}

func (s *CharacterServiceTestSuite) TestRollDamage_NotAMove() {
	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(s.pokemonWithMoves(), nil)

	_, err := s.service.RollDamage(s.ctx, &character.RollDamageInput{CharacterID: "p1", AttachmentID: 12})
	s.True(apperr.IsInvalidArgument(err))
}

// DerivedStats Tests

func (s *CharacterServiceTestSuite) TestDerivedStats_DefaultRuleset() {
	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	char.CombatStages.Speed = 2

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(char, nil)
	s.mockRulesets.EXPECT().Ruleset(s.ctx, "").Return(rulesets.Default(), nil)

	derived, err := s.service.DerivedStats(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("ptu-1.05", derived.Ruleset)

	expected := map[entities.DerivedStat]float64{
		entities.DerivedMaxHP:           32,
		entities.DerivedPhysicalEvasion: 0,
		entities.DerivedSpecialEvasion:  1,
		// 12 speed at +2 is 16
		entities.DerivedSpeedEvasion: 3,
	}
	for stat, want := range expected {
		got, ok := derived.Value(stat)
		s.True(ok, string(stat))
		s.Equal(want, got, string(stat))
	}
	s.Equal(float64(16), derived.Stats["staged_speed"])
	s.Equal(1.5, derived.Defenses[entities.TypeGround])
	s.Equal(0.5, derived.Defenses[entities.TypeSteel])
}

func (s *CharacterServiceTestSuite) TestDerivedStats_BadFormulaDoesNotFailSheet() {
	ruleset := rulesets.Default()
	ruleset.Pokemon.SpecialEvasion = "floor({staged_special_defense} / 0)"
	ruleset.Pokemon.SpeedEvasion = "{agility} + 1"
	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	char.CampaignID = "c1"

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(char, nil)
	s.mockRulesets.EXPECT().Ruleset(s.ctx, "c1").Return(ruleset, nil)

	derived, err := s.service.DerivedStats(s.ctx, "p1")
	s.Require().NoError(err)

	_, ok := derived.Value(entities.DerivedSpecialEvasion)
	s.False(ok)
	for _, v := range derived.Values {
		if v.Stat == entities.DerivedSpecialEvasion {
			s.Nil(v.Value)
			s.NotEmpty(v.Error)
		}
	}

	speed, ok := derived.Value(entities.DerivedSpeedEvasion)
	s.True(ok)
	s.Equal(float64(10000), speed)

	s.Equal(1, s.logs.FilterMessage("failed to evaluate formula").Len())
	warnings := s.logs.FilterMessage("formula references unknown stat").All()
	s.Require().Len(warnings, 1)
	s.Equal("agility", warnings[0].ContextMap()["stat"])
}

func (s *CharacterServiceTestSuite) TestDerivedStats_RulesetZeroSentinel() {
	ruleset := rulesets.Default()
	ruleset.MissingStatValue = formula.Sentinel(0)
	ruleset.Pokemon.SpeedEvasion = "{agility} + 1"
	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	char.CampaignID = "c1"

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(char, nil)
	s.mockRulesets.EXPECT().Ruleset(s.ctx, "c1").Return(ruleset, nil)

	derived, err := s.service.DerivedStats(s.ctx, "p1")
	s.Require().NoError(err)

	speed, ok := derived.Value(entities.DerivedSpeedEvasion)
	s.True(ok)
	s.Equal(1.0, speed)
}

func (s *CharacterServiceTestSuite) TestDerivedStats_RulesetError() {
	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	char.CampaignID = "gone"

	s.mockRepository.EXPECT().Get(s.ctx, "p1").Return(char, nil)
	s.mockRulesets.EXPECT().Ruleset(s.ctx, "gone").Return(nil, apperr.NotFound("campaign not found"))

	_, err := s.service.DerivedStats(s.ctx, "p1")
	s.True(apperr.IsNotFound(err))
}
