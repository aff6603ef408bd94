package characters_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokesheet/internal/entities"
	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/KirkDiggler/pokesheet/internal/repositories/characters"
	"github.com/KirkDiggler/pokesheet/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) characters.Repository
	repo    characters.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo = s.newRepo(s.T())
	s.ctx = context.Background()
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) characters.Repository {
			return characters.NewInMemoryRepository()
		},
	})
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) characters.Repository {
			return characters.NewSQLiteRepository(&characters.SQLiteRepoConfig{
				DB: testutils.CreateTestSQLite(t),
			})
		},
	})
}

func (s *RepositoryTestSuite) withMoves(char *entities.Character) *entities.Character {
	char.Attachments = []*entities.Attachment{
		testutils.CreateTestMove(1, "Thunder Shock", 0),
		testutils.CreateTestMove(2, "Quick Attack", 1),
		testutils.CreateTestMove(3, "Iron Tail", 2),
		testutils.CreateTestSkill(4, "Athletics", 3, 0),
	}
	return char
}

func (s *RepositoryTestSuite) TestCreate_Success() {
	char := s.withMoves(testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky"))

	err := s.repo.Create(s.ctx, char)
	s.Require().NoError(err)
	s.Equal(int64(1), char.Version)
	s.False(char.CreatedAt.IsZero())
	s.True(char.CreatedAt.Equal(char.UpdatedAt))

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal("Sparky", got.Name)
	s.Equal(entities.CharacterKindPokemon, got.Kind)
	s.Equal(char.BaseStats, got.BaseStats)
	s.Equal(char.AddedStats, got.AddedStats)
	s.Equal(char.Types, got.Types)
	s.Equal(char.Abilities, got.Abilities)
	s.Equal(int64(1), got.Version)
	s.True(char.CreatedAt.Equal(got.CreatedAt))
	s.Equal(char.Siblings(entities.AttachmentKindMove), got.Siblings(entities.AttachmentKindMove))
	s.Equal(char.Siblings(entities.AttachmentKindSkill), got.Siblings(entities.AttachmentKindSkill))
}

func (s *RepositoryTestSuite) TestCreate_DuplicateID() {
	char := testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky")
	s.Require().NoError(s.repo.Create(s.ctx, char))

	err := s.repo.Create(s.ctx, testutils.CreateTestPokemon("char_123", "user_456", "", "Other"))
	s.Error(err)
	s.True(apperr.IsAlreadyExists(err))
}

func (s *RepositoryTestSuite) TestCreate_RequiresIDs() {
	s.True(apperr.IsInvalidArgument(s.repo.Create(s.ctx, nil)))
	s.True(apperr.IsInvalidArgument(s.repo.Create(s.ctx, &entities.Character{OwnerID: "user_456"})))
	s.True(apperr.IsInvalidArgument(s.repo.Create(s.ctx, &entities.Character{ID: "char_123"})))
}

func (s *RepositoryTestSuite) TestGet_IsolatesData() {
	char := s.withMoves(testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky"))
	s.Require().NoError(s.repo.Create(s.ctx, char))

	char.Name = "Changed"
	char.Attachments[0].Name = "Changed"

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal("Sparky", got.Name)

	got.Attachments[0].Name = "Mutated"
	again, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal("Thunder Shock", again.Siblings(entities.AttachmentKindMove)[0].Name)
}

func (s *RepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, "missing")
	s.True(apperr.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, "")
	s.True(apperr.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGetByOwner() {
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestTrainer("char_a", "user_1", "Ash")))
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestPokemon("char_b", "user_1", "char_a", "Sparky")))
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestPokemon("char_c", "user_2", "", "Other")))

	chars, err := s.repo.GetByOwner(s.ctx, "user_1")
	s.Require().NoError(err)
	s.Require().Len(chars, 2)
	s.Equal("char_a", chars[0].ID)
	s.Equal("char_b", chars[1].ID)

	none, err := s.repo.GetByOwner(s.ctx, "user_3")
	s.Require().NoError(err)
	s.Empty(none)

	_, err = s.repo.GetByOwner(s.ctx, "")
	s.True(apperr.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestGetByTrainer() {
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestTrainer("trainer", "user_1", "Ash")))
	s.Require().NoError(s.repo.Create(s.ctx, s.withMoves(testutils.CreateTestPokemon("p1", "user_1", "trainer", "Sparky"))))
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestPokemon("p2", "user_1", "trainer", "Bulby")))
	s.Require().NoError(s.repo.Create(s.ctx, testutils.CreateTestPokemon("p3", "user_1", "", "Wild")))

	team, err := s.repo.GetByTrainer(s.ctx, "trainer")
	s.Require().NoError(err)
	s.Require().Len(team, 2)
	s.Equal("p1", team[0].ID)
	s.Equal("p2", team[1].ID)
	s.Len(team[0].Attachments, 4)
}

func (s *RepositoryTestSuite) TestUpdate_BumpsVersion() {
	char := testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky")
	s.Require().NoError(s.repo.Create(s.ctx, char))
	created := char.CreatedAt

	char.Level = 11
	s.Require().NoError(s.repo.Update(s.ctx, char))
	s.Equal(int64(2), char.Version)
	s.True(created.Equal(char.CreatedAt))
	s.False(char.UpdatedAt.Before(created))

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal(11, got.Level)
	s.Equal(int64(2), got.Version)
}

func (s *RepositoryTestSuite) TestUpdate_StaleVersion() {
	char := testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky")
	s.Require().NoError(s.repo.Create(s.ctx, char))

	stale, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)

	char.Level = 12
	s.Require().NoError(s.repo.Update(s.ctx, char))

	stale.Level = 50
	err = s.repo.Update(s.ctx, stale)
	s.Error(err)
	s.True(apperr.IsConflict(err))

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal(12, got.Level)
}

func (s *RepositoryTestSuite) TestUpdate_NotFound() {
	err := s.repo.Update(s.ctx, testutils.CreateTestPokemon("missing", "user_456", "", "Ghost"))
	s.True(apperr.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestUpdate_RewritesAttachments() {
	char := s.withMoves(testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky"))
	s.Require().NoError(s.repo.Create(s.ctx, char))

	// last move to the front
	moves := char.Siblings(entities.AttachmentKindMove)
	moves[2].SortOrder = 0
	moves[0].SortOrder = 1
	moves[1].SortOrder = 2
	char.RemoveAttachment(4)
	s.Require().NoError(s.repo.Update(s.ctx, char))

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	names := []string{}
	for _, m := range got.Siblings(entities.AttachmentKindMove) {
		names = append(names, m.Name)
	}
	s.Equal([]string{"Iron Tail", "Thunder Shock", "Quick Attack"}, names)
	s.Empty(got.Siblings(entities.AttachmentKindSkill))
}

func (s *RepositoryTestSuite) TestUpdate_ConcurrentWritersOneWins() {
	char := testutils.CreateTestPokemon("char_123", "user_456", "", "Sparky")
	s.Require().NoError(s.repo.Create(s.ctx, char))

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		writer := char.Clone()
		writer.Level = 20 + i
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.Update(s.ctx, writer)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(apperr.IsConflict(err), "unexpected error: %v", err)
	}
	s.Equal(1, succeeded)

	got, err := s.repo.Get(s.ctx, "char_123")
	s.Require().NoError(err)
	s.Equal(int64(2), got.Version)
}

func (s *RepositoryTestSuite) TestDelete() {
	char := s.withMoves(testutils.CreateTestPokemon("char_123", "user_456", "trainer", "Sparky"))
	s.Require().NoError(s.repo.Create(s.ctx, char))

	s.Require().NoError(s.repo.Delete(s.ctx, "char_123"))

	_, err := s.repo.Get(s.ctx, "char_123")
	s.True(apperr.IsNotFound(err))

	team, err := s.repo.GetByTrainer(s.ctx, "trainer")
	s.Require().NoError(err)
	s.Empty(team)

	s.True(apperr.IsNotFound(s.repo.Delete(s.ctx, "char_123")))
}

func (s *RepositoryTestSuite) TestNextAttachmentID_Unique() {
	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.repo.NextAttachmentID(s.ctx)
		s.Require().NoError(err)
		s.Greater(id, last)
		s.False(seen[id])
		seen[id] = true
		last = id
	}
}
