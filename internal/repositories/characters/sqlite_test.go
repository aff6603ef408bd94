package characters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pokesheet/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/pokesheet/internal/repositories/characters/mock"
	"github.com/KirkDiggler/pokesheet/internal/testutils"
)

func TestSQLiteRepository_StampsWithTimeProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(90 * time.Minute)

	clock := mockcharacters.NewMockTimeProvider(ctrl)
	gomock.InOrder(
		clock.EXPECT().Now().Return(created),
		clock.EXPECT().Now().Return(updated),
	)

	repo := characters.NewSQLiteRepository(&characters.SQLiteRepoConfig{
		DB:           testutils.CreateTestSQLite(t),
		TimeProvider: clock,
	})

	char := testutils.CreateTestPokemon("p1", "user_1", "", "Sparky")
	require.NoError(t, repo.Create(ctx, char))
	assert.True(t, created.Equal(char.CreatedAt))
	assert.True(t, created.Equal(char.UpdatedAt))

	char.Level = 12
	require.NoError(t, repo.Update(ctx, char))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt), "created at %v", got.CreatedAt)
	assert.True(t, updated.Equal(got.UpdatedAt), "updated at %v", got.UpdatedAt)
	assert.Equal(t, int64(2), got.Version)
}
