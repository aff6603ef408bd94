package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperr "github.com/KirkDiggler/pokesheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCodeAndMeta(t *testing.T) {
	base := apperr.NotFoundf("character %q not found", "abc").WithMeta("character_id", "abc")

	wrapped := apperr.Wrap(base, "load sheet")
	require.NotNil(t, wrapped)

	assert.Equal(t, apperr.CodeNotFound, wrapped.Code)
	assert.Equal(t, "abc", wrapped.Meta["character_id"])
	assert.True(t, apperr.IsNotFound(wrapped))
	assert.Equal(t, `load sheet: character "abc" not found`, wrapped.Error())

	// the copy must not alias the original map
	wrapped.WithMeta("extra", 1)
	_, leaked := base.Meta["extra"]
	assert.False(t, leaked)
}

func TestWrapForeignError(t *testing.T) {
	wrapped := apperr.Wrap(stderrors.New("boom"), "redis")
	assert.Equal(t, apperr.CodeUnknown, wrapped.Code)
	assert.Nil(t, apperr.Wrap(nil, "nothing"))
}

func TestIsThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", apperr.Formulaf("unexpected token %q", ";"))
	assert.True(t, apperr.IsFormula(err))
	assert.False(t, apperr.IsContractViolation(err))
	assert.Equal(t, apperr.CodeFormula, apperr.GetCode(err))
}

func TestWrapWithCode(t *testing.T) {
	err := apperr.WrapWithCode(stderrors.New("stale"), apperr.CodeConflict, "update character")
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, apperr.CodeUnknown, apperr.GetCode(stderrors.New("plain")))
	assert.Nil(t, apperr.GetMeta(stderrors.New("plain")))
}
