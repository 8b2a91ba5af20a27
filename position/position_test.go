package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPosStatus(t *testing.T) {
	pos := StartPos()
	assert.Equal(t, InProgress, pos.Status())
	assert.NotEmpty(t, pos.LegalMoves())
}

func TestHashStableAcrossCopies(t *testing.T) {
	pos := StartPos()
	a := pos.Hash()
	b := pos.Hash()
	assert.Equal(t, a, b)
}

func TestMakeMoveIsPure(t *testing.T) {
	pos := StartPos()
	before := pos.FEN()

	legal := pos.LegalMoves()
	require.NotEmpty(t, legal)

	_, ok := pos.MakeMove(legal[0])
	require.True(t, ok)

	assert.Equal(t, before, pos.FEN(), "MakeMove must not mutate the receiver")
}

func TestMakeMoveChangesHash(t *testing.T) {
	pos := StartPos()
	legal := pos.LegalMoves()
	require.NotEmpty(t, legal)

	child, ok := pos.MakeMove(legal[0])
	require.True(t, ok)
	assert.NotEqual(t, pos.Hash(), child.Hash())
}

func TestFromFENRejectsGarbage(t *testing.T) {
	_, err := FromFEN("not a fen at all")
	assert.Error(t, err)
}
