package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahoem/transparov/position"
)

// foolsMateFEN is the standard fool's-mate final position: white to move,
// white is checkmated.
const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func TestAlphabetaCheckmateDetection(t *testing.T) {
	pos, err := position.FromFEN(foolsMateFEN)
	require.NoError(t, err)
	require.Equal(t, position.Checkmate, pos.Status())

	s := newSearcher(NewTT(1), &stopFlag{}, nil)
	got := s.alphabeta(pos, -ScoreInf, ScoreInf, 4, 0)
	assert.Equal(t, -ScoreMate, got)
}

func TestAlphabetaDepthZeroMatchesQuiesce(t *testing.T) {
	pos := position.StartPos()
	s := newSearcher(NewTT(1), &stopFlag{}, nil)

	alphabetaScore := s.alphabeta(pos, -ScoreInf, ScoreInf, 0, 0)
	quiesceScore := s.quiesce(pos, -ScoreInf, ScoreInf)
	assert.Equal(t, quiesceScore, alphabetaScore)
}

func TestAlphabetaFailSoftBound(t *testing.T) {
	pos := position.StartPos()
	s := newSearcher(NewTT(1), &stopFlag{}, nil)

	alpha, beta := Eval(-50), Eval(50)
	got := s.alphabeta(pos, alpha, beta, 2, 0)
	inWindow := got > alpha && got < beta
	failHigh := got >= beta
	failLow := got <= alpha
	assert.True(t, inWindow || failHigh || failLow)
}
