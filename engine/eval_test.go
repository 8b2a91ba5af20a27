package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahoem/transparov/position"
)

func TestEvaluateStartPosIsZero(t *testing.T) {
	assert.Equal(t, Eval(0), Evaluate(position.StartPos()))
}

func TestMaterialCountPieceValues(t *testing.T) {
	white, black := materialCount("4k3/8/8/8/8/8/8/Q3K3")
	assert.Equal(t, PieceValues[4], white) // lone white queen
	assert.Equal(t, 0, black)
}
