package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBudgetMoveTimeTakesPriority(t *testing.T) {
	tc := TimeControl{MoveTimeMs: 1000, WTimeMs: 60000, BTimeMs: 60000, MoveOverheadMs: 30}
	d, ok := tc.Budget(true)
	assert.True(t, ok)
	assert.Equal(t, 970*time.Millisecond, d)
}

func TestBudgetDefaultMovesToGo(t *testing.T) {
	tc := TimeControl{WTimeMs: 40000, BTimeMs: 40000, MoveOverheadMs: 0}
	d, ok := tc.Budget(true)
	assert.True(t, ok)
	assert.Equal(t, time.Second, d) // 40000/40 == 1000ms
}

func TestBudgetUntimedWithoutClocks(t *testing.T) {
	tc := TimeControl{}
	_, ok := tc.Budget(true)
	assert.False(t, ok)
}

func TestBudgetInfiniteIsUntimed(t *testing.T) {
	tc := TimeControl{Infinite: true, WTimeMs: 10000, BTimeMs: 10000}
	_, ok := tc.Budget(true)
	assert.False(t, ok)
}
