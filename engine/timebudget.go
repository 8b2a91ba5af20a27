package engine

import "time"

// TimeControl carries the subset of `go` parameters the controller needs
// to compute a time budget.
type TimeControl struct {
	MoveTimeMs int // movetime, takes priority if set (>0)

	WTimeMs, BTimeMs int
	WIncMs, BIncMs   int
	MovesToGo        int // 0 means unset, default 40
	Infinite         bool
	MoveOverheadMs   int
}

// Budget returns the duration the pool should be allowed to think, and ok
// false if the search should run untimed (until `stop`).
func (tc TimeControl) Budget(whiteToMove bool) (time.Duration, bool) {
	if tc.Infinite {
		return 0, false
	}
	if tc.MoveTimeMs > 0 {
		return subtractOverhead(tc.MoveTimeMs, tc.MoveOverheadMs), true
	}

	if tc.WTimeMs == 0 && tc.BTimeMs == 0 {
		return 0, false
	}
	myTime := tc.BTimeMs
	if whiteToMove {
		myTime = tc.WTimeMs
	}

	movesToGo := tc.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 40
	}
	budget := myTime / movesToGo
	return subtractOverhead(budget, tc.MoveOverheadMs), true
}

func subtractOverhead(ms, overhead int) time.Duration {
	ms -= overhead
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}
