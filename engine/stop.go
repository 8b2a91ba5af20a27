package engine

import "sync/atomic"

// stopFlag is the global cancellation signal shared by every worker and the
// pool. Release-store / acquire-load semantics are what Go's atomic.Bool
// already gives: any write preceding a Set(true) happens-before any reader
// observing it true.
type stopFlag struct {
	b atomic.Bool
}

func (f *stopFlag) isSet() bool {
	return f.b.Load()
}

func (f *stopFlag) set() {
	f.b.Store(true)
}

func (f *stopFlag) clear() {
	f.b.Store(false)
}
