package engine

import (
	"sync"
)

// Worker owns a persistent goroutine that idle-loops on its condition
// variable until told to search or exit.
type Worker struct {
	mu   sync.Mutex
	cond *sync.Cond

	searching bool
	exit      bool

	isMain   bool
	rd       *RootData
	maxDepth uint8
	search   *Searcher

	emit infoFunc

	// onMainDone runs after the main worker (isMain==true) finishes all
	// its iterations: the pool wires this to stop helpers, wait for them,
	// elect a move, and report it for bestmove. Unused on helper workers.
	onMainDone func()
}

// NewWorker creates a worker parked in Idle; call Run in its own goroutine.
func NewWorker(tt *TT, stop *stopFlag, isMain bool, emit infoFunc, log *Logger) *Worker {
	w := &Worker{
		isMain: isMain,
		search: newSearcher(tt, stop, log),
		emit:   emit,
	}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Run is the worker's persistent loop: idle until searching or exit.
func (w *Worker) Run() {
	for {
		w.mu.Lock()
		for !w.searching && !w.exit {
			w.cond.Wait()
		}
		if w.exit {
			w.mu.Unlock()
			return
		}
		rd := w.rd
		maxDepth := w.maxDepth
		w.mu.Unlock()

		w.runSearch(rd, maxDepth)
		if w.isMain && w.onMainDone != nil {
			w.onMainDone()
		}

		w.mu.Lock()
		w.searching = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

// runSearch performs iterative deepening from depth 1 to maxDepth (or until
// stop), running the aspiration-window loop at each depth. maxDepth==0 means
// unbounded (iterate to 255, the deepest a uint8 ply count can express).
func (w *Worker) runSearch(rd *RootData, maxDepth uint8) {
	last := uint8(255)
	if maxDepth != 0 {
		last = maxDepth
	}
	for depth := uint8(1); ; depth++ {
		if w.search.stop.isSet() {
			break
		}
		w.search.runIteration(rd, depth, w.emit, w.isMain)
		if w.search.stop.isSet() {
			break
		}
		if depth == last {
			break
		}
	}
}

// StartSearch assigns rd and wakes the worker into Searching. maxDepth==0
// means search until stopped, with no depth cap.
func (w *Worker) StartSearch(rd *RootData, maxDepth uint8) {
	w.mu.Lock()
	w.rd = rd
	w.maxDepth = maxDepth
	w.searching = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

// Wait blocks until the worker is no longer searching.
func (w *Worker) Wait() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.searching {
		w.cond.Wait()
	}
}

// RequestExit signals the worker to return from Run once idle.
func (w *Worker) RequestExit() {
	w.mu.Lock()
	w.exit = true
	w.mu.Unlock()
	w.cond.Broadcast()
}

// RootData returns the worker's current root data (nil before the first
// search).
func (w *Worker) RootData() *RootData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rd
}
