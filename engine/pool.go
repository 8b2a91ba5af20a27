package engine

import (
	"runtime"
	"sync"

	"github.com/ahoem/transparov/position"
)

// ThreadPool is a fixed-size, process-wide collection of Lazy-SMP workers
// sharing one TT and one stop flag. Worker 0 is always the main worker.
type ThreadPool struct {
	tt      *TT
	stop    stopFlag
	workers []*Worker

	mu       sync.Mutex
	done     chan struct{}
	onResult func(best Move16, score Eval, depth uint8)
}

// NewThreadPool builds a pool sized to the logical CPU count (minimum 1).
// onInfo is called on every completed iteration of the main worker;
// onResult is called once, after election, with the final chosen move.
// log receives illegal-TT-move and other per-worker search diagnostics.
func NewThreadPool(tt *TT, onInfo infoFunc, onResult func(Move16, Eval, uint8), log *Logger) *ThreadPool {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	p := &ThreadPool{tt: tt, onResult: onResult}
	p.workers = make([]*Worker, n)
	for i := 0; i < n; i++ {
		isMain := i == 0
		var emit infoFunc
		if isMain {
			emit = onInfo
		}
		w := NewWorker(tt, &p.stop, isMain, emit, log)
		p.workers[i] = w
	}
	p.workers[0].onMainDone = p.mainDone
	for _, w := range p.workers {
		go w.Run()
	}
	return p
}

// StartThinking bumps the TT generation and wakes every worker to search
// from board, each with its own copy of the root move list. maxDepth==0
// means no depth cap (the search runs until stopped).
func (p *ThreadPool) StartThinking(board position.Position, maxDepth uint8) {
	p.mu.Lock()
	p.done = make(chan struct{})
	p.mu.Unlock()

	p.tt.NewSearch()
	p.stop.clear()
	for _, w := range p.workers {
		w.StartSearch(NewRootData(board), maxDepth)
	}
}

// Stop flips the shared stop flag. Idempotent.
func (p *ThreadPool) Stop() {
	p.stop.set()
}

// Done returns a channel closed once election has run for the current
// search (i.e. bestmove is ready).
func (p *ThreadPool) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// mainDone runs on the main worker's own goroutine once it exhausts its
// iterations: it stops the pool (idempotent — helpers may already have
// stopped themselves), waits for every helper to go idle, then elects and
// reports the final move.
func (p *ThreadPool) mainDone() {
	p.Stop()
	for _, w := range p.workers[1:] {
		w.Wait()
	}
	best, score, depth := p.electBestMove()
	if p.onResult != nil {
		p.onResult(best, score, depth)
	}
	p.mu.Lock()
	if p.done != nil {
		close(p.done)
	}
	p.mu.Unlock()
}

// electBestMove implements the Lazy-SMP weighted vote across workers.
func (p *ThreadPool) electBestMove() (best Move16, bestScore Eval, bestDepth uint8) {
	type vote struct {
		move  Move16
		score Eval
		depth uint8
	}
	votes := make([]vote, 0, len(p.workers))
	minScore := ScoreInf
	for _, w := range p.workers {
		rd := w.RootData()
		if rd == nil {
			continue
		}
		em, depth, ok := rd.BestMove()
		if !ok {
			continue
		}
		votes = append(votes, vote{move: em.Move16, score: em.Eval, depth: depth})
		if em.Eval < minScore {
			minScore = em.Eval
		}
	}
	if len(votes) == 0 {
		return noMove16, 0, 0
	}

	weights := make(map[Move16]int64)
	scores := make(map[Move16]Eval)
	depths := make(map[Move16]uint8)
	for _, v := range votes {
		w := int64(v.score-minScore+14) * int64(v.depth)
		weights[v.move] += w
		if cur, ok := scores[v.move]; !ok || v.score > cur {
			scores[v.move] = v.score
			depths[v.move] = v.depth
		}
	}

	var winner Move16
	var winnerWeight int64 = -1 << 62
	for mv, w := range weights {
		if w > winnerWeight {
			winnerWeight = w
			winner = mv
		}
	}
	return winner, scores[winner], depths[winner]
}

// Quit stops and joins all workers, detaching the join so the caller's
// goroutine is never blocked on a slow worker shutdown.
func (p *ThreadPool) Quit() {
	go func() {
		p.stop.set()
		for _, w := range p.workers {
			w.Wait()
			w.RequestExit()
		}
	}()
}
