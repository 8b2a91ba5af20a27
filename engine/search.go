package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/brighamskarda/chess/v2"

	"github.com/ahoem/transparov/position"
)

// Searcher bundles the shared resources a single worker's recursive search
// needs: the shared TT, the global stop flag, and the engine log.
type Searcher struct {
	tt   *TT
	stop *stopFlag
	log  *Logger
}

func newSearcher(tt *TT, stop *stopFlag, log *Logger) *Searcher {
	return &Searcher{tt: tt, stop: stop, log: log}
}

// validTTMove re-validates a move read out of the TT against pos: a stale
// entry or a hash-collided key16 can surface a move that isn't legal here.
// Illegal TT moves are logged and dropped rather than fed into search.
func (s *Searcher) validTTMove(pos position.Position, mv Move16) Move16 {
	if mv.IsZero() {
		return mv
	}
	decoded, ok := mv.Decode()
	if !ok || !pos.Legal(decoded) {
		s.log.Info("illegal tt move, skipping", logrus.Fields{"move": uint16(mv)})
		return noMove16
	}
	return mv
}

// alphabeta is the recursive negamax core: fail-soft, TT-probing,
// mate-distance pruning and adjusted mate scores.
func (s *Searcher) alphabeta(pos position.Position, alpha, beta Eval, depth uint8, rootDistance uint8) Eval {
	switch pos.Status() {
	case position.Checkmate:
		return -ScoreMate
	case position.Stalemate:
		return 0
	}
	if depth == 0 {
		return s.quiesce(pos, alpha, beta)
	}

	matingScore := ScoreMate - Eval(rootDistance)

	hash := pos.Hash()
	entry, found, handle := s.tt.Probe(hash)
	var ttMove Move16
	if found {
		if entry.Depth >= depth {
			return entry.Eval
		}
		ttMove = s.validTTMove(pos, entry.Move)
	}

	moves := orderMoves(pos, ttMove)

	max := -ScoreInf
	var bestMove Move16
	haveBest := false

	for _, em := range moves {
		mv, ok := em.Move16.Decode()
		if !ok {
			continue
		}
		child, ok := pos.MakeMove(mv)
		if !ok {
			// Defensive: the generator should only emit legal moves, but a
			// stale TT move must be re-validated and skipped if illegal.
			continue
		}

		score := -s.alphabeta(child, -beta, -alpha, depth-1, rootDistance+1)

		if score >= beta {
			s.tt.Save(handle, uint16(hash), em.Move16, score, depth, EntryCut)
			return score
		}
		if score > max {
			max = score
			bestMove = em.Move16
			haveBest = true
			if score > alpha {
				alpha = score
			}
		}

		if beta > matingScore {
			beta = matingScore
		}
		if alpha >= matingScore {
			return matingScore
		}
		if alpha < -matingScore {
			alpha = -matingScore
		}
		if beta <= -matingScore {
			return -matingScore
		}
	}

	if haveBest {
		et := EntryAll
		if max >= alpha {
			et = EntryPv
		}
		s.tt.Save(handle, uint16(hash), bestMove, max, depth, et)
	}

	if max >= ScoreMate-Eval(depth) {
		return max - 1
	}
	if max < -ScoreMate+Eval(depth) {
		return max + 1
	}
	return max
}

// quiesce extends the search with captures only, fail-hard, never touching
// the TT.
func (s *Searcher) quiesce(pos position.Position, alpha, beta Eval) Eval {
	if pos.Status() == position.Checkmate {
		return -ScoreMate
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	for _, mv := range captureMoves(pos) {
		child, ok := pos.MakeMove(mv)
		if !ok {
			continue
		}
		score := -s.quiesce(child, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// captureMoves filters legal moves to those landing on an occupied square,
// i.e. captures. The external library doesn't expose a masked-generation
// primitive in the evidenced pack slice, so this filters the full legal
// move list by destination occupancy instead.
func captureMoves(pos position.Position) []chess.Move {
	legal := pos.LegalMoves()
	out := make([]chess.Move, 0, len(legal))
	occ := occupiedSquares(pos.FEN())
	for _, mv := range legal {
		text, err := mv.MarshalText()
		if err != nil || len(text) < 4 {
			continue
		}
		if occ[string(text[2:4])] {
			out = append(out, mv)
		}
	}
	return out
}
