package engine

import (
	"github.com/ahoem/transparov/position"
)

// orderMoves returns legal moves from pos as EvalMoves ordered best-first:
// the TT move (if legal) goes first, then the rest sorted descending by
// -Evaluate(position after the move).
func orderMoves(pos position.Position, ttMove Move16) []EvalMove {
	legal := pos.LegalMoves()
	ordered := make([]EvalMove, 0, len(legal))

	var prelude *EvalMove
	for _, mv := range legal {
		m16 := EncodeMove16(mv)
		if !ttMove.IsZero() && m16 == ttMove {
			em := EvalMove{Move16: m16, Eval: ScoreInf}
			prelude = &em
			continue
		}
		child, ok := pos.MakeMove(mv)
		if !ok {
			continue
		}
		ordered = append(ordered, EvalMove{Move16: m16, Eval: -Evaluate(child)})
	}
	sortEvalMovesDesc(ordered)

	if prelude != nil {
		ordered = append([]EvalMove{*prelude}, ordered...)
	}
	return ordered
}
