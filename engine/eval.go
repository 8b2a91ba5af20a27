package engine

import (
	"strings"

	"github.com/brighamskarda/chess/v2"

	"github.com/ahoem/transparov/position"
)

// Piece values in centipawns, index order pawn, knight, bishop, rook,
// queen, king.
var PieceValues = [6]int{100, 300, 300, 500, 900, 0}

// Evaluate returns a side-to-move-relative material score: positive means
// the side to move is ahead. Pure, safe to call concurrently from any
// worker.
func Evaluate(pos position.Position) Eval {
	white, black := materialCount(pos.FEN())
	score := white - black
	if pos.SideToMove() == chess.Black {
		score = -score
	}
	return Eval(score)
}

// materialCount sums centipawn values per side directly from the FEN
// piece-placement field, avoiding any dependency on the external library's
// internal board representation.
func materialCount(fen string) (white, black int) {
	placement := fen
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		placement = fen[:i]
	}
	for _, c := range placement {
		idx := pieceIndex(c)
		if idx < 0 {
			continue
		}
		v := PieceValues[idx]
		if c >= 'A' && c <= 'Z' {
			white += v
		} else {
			black += v
		}
	}
	return white, black
}

func pieceIndex(c rune) int {
	switch c {
	case 'P', 'p':
		return 0
	case 'N', 'n':
		return 1
	case 'B', 'b':
		return 2
	case 'R', 'r':
		return 3
	case 'Q', 'q':
		return 4
	case 'K', 'k':
		return 5
	default:
		return -1
	}
}
