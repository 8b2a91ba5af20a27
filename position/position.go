// Package position adapts github.com/brighamskarda/chess/v2 to the narrow
// contract the search core needs: a hashable, copy-cheap position with
// legal move enumeration, status reporting, and a pure make-move.
//
// Assumed library surface (the pack's retrieved slice evidences chess.Move's
// text round-trip but not chess.Position's method names beyond that; this
// file is the single seam where that assumption lives — see DESIGN.md):
//
//	chess.FromFEN(fen string) (*chess.Position, error)
//	(*chess.Position).String() string          // FEN
//	(*chess.Position).SideToMove() chess.Color  // White | Black
//	(*chess.Position).LegalMoves() []chess.Move
//	(*chess.Position).IsCheckmate() bool
//	(*chess.Position).IsStalemate() bool
//	(*chess.Position).MakeMove(chess.Move) error
package position

import (
	"hash/fnv"

	"github.com/brighamskarda/chess/v2"
)

// Status classifies the terminal state of a position, if any.
type Status uint8

const (
	InProgress Status = iota
	Checkmate
	Stalemate
)

// Position is an opaque, copy-cheap value identifying a chess position.
type Position struct {
	inner *chess.Position
}

// StartPos returns the standard initial position.
func StartPos() Position {
	p, err := chess.FromFEN(startFEN)
	if err != nil {
		panic("position: startpos FEN failed to parse: " + err.Error())
	}
	return Position{inner: p}
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a Position.
func FromFEN(fen string) (Position, error) {
	p, err := chess.FromFEN(fen)
	if err != nil {
		return Position{}, err
	}
	return Position{inner: p}, nil
}

// Hash returns a 64-bit hash of the position, stable for identical board
// states. Computed over the canonical FEN text with FNV-1a rather than an
// incremental Zobrist hash — see the package doc comment and DESIGN.md.
func (p Position) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.inner.String()))
	return h.Sum64()
}

// SideToMove returns the color to move.
func (p Position) SideToMove() chess.Color {
	return p.inner.SideToMove()
}

// Status reports checkmate/stalemate/in-progress.
func (p Position) Status() Status {
	switch {
	case p.inner.IsCheckmate():
		return Checkmate
	case p.inner.IsStalemate():
		return Stalemate
	default:
		return InProgress
	}
}

// LegalMoves enumerates all legal moves from this position.
func (p Position) LegalMoves() []chess.Move {
	return p.inner.LegalMoves()
}

// Legal reports whether mv is a legal move in this position. Used to
// re-validate TT-supplied moves, which may be stale or hash-collided.
func (p Position) Legal(mv chess.Move) bool {
	for _, lm := range p.inner.LegalMoves() {
		if lm == mv {
			return true
		}
	}
	return false
}

// MakeMove returns a new Position with mv applied. Pure: the receiver is
// never mutated. ok is false if mv is illegal in this position.
func (p Position) MakeMove(mv chess.Move) (child Position, ok bool) {
	if !p.Legal(mv) {
		return Position{}, false
	}
	cp := *p.inner
	if err := cp.MakeMove(mv); err != nil {
		return Position{}, false
	}
	return Position{inner: &cp}, true
}

// FEN returns the canonical FEN text of the position.
func (p Position) FEN() string {
	return p.inner.String()
}
