package engine

import (
	"github.com/brighamskarda/chess/v2"
)

// Move16 is a 16-bit packed move: bits 10-15 source square, bits 4-9
// destination square, bit 2 promotion flag, bits 0-1 promotion piece index
// (knight, bishop, rook, queen = 0..3). The zero value is the "no move"
// sentinel and must never be produced for a real move.
type Move16 uint16

const noMove16 Move16 = 0

var promoChars = [4]byte{'n', 'b', 'r', 'q'}

// EncodeMove16 packs mv into a Move16 via its UCI coordinate text, so
// packing never depends on the external library's internal move layout.
func EncodeMove16(mv chess.Move) Move16 {
	text, err := mv.MarshalText()
	if err != nil || len(text) < 4 {
		return noMove16
	}
	src, ok1 := squareIndex(text[0], text[1])
	dst, ok2 := squareIndex(text[2], text[3])
	if !ok1 || !ok2 {
		return noMove16
	}
	var promoFlag, promoPiece uint16
	if len(text) >= 5 {
		for i, c := range promoChars {
			if text[4] == c {
				promoFlag = 1
				promoPiece = uint16(i)
				break
			}
		}
	}
	return Move16(uint16(src)<<10 | uint16(dst)<<4 | uint16(promoFlag)<<2 | promoPiece)
}

// Decode reconstructs the UCI move text packed into m. ok is false for the
// no-move sentinel.
func (m Move16) Decode() (mv chess.Move, ok bool) {
	if m == noMove16 {
		return chess.Move{}, false
	}
	src := (uint16(m) >> 10) & 0x3F
	dst := (uint16(m) >> 4) & 0x3F
	promoFlag := (uint16(m) >> 2) & 0x1
	promoPiece := uint16(m) & 0x3

	buf := make([]byte, 0, 5)
	buf = append(buf, squareText(src)...)
	buf = append(buf, squareText(dst)...)
	if promoFlag == 1 {
		buf = append(buf, promoChars[promoPiece])
	}

	if err := mv.UnmarshalText(buf); err != nil {
		return chess.Move{}, false
	}
	return mv, true
}

// IsZero reports whether m is the no-move sentinel.
func (m Move16) IsZero() bool {
	return m == noMove16
}

func squareIndex(file, rank byte) (uint8, bool) {
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	f := file - 'a'
	r := rank - '1'
	return uint8(r)*8 + uint8(f), true
}

func squareText(idx uint16) []byte {
	file := byte('a' + idx%8)
	rank := byte('1' + idx/8)
	return []byte{file, rank}
}
