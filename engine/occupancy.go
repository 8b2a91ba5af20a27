package engine

import "strings"

// occupiedSquares parses the piece-placement field of a FEN string into
// the set of occupied square names ("e4", "a1", ...), used to mask
// quiescence search down to captures only.
func occupiedSquares(fen string) map[string]bool {
	placement := fen
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		placement = fen[:i]
	}
	occ := make(map[string]bool, 32)
	rank := 7
	file := 0
	for _, c := range placement {
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			sq := string([]byte{byte('a' + file), byte('1' + rank)})
			occ[sq] = true
			file++
		}
	}
	return occ
}
