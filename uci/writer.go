package uci

import (
	"bufio"
	"fmt"
	"io"
)

// Writer renders outbound engine messages to a UCI GUI's stdin.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Send(msg OutMessage) {
	switch msg.Kind {
	case OutID:
		fmt.Fprintf(w.w, "id %s %s\n", msg.IDKey, msg.IDValue)
	case OutUciOk:
		fmt.Fprint(w.w, "uciok\n")
	case OutReadyOk:
		fmt.Fprint(w.w, "readyok\n")
	case OutInfo:
		fmt.Fprintf(w.w, "info depth %d score cp %d pv %s\n", msg.Depth, msg.Cp, msg.PV)
	case OutBestMove:
		fmt.Fprintf(w.w, "bestmove %s\n", msg.BestMove)
	}
	w.w.Flush()
}
