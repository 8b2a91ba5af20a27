package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brighamskarda/chess/v2"

	"github.com/ahoem/transparov/position"
	"github.com/ahoem/transparov/uci"
)

const whiteColor = chess.White

// applyUCIMove parses a UCI coordinate move (e.g. "e2e4", "e7e8q") and
// applies it to pos. Malformed or illegal move text leaves pos unchanged,
// matching the engine's policy of dropping unrecognised commands silently.
func applyUCIMove(pos position.Position, text string) position.Position {
	var mv chess.Move
	if err := mv.UnmarshalText([]byte(text)); err != nil {
		return pos
	}
	child, ok := pos.MakeMove(mv)
	if !ok {
		return pos
	}
	return child
}

const pollInterval = 2 * time.Millisecond

// pollResult is how the pool's main-worker goroutine reports progress back
// to the single-threaded controller loop, instead of writing to stdout
// directly (Open Question (a): the controller is the sole bestmove
// emitter, removing the duplicate-emission race).
type pollResult struct {
	kind  pollKind
	move  Move16
	score Eval
	depth uint8
}

type pollKind uint8

const (
	pollInfo pollKind = iota
	pollBestMove
)

// Engine is the UCI controller state machine.
type Engine struct {
	tt   *TT
	pool *ThreadPool
	out  *uci.Writer
	log  *Logger

	board     position.Position
	haveBoard bool

	hashMB         int
	moveOverheadMs int

	updates chan pollResult

	searching      bool
	deadline       time.Time
	hasDeadline    bool
	cachedMove     Move16
	haveCachedMove bool
}

// NewEngine wires a fresh controller around a TT, UCI writer, and logger.
func NewEngine(hashMB int, out *uci.Writer, log *Logger) *Engine {
	e := &Engine{
		tt:             NewTT(hashMB),
		out:            out,
		log:            log,
		hashMB:         hashMB,
		moveOverheadMs: 30,
		updates:        make(chan pollResult, 16),
	}
	e.pool = NewThreadPool(e.tt, e.onInfo, e.onResult, log)
	return e
}

func (e *Engine) onInfo(pv Move16, depth uint8, score Eval) {
	select {
	case e.updates <- pollResult{kind: pollInfo, move: pv, score: score, depth: depth}:
	default:
	}
}

func (e *Engine) onResult(best Move16, score Eval, depth uint8) {
	e.updates <- pollResult{kind: pollBestMove, move: best, score: score, depth: depth}
}

// Run consumes in until it's closed or a `quit` is processed, emitting
// outbound messages on e.out. Polling cadence for overdue searches is 2ms.
func (e *Engine) Run(in <-chan uci.InMessage) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return
			}
			if e.handle(msg) {
				return
			}
		case u := <-e.updates:
			e.handleUpdate(u)
		case <-ticker.C:
			e.pollOverdue()
		}
	}
}

// send logs an outbound message at Info before writing it, satisfying the
// "every UCI message is logged" ambient requirement.
func (e *Engine) send(msg uci.OutMessage) {
	e.log.Info("uci out", logrus.Fields{"kind": msg.Kind})
	e.out.Send(msg)
}

func (e *Engine) handle(msg uci.InMessage) (quit bool) {
	e.log.Info("uci in", logrus.Fields{"kind": msg.Kind})
	switch msg.Kind {
	case uci.Uci:
		e.send(uci.OutMessage{Kind: uci.OutID, IDKey: "name", IDValue: "Transparov"})
		e.send(uci.OutMessage{Kind: uci.OutID, IDKey: "author", IDValue: "Audun Hoem"})
		e.send(uci.OutMessage{Kind: uci.OutUciOk})
	case uci.IsReady:
		e.send(uci.OutMessage{Kind: uci.OutReadyOk})
	case uci.UciNewGame:
		if !e.searching {
			e.haveBoard = false
		}
	case uci.SetOption:
		e.handleSetOption(msg)
	case uci.Position:
		if e.searching {
			break
		}
		e.setPosition(msg)
	case uci.Go:
		e.startSearch(msg.Go)
	case uci.Stop:
		e.pool.Stop()
		e.emitIfCached()
	case uci.Quit:
		e.pool.Quit()
		return true
	}
	return false
}

func (e *Engine) handleSetOption(msg uci.InMessage) {
	if e.searching {
		return
	}
	switch msg.OptionName {
	case "Hash":
		if v, ok := parseIntOption(msg.OptionValue); ok {
			e.hashMB = v
			e.tt.Resize(v)
		}
	case "Move Overhead":
		if v, ok := parseIntOption(msg.OptionValue); ok {
			e.moveOverheadMs = v
		}
	}
}

func (e *Engine) setPosition(msg uci.InMessage) {
	var pos position.Position
	if msg.StartPos {
		pos = position.StartPos()
	} else {
		p, err := position.FromFEN(msg.FEN)
		if err != nil {
			e.log.Info("malformed position fen, ignoring", nil)
			return
		}
		pos = p
	}
	for _, mvText := range msg.Moves {
		pos = applyUCIMove(pos, mvText)
	}
	e.board = pos
	e.haveBoard = true
}

func (e *Engine) startSearch(params uci.GoParams) {
	if !e.haveBoard {
		e.board = position.StartPos()
		e.haveBoard = true
	}
	e.haveCachedMove = false
	e.searching = true

	tc := TimeControl{
		MoveTimeMs:     params.MoveTimeMs,
		WTimeMs:        params.WTimeMs,
		BTimeMs:        params.BTimeMs,
		WIncMs:         params.WIncMs,
		BIncMs:         params.BIncMs,
		MovesToGo:      params.MovesToGo,
		Infinite:       params.Infinite,
		MoveOverheadMs: e.moveOverheadMs,
	}
	whiteToMove := e.board.SideToMove() == whiteColor
	if d, ok := tc.Budget(whiteToMove); ok {
		e.deadline = time.Now().Add(d)
		e.hasDeadline = true
	} else {
		e.hasDeadline = false
	}

	e.pool.StartThinking(e.board, maxDepthOption(params.Depth))
}

// maxDepthOption clamps a UCI `go depth d` value into the worker's uint8 ply
// cap; non-positive or out-of-range values mean "no cap" (search until
// stopped).
func maxDepthOption(depth int) uint8 {
	if depth <= 0 || depth > 255 {
		return 0
	}
	return uint8(depth)
}

func (e *Engine) handleUpdate(u pollResult) {
	switch u.kind {
	case pollInfo:
		pv := e.buildPV(u.move)
		e.send(uci.OutMessage{Kind: uci.OutInfo, Depth: int(u.depth), Cp: int(u.score), PV: pv})
	case pollBestMove:
		e.cachedMove = u.move
		e.haveCachedMove = true
		e.searching = false
		e.emitIfCached()
	}
}

func (e *Engine) pollOverdue() {
	if !e.searching || !e.hasDeadline {
		return
	}
	if time.Now().After(e.deadline) {
		e.pool.Stop()
	}
}

func (e *Engine) emitIfCached() {
	if !e.haveCachedMove {
		return
	}
	mv, ok := e.cachedMove.Decode()
	text := "0000"
	if ok {
		if b, err := mv.MarshalText(); err == nil {
			text = string(b)
		}
	}
	e.send(uci.OutMessage{Kind: uci.OutBestMove, BestMove: text})
	e.haveCachedMove = false
}

func parseIntOption(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

const maxPVLen = 16

// buildPV reconstructs the principal variation by walking the TT forward
// from the root through each stored best move, per the supplemented
// feature noted in DESIGN.md (grounded on original_source's BestMove
// handling).
func (e *Engine) buildPV(first Move16) string {
	mv, ok := first.Decode()
	if !ok {
		return ""
	}
	text, err := mv.MarshalText()
	if err != nil {
		return ""
	}
	pv := string(text)

	pos, ok := e.board.MakeMove(mv)
	if !ok {
		return pv
	}
	for i := 1; i < maxPVLen; i++ {
		entry, found, _ := e.tt.Probe(pos.Hash())
		if !found || entry.Move.IsZero() {
			break
		}
		next, ok := entry.Move.Decode()
		if !ok || !pos.Legal(next) {
			break
		}
		nextText, err := next.MarshalText()
		if err != nil {
			break
		}
		pv += " " + string(nextText)
		child, ok := pos.MakeMove(next)
		if !ok {
			break
		}
		pos = child
	}
	return pv
}
