package uci

import (
	"strconv"
	"strings"
)

// Parse tokenizes line on whitespace and dispatches on the first token,
// following the split-then-switch style the pack's UCI adapters use.
// Unrecognised commands return Unknown — the controller drops them
// silently.
func Parse(line string) InMessage {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return InMessage{Kind: Unknown}
	}

	switch strings.ToLower(fields[0]) {
	case "uci":
		return InMessage{Kind: Uci}
	case "isready":
		return InMessage{Kind: IsReady}
	case "ucinewgame":
		return InMessage{Kind: UciNewGame}
	case "debug":
		return InMessage{Kind: Debug}
	case "register":
		return InMessage{Kind: Register}
	case "stop":
		return InMessage{Kind: Stop}
	case "ponderhit":
		return InMessage{Kind: PonderHit}
	case "quit":
		return InMessage{Kind: Quit}
	case "setoption":
		return parseSetOption(fields[1:])
	case "position":
		return parsePosition(fields[1:])
	case "go":
		return parseGo(fields[1:])
	default:
		return InMessage{Kind: Unknown}
	}
}

func parseSetOption(tokens []string) InMessage {
	msg := InMessage{Kind: SetOption}
	i := 0
	for i < len(tokens) {
		switch strings.ToLower(tokens[i]) {
		case "name":
			var nameParts []string
			i++
			for i < len(tokens) && strings.ToLower(tokens[i]) != "value" {
				nameParts = append(nameParts, tokens[i])
				i++
			}
			msg.OptionName = strings.Join(nameParts, " ")
		case "value":
			i++
			var valueParts []string
			for i < len(tokens) {
				valueParts = append(valueParts, tokens[i])
				i++
			}
			msg.OptionValue = strings.Join(valueParts, " ")
		default:
			i++
		}
	}
	return msg
}

func parsePosition(tokens []string) InMessage {
	msg := InMessage{Kind: Position}
	if len(tokens) == 0 {
		return msg
	}

	i := 0
	switch tokens[0] {
	case "startpos":
		msg.StartPos = true
		i = 1
	case "fen":
		i = 1
		var fenParts []string
		for i < len(tokens) && tokens[i] != "moves" {
			fenParts = append(fenParts, tokens[i])
			i++
		}
		msg.FEN = strings.Join(fenParts, " ")
	default:
		return msg
	}

	if i < len(tokens) && tokens[i] == "moves" {
		msg.Moves = append(msg.Moves, tokens[i+1:]...)
	}
	return msg
}

func parseGo(tokens []string) InMessage {
	msg := InMessage{Kind: Go}
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "movetime":
			i++
			msg.Go.MoveTimeMs = atoiOr(tokens, i, 0)
		case "wtime":
			i++
			msg.Go.WTimeMs = atoiOr(tokens, i, 0)
		case "btime":
			i++
			msg.Go.BTimeMs = atoiOr(tokens, i, 0)
		case "winc":
			i++
			msg.Go.WIncMs = atoiOr(tokens, i, 0)
		case "binc":
			i++
			msg.Go.BIncMs = atoiOr(tokens, i, 0)
		case "movestogo":
			i++
			msg.Go.MovesToGo = atoiOr(tokens, i, 0)
		case "depth":
			i++
			msg.Go.Depth = atoiOr(tokens, i, 0)
		case "infinite":
			msg.Go.Infinite = true
		case "searchmoves":
			i++
			for i < len(tokens) {
				msg.Go.SearchMoves = append(msg.Go.SearchMoves, tokens[i])
				i++
			}
		}
	}
	return msg
}

func atoiOr(tokens []string, i int, def int) int {
	if i < 0 || i >= len(tokens) {
		return def
	}
	v, err := strconv.Atoi(tokens[i])
	if err != nil {
		return def
	}
	return v
}
