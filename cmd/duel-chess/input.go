package main

import (
	"fmt"
	"strings"

	"github.com/lgbarn/duel-chess/internal/chess"
)

type commandKind int

const (
	cmdMove commandKind = iota
	cmdMoves
	cmdBoard
	cmdHelp
	cmdQuit
)

// command is one line typed by the local player.
type command struct {
	kind      commandKind
	from, to  string
	promotion chess.Kind
}

// promotionLetters maps the short promotion suffix, as in "e7e8q".
var promotionLetters = map[byte]chess.Kind{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

// parseCommand reads "e2e4", "e7e8 Queen", "e7e8q", "moves e2", "board",
// "help" or "quit". Squares are not checked here; the game rejects bad
// ones with a precise error.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}

	switch strings.ToLower(fields[0]) {
	case "moves":
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: moves <square>")
		}
		return command{kind: cmdMoves, from: strings.ToLower(fields[1])}, nil
	case "board":
		return command{kind: cmdBoard}, nil
	case "help", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "exit":
		return command{kind: cmdQuit}, nil
	}

	move := strings.ToLower(fields[0])
	cmd := command{kind: cmdMove, promotion: chess.NoKind}
	switch {
	case len(move) == 5:
		kind, ok := promotionLetters[move[4]]
		if !ok {
			return command{}, fmt.Errorf("unknown promotion %q", move[4:])
		}
		cmd.promotion = kind
	case len(move) != 4:
		return command{}, fmt.Errorf("cannot read move %q, expected e.g. e2e4", fields[0])
	}
	cmd.from, cmd.to = move[:2], move[2:4]

	switch len(fields) {
	case 1:
	case 2:
		kind, ok := chess.ParseKind(kindName(fields[1]))
		if !ok || !kind.IsPromotion() || cmd.promotion != chess.NoKind {
			return command{}, fmt.Errorf("unknown promotion %q", fields[1])
		}
		cmd.promotion = kind
	default:
		return command{}, fmt.Errorf("too many words in %q", line)
	}
	return cmd, nil
}

// kindName turns "queen" or "QUEEN" into "Queen".
func kindName(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const helpText = `Commands:
  e2e4          move a piece (castle by moving the king onto its rook: e1h1)
  e7e8 Queen    promote, also e7e8q, e7e8r, e7e8b, e7e8n
  moves e2      list the legal destinations of a piece
  board         show the board
  quit          leave the game
`
