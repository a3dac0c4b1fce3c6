// Package relay carries moves between two duel-chess processes over a
// line-oriented TCP connection.
//
// Every line is one message:
//
//	e2e4            a move
//	e7e8 Queen      a promotion, with the promoted kind spelled out
//	e1g1 . h1f1     a castle: the king's move, then the rook's
//	END             the sender has delivered checkmate
//	NEXT            turn marker, accepted and ignored
//
// Before play the two sides agree on colours with WHITE, BLACK and START.
package relay

import (
	"strings"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// Control lines
const (
	lineWhite = "WHITE"
	lineBlack = "BLACK"
	lineStart = "START"
	lineEnd   = "END"
	lineNext  = "NEXT"

	castleSeparator = "."
)

// MessageKind identifies a decoded line.
type MessageKind int

const (
	MoveMessage MessageKind = iota
	EndMessage
	NextMessage
)

// String returns the name of the message kind.
func (k MessageKind) String() string {
	switch k {
	case MoveMessage:
		return "Move"
	case EndMessage:
		return "End"
	case NextMessage:
		return "Next"
	default:
		return "Unknown"
	}
}

// Message is a decoded relay line.
type Message struct {
	Kind MessageKind

	// Move squares. For a castle From and To are the king's squares.
	From, To chess.Square

	// Promotion is NoKind unless a promotion was announced.
	Promotion chess.Kind

	// Castle marks a castle; RookFrom and RookTo are then set.
	Castle           bool
	RookFrom, RookTo chess.Square
}

// Source returns the squares to hand to Game.ApplyPeerMove. A castle is
// played as the king moving onto its rook.
func (m Message) Source() (from, to string) {
	if m.Castle {
		return m.From.String(), m.RookFrom.String()
	}
	return m.From.String(), m.To.String()
}

// EncodeMove renders a finalized move as a relay line.
func EncodeMove(m chess.Move) string {
	line := m.From.String() + m.To.String()
	switch {
	case m.IsCastle():
		line += " " + castleSeparator + " " + m.RookFrom.String() + m.RookTo.String()
	case m.IsPromotion():
		line += " " + m.Promotion.String()
	}
	return line
}

// Decode parses one relay line. Surrounding whitespace is ignored.
func Decode(line string) (Message, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{}, protocolError(line, "", "empty line")
	}

	switch fields[0] {
	case lineEnd:
		if len(fields) != 1 {
			return Message{}, protocolError(line, fields[1], "")
		}
		return Message{Kind: EndMessage}, nil
	case lineNext:
		if len(fields) != 1 {
			return Message{}, protocolError(line, fields[1], "")
		}
		return Message{Kind: NextMessage}, nil
	}

	from, to, err := decodeSquares(line, fields[0])
	if err != nil {
		return Message{}, err
	}
	msg := Message{Kind: MoveMessage, From: from, To: to}

	switch len(fields) {
	case 1:
		return msg, nil
	case 2:
		kind, ok := chess.ParseKind(fields[1])
		if !ok || !kind.IsPromotion() {
			return Message{}, protocolError(line, fields[1], "not a promotion kind")
		}
		msg.Promotion = kind
		return msg, nil
	case 3:
		if fields[1] != castleSeparator {
			return Message{}, protocolError(line, fields[1], "")
		}
		msg.RookFrom, msg.RookTo, err = decodeSquares(line, fields[2])
		if err != nil {
			return Message{}, err
		}
		msg.Castle = true
		return msg, nil
	default:
		return Message{}, protocolError(line, fields[3], "")
	}
}

// decodeSquares splits a four character token such as "e2e4".
func decodeSquares(line, token string) (chess.Square, chess.Square, error) {
	if len(token) != 4 {
		return chess.Square{}, chess.Square{}, protocolError(line, token, "")
	}
	from, err := chess.ParseSquare(token[:2])
	if err != nil {
		return chess.Square{}, chess.Square{}, protocolError(line, token, err.Error())
	}
	to, err := chess.ParseSquare(token[2:])
	if err != nil {
		return chess.Square{}, chess.Square{}, protocolError(line, token, err.Error())
	}
	return from, to, nil
}

func protocolError(line, got, detail string) error {
	err := errors.ErrProtocol
	if detail != "" {
		err = errors.Wrap(err, detail)
	}
	return &errors.ProtocolError{Err: err, Line: line, Got: got}
}
