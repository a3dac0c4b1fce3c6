// Package errors provides sentinel errors and error types for the duel-chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules or would
	// leave the mover's own king attacked.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPiece indicates the source square of a move is empty.
	ErrNoPiece = errors.New("no piece on source square")

	// ErrNotYourTurn indicates a move by the side that is not to move, or by
	// a seat that does not belong to this process.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrGameOver indicates a move attempted after checkmate.
	ErrGameOver = errors.New("game is over")

	// ErrPromotionRequired indicates a pawn reaching the last rank without a
	// promotion choice.
	ErrPromotionRequired = errors.New("promotion choice required")

	// ErrInvalidPromotion indicates a promotion choice outside Queen, Rook,
	// Bishop and Knight, or a choice given for a move that does not promote.
	ErrInvalidPromotion = errors.New("invalid promotion choice")

	// ErrOutOfRange indicates a square outside the 8x8 board.
	ErrOutOfRange = errors.New("square out of range")

	// ErrKingRemoved indicates an attempt to take a king off the board.
	ErrKingRemoved = errors.New("king removed from board")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrProtocol indicates a relay line that could not be decoded.
	ErrProtocol = errors.New("protocol error")

	// ErrNotFound indicates an archive lookup with no stored moves.
	ErrNotFound = errors.New("not found")

	// ErrInvalidGameID indicates an archive game id that is empty or
	// contains the key separator.
	ErrInvalidGameID = errors.New("invalid game id")
)

// MoveError wraps errors with move context: the side that moved, the
// squares involved and the ply at which it happened. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	Side   string // "White" or "Black" (if known)
	From   string // Source square name (if known)
	To     string // Destination square name (if known)
	PlyNum int    // Ply number where error occurred (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Side != "" {
		parts = append(parts, e.Side)
	}

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.From != "" || e.To != "" {
		parts = append(parts, fmt.Sprintf("move %s%s", e.From, e.To))
	}

	context := strings.Join(parts, ", ")
	if context == "" {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "move error"
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a relay line that failed to decode.
type ProtocolError struct {
	Err  error  // The underlying error
	Line string // The raw line received
	Got  string // The offending token, if one was isolated
}

// Error returns a formatted error message with the offending line.
func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("line %q", e.Line)
	if e.Got != "" {
		msg += fmt.Sprintf(": unexpected %s", e.Got)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
