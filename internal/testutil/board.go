// Package testutil provides shared test utilities for the duel-chess project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/lgbarn/duel-chess/internal/chess"
)

// ParseDiagram builds a board from eight lines of piece letters, rank 8
// first, uppercase for White, lowercase for Black and '.' for empty squares.
// Pawns standing off their starting row are marked as moved; every other
// piece starts unmoved. It returns nil if the diagram is malformed.
func ParseDiagram(diagram string) *chess.Board {
	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != chess.BoardSize {
		return nil
	}

	b := chess.NewBoard()
	for row, line := range rows {
		if len(line) != chess.BoardSize {
			return nil
		}
		for col := 0; col < chess.BoardSize; col++ {
			c := line[col]
			if c == '.' {
				continue
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
				c -= 'a' - 'A'
			}
			kind := kindForLetter(c)
			if kind == chess.NoKind {
				return nil
			}
			p := chess.NewPiece(kind, colour)
			if kind == chess.Pawn && row != chess.HomeRow(colour)+chess.ColourOffset(colour) {
				p.Moved = true
			}
			b.Place(chess.Sq(row, col), p)
		}
	}
	return b
}

// MustBoard parses a diagram and calls t.Fatal if it is malformed.
func MustBoard(t *testing.T, diagram string) *chess.Board {
	t.Helper()
	b := ParseDiagram(diagram)
	if b == nil {
		t.Fatalf("malformed board diagram:\n%s", diagram)
	}
	return b
}

// MarkMoved sets the Moved flag of the pieces on the named squares.
func MarkMoved(t *testing.T, b *chess.Board, squares ...string) {
	t.Helper()
	for _, name := range squares {
		p := b.At(chess.MustSquare(name))
		if p == nil {
			t.Fatalf("MarkMoved: %s is empty", name)
		}
		p.Moved = true
	}
}

func kindForLetter(c byte) chess.Kind {
	for k := chess.Pawn; k < chess.NumKinds; k++ {
		if k.Letter() == c {
			return k
		}
	}
	return chess.NoKind
}

// SquareSnapshot describes one occupied square for board comparisons.
type SquareSnapshot struct {
	Piece    string
	Recorded string // The square the piece believes it stands on
	Moved    bool
}

// BoardSnapshot is a comparable description of a board's full mutable state.
type BoardSnapshot struct {
	Squares   map[string]SquareSnapshot
	Kings     map[string]string
	EnPassant string
}

// Snapshot captures occupancy, piece coordinates, Moved flags, king squares
// and the en passant target. Compare two snapshots with AssertEqual.
func Snapshot(b *chess.Board) BoardSnapshot {
	s := BoardSnapshot{
		Squares: make(map[string]SquareSnapshot),
		Kings:   make(map[string]string),
	}
	b.ForEach(func(sq chess.Square, p *chess.Piece) {
		s.Squares[sq.String()] = SquareSnapshot{
			Piece:    p.String(),
			Recorded: p.Square.String(),
			Moved:    p.Moved,
		}
	})
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if sq, ok := b.KingSquare(c); ok {
			s.Kings[c.String()] = sq.String()
		}
	}
	if b.EnPassant {
		s.EnPassant = b.EPSquare.String()
	}
	return s
}
