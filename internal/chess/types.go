// Package chess provides core chess types and operations.
package chess

import (
	"fmt"

	"github.com/lgbarn/duel-chess/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour converts "white"/"black" (any case, or w/b) to a colour.
func ParseColour(s string) (Colour, bool) {
	switch s {
	case "white", "White", "WHITE", "w", "W":
		return White, true
	case "black", "Black", "BLACK", "b", "B":
		return Black, true
	}
	return Black, false
}

// ColourOffset returns the row step of a pawn advance: -1 for White, +1 for
// Black. Row 0 is Black's back rank.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// HomeRow returns the back-rank row of the given colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// LastRow returns the row on which the given colour's pawns promote.
func LastRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsPromotion reports whether a pawn may promote to this kind.
func (k Kind) IsPromotion() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// ParseKind converts a kind name such as "Queen" back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := Pawn; k < NumKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return NoKind, false
}

// Piece is a single piece on the board. Colour and Kind never change; a
// promotion replaces the piece instead of mutating it.
type Piece struct {
	Kind   Kind
	Colour Colour

	// Moved is set once the piece has completed a move. Pawn double steps
	// and castling need it.
	Moved bool

	// Square is where the piece currently stands. The board keeps it equal
	// to the grid cell holding the piece.
	Square Square
}

// NewPiece creates an unmoved piece.
func NewPiece(kind Kind, colour Colour) *Piece {
	return &Piece{Kind: kind, Colour: colour}
}

// Letter returns the piece letter, uppercase for White and lowercase for Black.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns e.g. "White Knight".
func (p *Piece) String() string {
	if p == nil {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	ColBase  = 'a'
	RankBase = '1'
)

// Square identifies a board cell. Row 0 is rank 8, Col 0 is file a.
type Square struct {
	Row int
	Col int
}

// Sq builds a square from row and column.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether both coordinates are within the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// String returns the algebraic name of the square, e.g. "e2".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return ToSquareName(s.Row, s.Col)
}

// Offset returns the square dr rows and dc columns away. The result may be
// off the board.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// ToSquareName converts a row and column index to a square name, e.g. (6, 4) is "e2".
func ToSquareName(row, col int) string {
	return string([]byte{byte(ColBase + col), byte('0' + BoardSize - row)})
}

// ParseSquare converts a square name such as "e2" to a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, errors.Wrapf(errors.ErrOutOfRange, "square %q", name)
	}
	col := int(name[0]) - ColBase
	row := BoardSize - (int(name[1]) - '0')
	sq := Square{Row: row, Col: col}
	if name[1] < RankBase || !sq.Valid() {
		return Square{}, errors.Wrapf(errors.ErrOutOfRange, "square %q", name)
	}
	return sq, nil
}

// MustSquare is ParseSquare for names known to be valid; it panics otherwise.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}
