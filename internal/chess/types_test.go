package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/duel-chess/internal/errors"
)

func TestSquareNames(t *testing.T) {
	tests := []struct {
		name string
		row  int
		col  int
	}{
		{"a8", 0, 0},
		{"h8", 0, 7},
		{"a1", 7, 0},
		{"h1", 7, 7},
		{"e2", 6, 4},
		{"d5", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSquareName(tt.row, tt.col); got != tt.name {
				t.Errorf("ToSquareName(%d, %d) = %q; want %q", tt.row, tt.col, got, tt.name)
			}
			sq, err := ParseSquare(tt.name)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error: %v", tt.name, err)
			}
			if sq != Sq(tt.row, tt.col) {
				t.Errorf("ParseSquare(%q) = %v; want (%d,%d)", tt.name, sq, tt.row, tt.col)
			}
		})
	}
}

func TestParseSquare_Invalid(t *testing.T) {
	for _, name := range []string{"", "e", "e22", "i1", "a0", "a9", "E2", "2e", "e/"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSquare(name)
			if !errors.Is(err, chesserrors.ErrOutOfRange) {
				t.Errorf("ParseSquare(%q) error = %v; want ErrOutOfRange", name, err)
			}
		})
	}
}

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() is not an involution")
	}
	if ColourOffset(White) != -1 || ColourOffset(Black) != 1 {
		t.Errorf("ColourOffset = %d, %d; want -1, 1", ColourOffset(White), ColourOffset(Black))
	}
	if LastRow(White) != 0 || LastRow(Black) != 7 {
		t.Errorf("LastRow = %d, %d; want 0, 7", LastRow(White), LastRow(Black))
	}
	for _, s := range []string{"white", "W", "WHITE"} {
		if c, ok := ParseColour(s); !ok || c != White {
			t.Errorf("ParseColour(%q) = %v, %v; want White, true", s, c, ok)
		}
	}
	if _, ok := ParseColour("green"); ok {
		t.Error("ParseColour(green) ok = true")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind      Kind
		name      string
		letter    byte
		promotion bool
	}{
		{Pawn, "Pawn", 'P', false},
		{Knight, "Knight", 'N', true},
		{Bishop, "Bishop", 'B', true},
		{Rook, "Rook", 'R', true},
		{Queen, "Queen", 'Q', true},
		{King, "King", 'K', false},
		{NoKind, "None", ' ', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q; want %q", got, tt.name)
			}
			if got := tt.kind.Letter(); got != tt.letter {
				t.Errorf("Letter() = %q; want %q", got, tt.letter)
			}
			if got := tt.kind.IsPromotion(); got != tt.promotion {
				t.Errorf("IsPromotion() = %v; want %v", got, tt.promotion)
			}
			if tt.kind != NoKind {
				if k, ok := ParseKind(tt.name); !ok || k != tt.kind {
					t.Errorf("ParseKind(%q) = %v, %v", tt.name, k, ok)
				}
			}
		})
	}

	if _, ok := ParseKind("Archbishop"); ok {
		t.Error("ParseKind(Archbishop) ok = true")
	}
}

func TestPieceLetter(t *testing.T) {
	if got := NewPiece(Knight, Black).Letter(); got != 'n' {
		t.Errorf("black knight letter = %q; want 'n'", got)
	}
	if got := NewPiece(Queen, White).Letter(); got != 'Q' {
		t.Errorf("white queen letter = %q; want 'Q'", got)
	}
	var empty *Piece
	if got := empty.String(); got != "Empty" {
		t.Errorf("nil piece String() = %q; want Empty", got)
	}
}
