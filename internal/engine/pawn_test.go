package engine

import (
	"testing"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/testutil"
)

func TestCanMove_Pawn(t *testing.T) {
	board := testutil.MustBoard(t, `
		....k...
		.P......
		........
		...p....
		..P.....
		.....n..
		....PP..
		....K...`)

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"single step", "e2", "e3", true},
		{"double step", "e2", "e4", true},
		{"blocked single step", "f2", "f3", false},
		{"blocked double step", "f2", "f4", false},
		{"backwards", "c4", "c3", false},
		{"sideways", "c4", "d4", false},
		{"capture", "c4", "d5", true},
		{"capture knight", "e2", "f3", true},
		{"diagonal onto empty", "c4", "b5", false},
		{"double step after moving", "c4", "c6", false},
		{"three steps", "e2", "e5", false},
		{"black forward", "d5", "d4", true},
		{"black backwards", "d5", "d6", false},
		{"black captures", "d5", "c4", true},
		{"to last rank", "b7", "b8", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanMove(board, sq(tt.from), sq(tt.to))
			testutil.AssertEqual(t, got, tt.want, "CanMove(%s, %s)", tt.from, tt.to)
		})
	}
}

func TestCanMove_PawnDoesNotSetMoved(t *testing.T) {
	board := chess.NewInitialBoard()
	pawn := board.At(sq("e2"))

	testutil.AssertTrue(t, CanMove(board, sq("e2"), sq("e4")))
	testutil.AssertFalse(t, pawn.Moved, "CanMove marked the pawn as moved")
	testutil.AssertTrue(t, CanMove(board, sq("e2"), sq("e4")), "double step refused on second query")

	// Attack scans evaluate pawns too.
	IsSquareAttacked(board, sq("d3"), chess.White)
	testutil.AssertFalse(t, pawn.Moved, "attack scan marked the pawn as moved")
}

func TestEnPassant(t *testing.T) {
	board := testutil.MustBoard(t, `
		....k...
		...p....
		........
		....P...
		........
		........
		........
		....K...`)

	_, err := ApplyMove(board, sq("d7"), sq("d5"), chess.NoKind)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, board.EnPassant, "double step should open en passant")
	testutil.AssertEqual(t, board.EPSquare.String(), "d6")

	testutil.AssertTrue(t, CanMove(board, sq("e5"), sq("d6")), "e5xd6 en passant")
	testutil.AssertFalse(t, CanMove(board, sq("e5"), sq("f6")), "no pawn passed f6")

	move, err := ApplyMove(board, sq("e5"), sq("d6"), chess.NoKind)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move.Class, chess.EnPassantPawnMove)
	testutil.AssertEqual(t, move.Captured, chess.Pawn)

	testutil.AssertTrue(t, board.IsEmpty(sq("d5")), "captured pawn should be removed")
	testutil.AssertTrue(t, board.IsEmpty(sq("e5")), "source should be empty")
	p := board.At(sq("d6"))
	if p == nil || p.Kind != chess.Pawn || p.Colour != chess.White {
		t.Fatalf("d6 = %v; want a white pawn", p)
	}
	testutil.AssertEqual(t, p.Square.String(), "d6")
	testutil.AssertFalse(t, board.EnPassant, "en passant should be cleared")
}

func TestEnPassant_ExpiresAfterOneMove(t *testing.T) {
	board := testutil.MustBoard(t, `
		....k...
		...p....
		........
		....P...
		........
		........
		.......P
		....K...`)

	mustApply(t, board, "d7", "d5")
	mustApply(t, board, "h2", "h3")
	mustApply(t, board, "e8", "e7")

	testutil.AssertFalse(t, CanMove(board, sq("e5"), sq("d6")), "en passant after an intervening move")
}

func TestEnPassant_RequiresDoubleStep(t *testing.T) {
	// The black pawn reached d5 in two single steps.
	board := testutil.MustBoard(t, `
		....k...
		........
		...p....
		....P...
		........
		........
		.......P
		....K...`)

	mustApply(t, board, "d6", "d5")
	testutil.AssertFalse(t, board.EnPassant)
	testutil.AssertFalse(t, CanMove(board, sq("e5"), sq("d6")))
}

func mustApply(t *testing.T, board *chess.Board, from, to string) chess.Move {
	t.Helper()
	move, err := ApplyMove(board, sq(from), sq(to), chess.NoKind)
	if err != nil {
		t.Fatalf("ApplyMove(%s, %s): %v", from, to, err)
	}
	return move
}
