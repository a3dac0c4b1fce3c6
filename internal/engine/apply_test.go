package engine

import (
	"testing"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/errors"
	"github.com/lgbarn/duel-chess/internal/testutil"
)

const promotionBoard = `
	....k...
	P.......
	........
	........
	........
	........
	........
	....K...`

func TestApplyMove_Promotion(t *testing.T) {
	for _, kind := range []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
		t.Run(kind.String(), func(t *testing.T) {
			board := testutil.MustBoard(t, promotionBoard)
			pawn := board.At(sq("a7"))

			move, err := ApplyMove(board, sq("a7"), sq("a8"), kind)
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, move.Class, chess.PawnMoveWithPromotion)
			testutil.AssertEqual(t, move.Piece, kind)
			testutil.AssertEqual(t, move.Promotion, kind)

			p := board.At(sq("a8"))
			if p == nil || p == pawn {
				t.Fatalf("a8 = %v; want a new %v", p, kind)
			}
			testutil.AssertEqual(t, p.Kind, kind)
			testutil.AssertEqual(t, p.Colour, chess.White)
			testutil.AssertEqual(t, p.Square.String(), "a8")
			testutil.AssertTrue(t, p.Moved, "promoted piece should count as moved")
			testutil.AssertTrue(t, board.IsEmpty(sq("a7")))
		})
	}
}

func TestApplyMove_PromotionWithCapture(t *testing.T) {
	board := testutil.MustBoard(t, `
		.r..k...
		P.......
		........
		........
		........
		........
		........
		....K...`)

	move, err := ApplyMove(board, sq("a7"), sq("b8"), chess.Knight)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move.Captured, chess.Rook)
	testutil.AssertEqual(t, move.String(), "a7b8=N")
	testutil.AssertEqual(t, board.At(sq("b8")).Kind, chess.Knight)
}

func TestApplyMove_PromotionErrors(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		promotion chess.Kind
		want      error
	}{
		{"missing choice", "a7", "a8", chess.NoKind, errors.ErrPromotionRequired},
		{"promote to king", "a7", "a8", chess.King, errors.ErrInvalidPromotion},
		{"promote to pawn", "a7", "a8", chess.Pawn, errors.ErrInvalidPromotion},
		{"choice on ordinary move", "e1", "d1", chess.Queen, errors.ErrInvalidPromotion},
		{"no piece", "c3", "c4", chess.NoKind, errors.ErrNoPiece},
		{"illegal", "a7", "a5", chess.NoKind, errors.ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, promotionBoard)
			before := testutil.Snapshot(board)

			_, err := ApplyMove(board, sq(tt.from), sq(tt.to), tt.promotion)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertEqual(t, testutil.Snapshot(board), before, "failed move changed the board")
		})
	}
}

func TestApplyMove_Capture(t *testing.T) {
	board := chess.NewInitialBoard()
	playLine(t, board, "e2e4", "d7d5")

	victim := board.At(sq("d5"))
	move, err := ApplyMove(board, sq("e4"), sq("d5"), chess.NoKind)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, move.Class, chess.PawnMove)
	testutil.AssertEqual(t, move.Captured, chess.Pawn)
	testutil.AssertTrue(t, move.IsCapture())
	testutil.AssertEqual(t, board.At(sq("d5")).Colour, chess.White)
	testutil.AssertTrue(t, board.IsEmpty(sq("e4")))

	board.ForEach(func(_ chess.Square, p *chess.Piece) {
		if p == victim {
			t.Errorf("captured pawn still on the board at %s", p.Square)
		}
	})
}

func TestApplyMove_UpdatesState(t *testing.T) {
	board := chess.NewInitialBoard()
	knight := board.At(sq("g1"))

	move, err := ApplyMove(board, sq("g1"), sq("f3"), chess.NoKind)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, move.Class, chess.PieceMove)
	testutil.AssertEqual(t, move.Piece, chess.Knight)
	testutil.AssertEqual(t, move.Colour, chess.White)
	testutil.AssertTrue(t, knight.Moved)
	testutil.AssertEqual(t, knight.Square.String(), "f3")
	testutil.AssertFalse(t, board.EnPassant)

	_, err = ApplyMove(board, sq("e7"), sq("e5"), chess.NoKind)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, board.EnPassant)
	testutil.AssertEqual(t, board.EPSquare.String(), "e6")

	_, err = ApplyMove(board, sq("e1"), sq("e2"), chess.NoKind)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove, "king onto own pawn")

	playLine(t, board, "f3g1")
	testutil.AssertFalse(t, board.EnPassant, "en passant should expire")
}

func TestApplyMove_KingIndexFollowsKing(t *testing.T) {
	board := chess.NewInitialBoard()
	playLine(t, board, "e2e4", "e7e5", "e1e2")

	ksq, ok := board.KingSquare(chess.White)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, ksq.String(), "e2")
}
