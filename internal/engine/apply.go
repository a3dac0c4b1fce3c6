package engine

import (
	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// ApplyMove validates and executes the move of the piece on from to to.
// promotion must name a promotable kind exactly when a pawn reaches its last
// rank, and must be NoKind otherwise. On error the board is unchanged.
func ApplyMove(board *chess.Board, from, to chess.Square, promotion chess.Kind) (chess.Move, error) {
	piece := board.At(from)
	if piece == nil {
		return chess.Move{}, errors.ErrNoPiece
	}
	if !IsLegal(board, from, to) {
		return chess.Move{}, errors.ErrIllegalMove
	}
	if err := checkPromotion(piece, to, promotion); err != nil {
		return chess.Move{}, err
	}
	return play(board, from, to, promotion), nil
}

// checkPromotion requires an explicit promotable kind on a promoting move
// and rejects one on any other move.
func checkPromotion(piece *chess.Piece, to chess.Square, promotion chess.Kind) error {
	if !promotes(piece, to) {
		if promotion != chess.NoKind {
			return errors.ErrInvalidPromotion
		}
		return nil
	}
	if promotion == chess.NoKind {
		return errors.ErrPromotionRequired
	}
	if !promotion.IsPromotion() {
		return errors.ErrInvalidPromotion
	}
	return nil
}

// play executes a move that has already passed CanMove. It is shared by the
// executor and by the check simulation, so it never validates. A NoKind
// promotion on a promoting move leaves the pawn in place, which is enough
// for attack testing.
func play(board *chess.Board, from, to chess.Square, promotion chess.Kind) chess.Move {
	piece := board.At(from)
	move := chess.Move{
		Class:  chess.PieceMove,
		Colour: piece.Colour,
		From:   from,
		To:     to,
		Piece:  piece.Kind,
	}

	if piece.Kind == chess.King {
		if target := board.At(to); target != nil && target.Colour == piece.Colour {
			kingTo, rookTo := playCastle(board, from, to)
			move.Class = castleClass(from, to)
			move.To = kingTo
			move.RookFrom = to
			move.RookTo = rookTo
			board.EnPassant = false
			return move
		}
	}

	if piece.Kind == chess.Pawn {
		move.Class = chess.PawnMove
		if from.Col != to.Col && board.IsEmpty(to) {
			victimSq := enPassantVictim(from, to)
			if victim := board.At(victimSq); victim != nil && victim.Kind == chess.Pawn && victim.Colour != piece.Colour {
				board.Remove(victimSq)
				move.Class = chess.EnPassantPawnMove
				move.Captured = chess.Pawn
			}
		}
	}

	if captured := board.Move(from, to); captured != nil {
		move.Captured = captured.Kind
	}
	piece.Moved = true

	// A double step leaves the passed-over square open to en passant for
	// exactly one reply.
	if piece.Kind == chess.Pawn && abs(to.Row-from.Row) == 2 {
		board.EnPassant = true
		board.EPSquare = from.Offset(chess.ColourOffset(piece.Colour), 0)
	} else {
		board.EnPassant = false
	}

	if promotes(piece, to) && promotion != chess.NoKind {
		promoted := chess.NewPiece(promotion, piece.Colour)
		promoted.Moved = true
		board.Place(to, promoted)
		move.Class = chess.PawnMoveWithPromotion
		move.Piece = promotion
		move.Promotion = promotion
	}

	return move
}
