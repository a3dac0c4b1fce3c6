// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"

	"github.com/lgbarn/duel-chess/internal/chess"
)

// CanMove reports whether the piece on from may move to to under its own
// movement rules. This is the pseudo-legal test: it does not consider
// whether the move leaves the mover's king attacked (see IsLegal). CanMove
// never mutates the board.
func CanMove(board *chess.Board, from, to chess.Square) bool {
	piece := board.At(from)
	if piece == nil {
		return false
	}

	// A king moving onto its own rook is a castle request, not a capture.
	target := board.At(to)
	if target != nil && target.Colour == piece.Colour &&
		!(piece.Kind == chess.King && target.Kind == chess.Rook) {
		return false
	}

	return canPieceMove(board, piece, from, to)
}

// canPieceMove dispatches to the movement rule of the piece's kind.
func canPieceMove(board *chess.Board, piece *chess.Piece, from, to chess.Square) bool {
	switch piece.Kind {
	case chess.Pawn:
		return canPawnMove(board, piece, from, to)
	case chess.Knight:
		return canKnightMove(from, to)
	case chess.Bishop:
		return canBishopMove(board, from, to)
	case chess.Rook:
		return canRookMove(board, from, to)
	case chess.Queen:
		return canRookMove(board, from, to) || canBishopMove(board, from, to)
	case chess.King:
		return canKingMove(board, piece, from, to)
	default:
		panic(fmt.Sprintf("engine: unhandled piece kind %v on %s", piece.Kind, from))
	}
}

func canKnightMove(from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	return (colDiff == 1 && rowDiff == 2) || (colDiff == 2 && rowDiff == 1)
}

func canBishopMove(board *chess.Board, from, to chess.Square) bool {
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)
	if rowDiff != colDiff || rowDiff == 0 {
		return false
	}
	return isPathClear(board, from, to)
}

func canRookMove(board *chess.Board, from, to chess.Square) bool {
	// Exactly one of the two axes must change.
	if (from.Row == to.Row) == (from.Col == to.Col) {
		return false
	}
	return isPathClear(board, from, to)
}

// isPathClear walks the ray from from toward to and reports whether every
// square strictly between them is empty. The squares must share a rank,
// file or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	for sq := from.Offset(rowDir, colDir); sq != to; sq = sq.Offset(rowDir, colDir) {
		if !board.IsEmpty(sq) {
			return false
		}
	}
	return true
}

// attacks reports whether piece, standing on from, attacks to. It matches
// CanMove except for pawns, which attack the two forward diagonals whether
// or not anything stands there.
func attacks(board *chess.Board, piece *chess.Piece, from, to chess.Square) bool {
	if from == to {
		return false
	}
	if piece.Kind == chess.Pawn {
		return to.Row-from.Row == chess.ColourOffset(piece.Colour) && abs(to.Col-from.Col) == 1
	}
	return canPieceMove(board, piece, from, to)
}
