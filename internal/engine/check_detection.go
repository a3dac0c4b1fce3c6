package engine

import "github.com/lgbarn/duel-chess/internal/chess"

// IsInCheck returns true if the given colour's king is attacked.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	sq, ok := board.KingSquare(colour)
	if !ok {
		return false // No king on the board
	}
	return IsSquareAttacked(board, sq, colour.Opposite())
}

// IsSquareAttacked returns true if the square is attacked by the given
// colour. The attacking side's king is not considered.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(row, col)
			if piece == nil || piece.Colour != byColour || piece.Kind == chess.King {
				continue
			}
			if attacks(board, piece, chess.Sq(row, col), sq) {
				return true
			}
		}
	}
	return false
}

// KingInCheckAfterMove simulates moving the piece on from to to, including
// en passant removal and castling, and reports whether the mover's own king
// is attacked afterwards. The board is restored before returning, whatever
// the result.
func KingInCheckAfterMove(board *chess.Board, from, to chess.Square) bool {
	piece := board.At(from)
	if piece == nil {
		return false
	}

	// Kings are never captured, so such a move can never be completed.
	if target := board.At(to); target != nil && target != piece && target.Kind == chess.King {
		return true
	}

	return board.Trial(
		func() { play(board, from, to, chess.NoKind) },
		func() bool { return IsInCheck(board, piece.Colour) },
	)
}

// IsLegal reports whether the piece on from may move to to: the move obeys
// the piece's movement rules and does not leave its own king attacked.
func IsLegal(board *chess.Board, from, to chess.Square) bool {
	return CanMove(board, from, to) && !KingInCheckAfterMove(board, from, to)
}
