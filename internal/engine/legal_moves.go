package engine

import "github.com/lgbarn/duel-chess/internal/chess"

// HasLegalMoves returns true if the given colour has at least one legal move.
// Every square is tried as a destination for every piece of that colour.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(row, col)
			if piece == nil || piece.Colour != colour {
				continue
			}
			if hasLegalMovesForPiece(board, chess.Sq(row, col)) {
				return true
			}
		}
	}
	return false
}

// hasLegalMovesForPiece checks if a specific piece has any legal moves.
func hasLegalMovesForPiece(board *chess.Board, from chess.Square) bool {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if IsLegal(board, from, chess.Sq(row, col)) {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every square the piece on from may legally move to,
// rank 8 first. A castle is reported as the rook's square.
func LegalMoves(board *chess.Board, from chess.Square) []chess.Square {
	if board.At(from) == nil {
		return nil
	}
	var moves []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			to := chess.Sq(row, col)
			if IsLegal(board, from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}
