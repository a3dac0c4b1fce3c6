package engine

import "github.com/lgbarn/duel-chess/internal/chess"

// IsCheckmate returns true if the given colour is in check and has no legal
// move that escapes it.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// CheckStatus returns whether colour is unchecked, in check or checkmated.
func CheckStatus(board *chess.Board, colour chess.Colour) chess.CheckStatus {
	if !IsInCheck(board, colour) {
		return chess.NoCheck
	}
	if HasLegalMoves(board, colour) {
		return chess.Check
	}
	return chess.Checkmate
}
