package engine

import "github.com/lgbarn/duel-chess/internal/chess"

// canKingMove checks a one-square king step, or a castle when the king
// targets its own rook.
func canKingMove(board *chess.Board, king *chess.Piece, from, to chess.Square) bool {
	if target := board.At(to); target != nil && target.Colour == king.Colour {
		return IsCastlingMove(board, from, to)
	}
	return max(abs(to.Row-from.Row), abs(to.Col-from.Col)) == 1
}

// IsCastlingMove reports whether the king on from may castle with the rook
// on to. Both must be unmoved, every square between them empty, and the king
// must not be attacked on its start square, on the square it passes over,
// or once the castle is complete.
func IsCastlingMove(board *chess.Board, from, to chess.Square) bool {
	king := board.At(from)
	rook := board.At(to)
	if king == nil || rook == nil || king.Kind != chess.King || rook.Kind != chess.Rook {
		return false
	}
	if rook.Colour != king.Colour || king.Moved || rook.Moved {
		return false
	}

	// The king travels two squares, so the rook must be at least three away.
	if from.Row != to.Row || abs(to.Col-from.Col) < 3 {
		return false
	}
	if !isPathClear(board, from, to) {
		return false
	}

	enemy := king.Colour.Opposite()
	if IsSquareAttacked(board, from, enemy) {
		return false
	}
	if IsSquareAttacked(board, from.Offset(0, sign(to.Col-from.Col)), enemy) {
		return false
	}

	return !isInCheckAfterCastling(board, from, to)
}

// isInCheckAfterCastling simulates the completed castle and reports whether
// the king would then be attacked. The board is always restored.
func isInCheckAfterCastling(board *chess.Board, from, to chess.Square) bool {
	colour := board.At(from).Colour
	return board.Trial(
		func() { playCastle(board, from, to) },
		func() bool { return IsInCheck(board, colour) },
	)
}

// castleSquares returns where king and rook land: the king two squares
// toward the rook, the rook on the square the king passed over.
func castleSquares(from, to chess.Square) (kingTo, rookTo chess.Square) {
	dir := sign(to.Col - from.Col)
	return from.Offset(0, 2*dir), from.Offset(0, dir)
}

// playCastle moves king and rook to their castled squares and marks both
// as moved.
func playCastle(board *chess.Board, from, to chess.Square) (kingTo, rookTo chess.Square) {
	kingTo, rookTo = castleSquares(from, to)
	king := board.At(from)
	rook := board.At(to)

	board.Move(to, rookTo)
	board.Move(from, kingTo)

	king.Moved = true
	rook.Moved = true
	return kingTo, rookTo
}

// castleClass tells a kingside castle from a queenside one by the side the
// rook stood on.
func castleClass(from, rookFrom chess.Square) chess.MoveClass {
	if rookFrom.Col > from.Col {
		return chess.KingsideCastle
	}
	return chess.QueensideCastle
}
