package engine

import "github.com/lgbarn/duel-chess/internal/chess"

// canPawnMove checks the pawn movement rules: one step forward onto an
// empty square, two steps from an unmoved pawn over two empty squares, or a
// diagonal step that captures, either directly or en passant.
func canPawnMove(board *chess.Board, pawn *chess.Piece, from, to chess.Square) bool {
	dir := chess.ColourOffset(pawn.Colour)
	rowStep := to.Row - from.Row
	colDiff := abs(to.Col - from.Col)
	target := board.At(to)

	switch {
	case colDiff == 0 && rowStep == dir:
		return target == nil

	case colDiff == 0 && rowStep == 2*dir:
		return !pawn.Moved && target == nil && board.IsEmpty(from.Offset(dir, 0))

	case colDiff == 1 && rowStep == dir:
		if target != nil {
			return target.Colour != pawn.Colour
		}
		return isEnPassant(board, pawn, from, to)
	}

	return false
}

// isEnPassant reports whether a diagonal pawn step onto the empty square to
// captures en passant: to must be the square the opposing pawn beside from
// passed over with its double step on the previous move.
func isEnPassant(board *chess.Board, pawn *chess.Piece, from, to chess.Square) bool {
	if !board.EnPassant || board.EPSquare != to {
		return false
	}
	passed := board.At(enPassantVictim(from, to))
	return passed != nil && passed.Kind == chess.Pawn && passed.Colour != pawn.Colour
}

// enPassantVictim returns where the pawn captured en passant stands: beside
// the capturing pawn, on the destination file.
func enPassantVictim(from, to chess.Square) chess.Square {
	return chess.Sq(from.Row, to.Col)
}

// promotes reports whether moving piece to to lands a pawn on its last rank.
func promotes(piece *chess.Piece, to chess.Square) bool {
	return piece.Kind == chess.Pawn && to.Row == chess.LastRow(piece.Colour)
}
