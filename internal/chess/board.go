package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/duel-chess/internal/errors"
)

// Board represents a chess board with all state needed by the rules engine.
type Board struct {
	// The board squares, indexed [row][col]. Row 0 is rank 8.
	squares [BoardSize][BoardSize]*Piece

	// Keep track of where the two kings are for check detection.
	kings   [2]Square
	hasKing [2]bool

	// Is en passant capture possible? If so then EPSquare is the square
	// passed over by the pawn that just double-stepped.
	EnPassant bool
	EPSquare  Square
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board set up in the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	*b = Board{}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Place(Sq(0, col), NewPiece(backRank[col], Black))
		b.Place(Sq(1, col), NewPiece(Pawn, Black))
		b.Place(Sq(6, col), NewPiece(Pawn, White))
		b.Place(Sq(7, col), NewPiece(backRank[col], White))
	}
}

// mustValid panics when sq is off the board. Callers parse square names
// before they reach the board, so this is a programming error.
func mustValid(sq Square) {
	if !sq.Valid() {
		panic(errors.Wrapf(errors.ErrOutOfRange, "square (%d,%d)", sq.Row, sq.Col))
	}
}

// At returns the piece on the given square, or nil if it is empty.
func (b *Board) At(sq Square) *Piece {
	mustValid(sq)
	return b.squares[sq.Row][sq.Col]
}

// Get returns the piece at the given row and column.
func (b *Board) Get(row, col int) *Piece {
	return b.At(Sq(row, col))
}

// IsEmpty reports whether the square has no occupant.
func (b *Board) IsEmpty(sq Square) bool {
	return b.At(sq) == nil
}

// Place puts p on sq, discarding any previous occupant. It is used for
// setup and promotion; moves go through Move. Overwriting a king panics.
func (b *Board) Place(sq Square, p *Piece) {
	mustValid(sq)
	if old := b.squares[sq.Row][sq.Col]; old != nil && old != p && old.Kind == King {
		panic(errors.Wrapf(errors.ErrKingRemoved, "place %v on %s", p, sq))
	}
	b.squares[sq.Row][sq.Col] = p
	if p == nil {
		return
	}
	p.Square = sq
	if p.Kind == King {
		b.kings[p.Colour] = sq
		b.hasKing[p.Colour] = true
	}
}

// Remove clears sq and returns the piece that stood there.
func (b *Board) Remove(sq Square) *Piece {
	p := b.At(sq)
	if p != nil && p.Kind == King {
		panic(errors.Wrapf(errors.ErrKingRemoved, "remove %s", sq))
	}
	b.squares[sq.Row][sq.Col] = nil
	return p
}

// Move relocates the piece on from to to and returns the captured piece,
// if any. It does not touch the Moved flag.
func (b *Board) Move(from, to Square) *Piece {
	p := b.At(from)
	if p == nil {
		return nil
	}
	captured := b.At(to)
	if captured == p {
		return nil
	}
	if captured != nil && captured.Kind == King {
		panic(errors.Wrapf(errors.ErrKingRemoved, "capture on %s", to))
	}
	b.squares[from.Row][from.Col] = nil
	b.Place(to, p)
	return captured
}

// KingSquare returns where the king of the given colour stands.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	return b.kings[colour], b.hasKing[colour]
}

// ForEach calls fn for every occupied square, rank 8 first.
func (b *Board) ForEach(fn func(sq Square, p *Piece)) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.squares[row][col]; p != nil {
				fn(Sq(row, col), p)
			}
		}
	}
}

// Copy creates a deep copy of the board. Pieces are duplicated, so the copy
// can be mutated without affecting b.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p := b.squares[row][col]; p != nil {
				cp := *p
				newBoard.squares[row][col] = &cp
			}
		}
	}
	return newBoard
}

// pieceState records the mutable fields of one piece.
type pieceState struct {
	piece  *Piece
	square Square
	moved  bool
}

// BoardState captures all mutable board state for save/restore operations,
// including the coordinate and Moved flag of every piece on the board.
type BoardState struct {
	squares   [BoardSize][BoardSize]*Piece
	kings     [2]Square
	hasKing   [2]bool
	enPassant bool
	epSquare  Square
	pieces    []pieceState
}

// SaveState captures the current board state for later restoration.
func (b *Board) SaveState() BoardState {
	s := BoardState{
		squares:   b.squares,
		kings:     b.kings,
		hasKing:   b.hasKing,
		enPassant: b.EnPassant,
		epSquare:  b.EPSquare,
		pieces:    make([]pieceState, 0, 32),
	}
	b.ForEach(func(_ Square, p *Piece) {
		s.pieces = append(s.pieces, pieceState{piece: p, square: p.Square, moved: p.Moved})
	})
	return s
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	b.squares = s.squares
	b.kings = s.kings
	b.hasKing = s.hasKing
	b.EnPassant = s.enPassant
	b.EPSquare = s.epSquare
	for _, ps := range s.pieces {
		ps.piece.Square = ps.square
		ps.piece.Moved = ps.moved
	}
}

// Trial applies mutate, evaluates probe on the mutated board and then
// restores the board to its prior state. Restoration is deferred, so it also
// runs if mutate or probe panics.
func (b *Board) Trial(mutate func(), probe func() bool) bool {
	saved := b.SaveState()
	defer b.RestoreState(saved)

	mutate()
	return probe()
}

// String renders the board as eight lines of piece letters, rank 8 first,
// with '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		fmt.Fprintf(&sb, "%d ", BoardSize-row)
		for col := 0; col < BoardSize; col++ {
			if p := b.squares[row][col]; p != nil {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
