package chess

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
)

// String returns the string representation of a move class.
func (c MoveClass) String() string {
	names := []string{"PawnMove", "PawnMoveWithPromotion", "EnPassantPawnMove", "PieceMove", "KingsideCastle", "QueensideCastle"}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "Unknown"
}

// CheckStatus indicates whether a move gives check or checkmate.
type CheckStatus int

const (
	NoCheck CheckStatus = iota
	Check
	Checkmate
)

// String returns the string representation of a check status.
func (c CheckStatus) String() string {
	switch c {
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	default:
		return "NoCheck"
	}
}

// Move represents a single finalized move. It is what move listeners receive.
type Move struct {
	// Class of move (pawn move, piece move, castle, etc.).
	Class MoveClass

	// The side that moved.
	Colour Colour

	// Source and destination of the moving piece. For castles these are the
	// king's squares.
	From Square
	To   Square

	// The kind standing on To after the move. For a promotion this is the
	// promoted kind.
	Piece Kind

	// The kind captured (NoKind if not a capture).
	Captured Kind

	// The kind promoted to (NoKind if not a promotion).
	Promotion Kind

	// Rook squares of a castle.
	RookFrom Square
	RookTo   Square

	// Ply is the 1-based half-move number of this move in its game.
	Ply int

	// Remote is set for moves ingested from the peer.
	Remote bool

	// Status of the opponent's king once the move is complete.
	Status CheckStatus
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Captured != NoKind
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// IsMate returns true if the move ends the game by checkmate.
func (m Move) IsMate() bool {
	return m.Status == Checkmate
}

// String returns the move in long algebraic form, e.g. "e2e4", "e7e8=Q" or
// "e1g1" for a castle.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += "=" + string(m.Promotion.Letter())
	}
	return s
}
