package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// MoveListener is notified once for every finalized move, local or remote.
// Listeners run while the game lock is held and must not call back into the
// Game.
type MoveListener func(chess.Move)

// Outcome describes the result of an applied move.
type Outcome struct {
	Move chess.Move

	// Status of the opponent's king after the move.
	Status chess.CheckStatus

	// Over is set when the move ended the game.
	Over bool
}

// Game tracks one game between two players: the board, the side to move,
// the terminal state and the listeners to notify. All methods are safe for
// concurrent use; every call is serialized by the game's lock.
type Game struct {
	mu sync.Mutex

	board  *chess.Board
	toMove chess.Colour
	ply    int

	over   bool
	winner chess.Colour

	seat   chess.Colour
	seated bool

	listeners []MoveListener

	logFile   io.Writer
	verbosity int
}

// GameOption configures a Game.
type GameOption func(*Game)

// WithSeat restricts AttemptMove to the given colour. Moves for the other
// colour arrive through ApplyPeerMove.
func WithSeat(c chess.Colour) GameOption {
	return func(g *Game) {
		g.seat = c
		g.seated = true
	}
}

// WithBoard starts the game from the given position with toMove to play.
func WithBoard(b *chess.Board, toMove chess.Colour) GameOption {
	return func(g *Game) {
		if b != nil {
			g.board = b
			g.toMove = toMove
		}
	}
}

// WithListener registers a move listener.
func WithListener(l MoveListener) GameOption {
	return func(g *Game) {
		if l != nil {
			g.listeners = append(g.listeners, l)
		}
	}
}

// WithLog writes move traces to w when verbosity is above 1.
func WithLog(w io.Writer, verbosity int) GameOption {
	return func(g *Game) {
		g.logFile = w
		g.verbosity = verbosity
	}
}

// NewGame creates a game in the standard starting position with White to
// move, unless options say otherwise.
func NewGame(opts ...GameOption) *Game {
	g := &Game{
		board:  chess.NewInitialBoard(),
		toMove: chess.White,
	}
	for _, opt := range opts {
		opt(g)
	}
	// A position handed in may already be decided.
	if IsCheckmate(g.board, g.toMove) {
		g.over = true
		g.winner = g.toMove.Opposite()
	}
	return g
}

// Subscribe registers a listener for moves applied from now on.
func (g *Game) Subscribe(l MoveListener) {
	if l == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, l)
}

// AttemptMove proposes a local move given in algebraic square names. The
// promotion kind is required when a pawn reaches its last rank and must be
// NoKind otherwise. A rejected move leaves the game unchanged and returns a
// *errors.MoveError wrapping the reason.
func (g *Game) AttemptMove(from, to string, promotion chess.Kind) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seated && g.toMove != g.seat {
		return Outcome{}, g.moveError(errors.ErrNotYourTurn, from, to)
	}
	fromSq, toSq, err := g.intake(from, to)
	if err != nil {
		return Outcome{}, g.moveError(err, from, to)
	}

	move, err := ApplyMove(g.board, fromSq, toSq, promotion)
	if err != nil {
		return Outcome{}, g.moveError(err, from, to)
	}
	return g.finish(move), nil
}

// ApplyPeerMove applies a move received from the remote player. The peer
// has already validated it, so only structural checks are made: the source
// must hold a piece of the side to move, a king may never be captured, a
// castle must be playable and the promotion choice must fit the move.
func (g *Game) ApplyPeerMove(from, to string, promotion chess.Kind) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seated && g.toMove == g.seat {
		return Outcome{}, g.moveError(errors.ErrNotYourTurn, from, to)
	}
	fromSq, toSq, err := g.intake(from, to)
	if err != nil {
		return Outcome{}, g.moveError(err, from, to)
	}

	piece := g.board.At(fromSq)
	if target := g.board.At(toSq); target != nil {
		if target.Kind == chess.King {
			return Outcome{}, g.moveError(errors.ErrIllegalMove, from, to)
		}
		// A king onto its own rook must be a castle the board can lay out.
		if target.Colour == piece.Colour && !IsCastlingMove(g.board, fromSq, toSq) {
			return Outcome{}, g.moveError(errors.ErrIllegalMove, from, to)
		}
	}
	if err := checkPromotion(piece, toSq, promotion); err != nil {
		return Outcome{}, g.moveError(err, from, to)
	}

	move := play(g.board, fromSq, toSq, promotion)
	move.Remote = true
	return g.finish(move), nil
}

// intake checks the game is still running and parses both squares. The
// source must hold a piece of the side to move.
func (g *Game) intake(from, to string) (chess.Square, chess.Square, error) {
	if g.over {
		return chess.Square{}, chess.Square{}, errors.ErrGameOver
	}
	fromSq, err := chess.ParseSquare(from)
	if err != nil {
		return chess.Square{}, chess.Square{}, err
	}
	toSq, err := chess.ParseSquare(to)
	if err != nil {
		return chess.Square{}, chess.Square{}, err
	}
	piece := g.board.At(fromSq)
	if piece == nil {
		return chess.Square{}, chess.Square{}, errors.ErrNoPiece
	}
	if piece.Colour != g.toMove {
		return chess.Square{}, chess.Square{}, errors.ErrNotYourTurn
	}
	return fromSq, toSq, nil
}

// finish records an executed move: it numbers the move, hands the turn over,
// evaluates the opponent's king and notifies the listeners.
func (g *Game) finish(move chess.Move) Outcome {
	g.ply++
	move.Ply = g.ply
	g.toMove = g.toMove.Opposite()

	move.Status = CheckStatus(g.board, g.toMove)
	if move.Status == chess.Checkmate {
		g.over = true
		g.winner = move.Colour
	}

	if g.verbosity > 1 && g.logFile != nil {
		fmt.Fprintf(g.logFile, "ply %d: %s %s (%s)\n", move.Ply, move.Colour, move, move.Status)
	}

	for _, l := range g.listeners {
		l(move)
	}
	return Outcome{Move: move, Status: move.Status, Over: g.over}
}

func (g *Game) moveError(err error, from, to string) error {
	return &errors.MoveError{
		Err:    err,
		Side:   g.toMove.String(),
		From:   from,
		To:     to,
		PlyNum: g.ply + 1,
	}
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// IsOver returns true once a checkmate has been played.
func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// Winner returns the side that delivered mate. ok is false while the game
// is running.
func (g *Game) Winner() (winner chess.Colour, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner, g.over
}

// Seat returns the colour this game plays locally. ok is false for an
// unseated game, where both sides move through AttemptMove.
func (g *Game) Seat() (seat chess.Colour, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seat, g.seated
}

// IsMyTurn reports whether a local move may be attempted now.
func (g *Game) IsMyTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.over && (!g.seated || g.toMove == g.seat)
}

// Ply returns the number of moves played.
func (g *Game) Ply() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ply
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return IsInCheck(g.board, g.toMove)
}

// PieceAt returns a copy of the piece on the named square, or nil.
func (g *Game) PieceAt(name string) (*chess.Piece, error) {
	sq, err := chess.ParseSquare(name)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.board.At(sq)
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// LegalMoves returns the names of the squares the piece on the named square
// may move to. Castles are listed by the rook's square.
func (g *Game) LegalMoves(name string) ([]string, error) {
	sq, err := chess.ParseSquare(name)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var names []string
	for _, to := range LegalMoves(g.board, sq) {
		names = append(names, to.String())
	}
	return names, nil
}

// Board returns a copy of the current position.
func (g *Game) Board() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Copy()
}
