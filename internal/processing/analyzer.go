// Package processing provides replay, analysis and validation of archived games.
package processing

import (
	"fmt"

	"github.com/lgbarn/duel-chess/internal/archive"
	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/engine"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	FinalBoard *chess.Board
	Plies      int

	Captures          int
	Castles           int
	EnPassants        int
	Checks            int
	HasUnderpromotion bool

	// Set when the game ended in checkmate.
	Checkmate bool
	Winner    chess.Colour
}

// UnderpromotionFound returns true if any pawn promoted to non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// Result returns "1-0", "0-1" or "*" for a game still in progress.
func (ga *GameAnalysis) Result() string {
	if !ga.Checkmate {
		return "*"
	}
	if ga.Winner == chess.White {
		return "1-0"
	}
	return "0-1"
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int
	ErrorMsg string
}

// AnalyzeGame replays archived moves from the initial position and analyzes
// them. Replay stops at the first move the engine rejects.
func AnalyzeGame(records []archive.Record) (*chess.Board, *GameAnalysis) {
	analysis := &GameAnalysis{}
	g := engine.NewGame(engine.WithListener(analysis.observe))

	for _, r := range records {
		from, to, promotion := r.Source()
		if _, err := g.AttemptMove(from, to, promotion); err != nil {
			break
		}
	}

	analysis.FinalBoard = g.Board()
	analysis.Winner, analysis.Checkmate = g.Winner()
	return analysis.FinalBoard, analysis
}

// observe tallies one replayed move.
func (ga *GameAnalysis) observe(m chess.Move) {
	ga.Plies++
	if m.IsCapture() {
		ga.Captures++
	}
	if m.IsCastle() {
		ga.Castles++
	}
	if m.Class == chess.EnPassantPawnMove {
		ga.EnPassants++
	}
	if m.Status == chess.Check {
		ga.Checks++
	}
	if m.IsPromotion() && m.Promotion != chess.Queen {
		ga.HasUnderpromotion = true
	}
}

// ReplayGame replays archived moves to get the final board state.
func ReplayGame(records []archive.Record) *chess.Board {
	board, _ := AnalyzeGame(records)
	return board
}

// ValidateGame checks that the archived moves are numbered from ply 1
// without gaps, that every move is legal, and that each record agrees with
// what the engine produces for it.
func ValidateGame(records []archive.Record) *ValidationResult {
	result := &ValidationResult{Valid: true}

	// If we have no moves, game is valid
	if len(records) == 0 {
		return result
	}

	g := engine.NewGame()
	for i, r := range records {
		ply := i + 1
		if r.Ply != ply {
			return invalid(result, ply, fmt.Sprintf("expected ply %d, archive has %d", ply, r.Ply))
		}

		from, to, promotion := r.Source()
		out, err := g.AttemptMove(from, to, promotion)
		if err != nil {
			return invalid(result, ply, fmt.Sprintf("illegal move at ply %d: %v", ply, err))
		}
		if msg := mismatch(r, out.Move); msg != "" {
			return invalid(result, ply, fmt.Sprintf("ply %d: %s", ply, msg))
		}
	}
	return result
}

func invalid(result *ValidationResult, ply int, msg string) *ValidationResult {
	result.Valid = false
	result.ErrorPly = ply
	result.ErrorMsg = msg
	return result
}

// mismatch compares a record with the move the engine played for it.
func mismatch(r archive.Record, m chess.Move) string {
	want := archive.NewRecord(r.GameID, m)
	switch {
	case r.Colour != want.Colour:
		return fmt.Sprintf("recorded for %s, played by %s", r.Colour, want.Colour)
	case r.To != want.To:
		return fmt.Sprintf("recorded destination %s, engine moved to %s", r.To, want.To)
	case r.Piece != want.Piece:
		return fmt.Sprintf("recorded piece %s, engine moved %s", r.Piece, want.Piece)
	case r.Status != "" && r.Status != want.Status:
		return fmt.Sprintf("recorded status %s, engine reports %s", r.Status, want.Status)
	}
	return ""
}

// CountPlies counts the number of plies (half-moves) in a game.
func CountPlies(records []archive.Record) int {
	return len(records)
}
