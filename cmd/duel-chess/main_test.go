package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/engine"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyFlags(t *testing.T) {
	defer saveRestoreString(addr, "peer.example:7000")()
	defer saveRestoreBool(listen, true)()
	defer saveRestoreString(archiveDir, "games")()
	defer saveRestoreString(gameID, "g1")()
	defer saveRestoreInt(verbose, 2)()

	cfg := config.NewConfig()
	applyFlags(cfg)

	if cfg.Relay.Addr != "peer.example:7000" {
		t.Errorf("Addr = %q; want peer.example:7000", cfg.Relay.Addr)
	}
	if cfg.Seat() != chess.White {
		t.Errorf("Seat() = %s; want White", cfg.Seat())
	}
	if cfg.Archive.Dir != "games" || cfg.Archive.GameID != "g1" {
		t.Errorf("Archive = %+v", cfg.Archive)
	}
	if cfg.Verbosity != 2 {
		t.Errorf("Verbosity = %d; want 2", cfg.Verbosity)
	}

	t.Run("quiet overrides verbosity", func(t *testing.T) {
		defer saveRestoreBool(quiet, true)()
		cfg := config.NewConfig()
		applyFlags(cfg)
		if cfg.Verbosity != 0 {
			t.Errorf("Verbosity = %d; want 0", cfg.Verbosity)
		}
	})
}

func TestGetenv(t *testing.T) {
	t.Setenv("DUELCHESS_TEST_ADDR", "10.0.0.2:6000")
	if got := getenv("DUELCHESS_TEST_ADDR", ":5555"); got != "10.0.0.2:6000" {
		t.Errorf("getenv = %q", got)
	}
	if got := getenv("DUELCHESS_TEST_UNSET", ":5555"); got != ":5555" {
		t.Errorf("getenv default = %q", got)
	}
}

func TestGetenb(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"1", false, true},
		{"Yes", false, true},
		{" on ", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Setenv("DUELCHESS_TEST_LISTEN", tt.value)
		if got := getenb("DUELCHESS_TEST_LISTEN", tt.def); got != tt.want {
			t.Errorf("getenb(%q, %v) = %v; want %v", tt.value, tt.def, got, tt.want)
		}
	}
}

func TestGetdur(t *testing.T) {
	t.Setenv("DUELCHESS_TEST_TIMEOUT", "5s")
	if got := getdur("DUELCHESS_TEST_TIMEOUT", time.Minute); got != 5*time.Second {
		t.Errorf("getdur = %v; want 5s", got)
	}
	t.Setenv("DUELCHESS_TEST_TIMEOUT", "soon")
	if got := getdur("DUELCHESS_TEST_TIMEOUT", time.Minute); got != time.Minute {
		t.Errorf("getdur with bad value = %v; want 1m", got)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    command
		wantErr bool
	}{
		{line: "e2e4", want: command{kind: cmdMove, from: "e2", to: "e4"}},
		{line: "  E2E4 ", want: command{kind: cmdMove, from: "e2", to: "e4"}},
		{line: "e7e8 Queen", want: command{kind: cmdMove, from: "e7", to: "e8", promotion: chess.Queen}},
		{line: "e7e8 knight", want: command{kind: cmdMove, from: "e7", to: "e8", promotion: chess.Knight}},
		{line: "e7e8r", want: command{kind: cmdMove, from: "e7", to: "e8", promotion: chess.Rook}},
		{line: "e1h1", want: command{kind: cmdMove, from: "e1", to: "h1"}},
		{line: "moves g1", want: command{kind: cmdMoves, from: "g1"}},
		{line: "board", want: command{kind: cmdBoard}},
		{line: "?", want: command{kind: cmdHelp}},
		{line: "quit", want: command{kind: cmdQuit}},
		{line: "", wantErr: true},
		{line: "e2", wantErr: true},
		{line: "e7e8k", wantErr: true},
		{line: "e7e8 King", wantErr: true},
		{line: "e7e8q Queen", wantErr: true},
		{line: "e2e4 now please", wantErr: true},
		{line: "moves", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseCommand(%q) = %+v; want error", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommand(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("parseCommand(%q) = %+v; want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTerminal_Handle(t *testing.T) {
	var out bytes.Buffer
	ui := &terminal{out: &out, seat: chess.White, peerMoved: make(chan struct{}, 1)}
	g := engine.NewGame(engine.WithSeat(chess.White), engine.WithListener(ui.onMove))

	if ui.handle(g, "moves g1") {
		t.Fatal("moves should not quit")
	}
	if !strings.Contains(out.String(), "g1: f3 h3") {
		t.Errorf("moves output = %q", out.String())
	}

	out.Reset()
	ui.handle(g, "e2e5")
	if !strings.Contains(out.String(), "illegal move") {
		t.Errorf("illegal move output = %q", out.String())
	}

	out.Reset()
	ui.handle(g, "e2e4")
	if !strings.Contains(out.String(), "White e2e4") {
		t.Errorf("move output = %q", out.String())
	}
	if !strings.Contains(out.String(), "4 | . . . . P . . . | 4") {
		t.Errorf("board not redrawn:\n%s", out.String())
	}

	out.Reset()
	ui.handle(g, "d2d4")
	if !strings.Contains(out.String(), "not your turn") {
		t.Errorf("out of turn output = %q", out.String())
	}

	if !ui.handle(g, "quit") {
		t.Error("quit should quit")
	}
}

func TestTerminal_PeerMoveSignalsRedraw(t *testing.T) {
	var out bytes.Buffer
	ui := &terminal{out: &out, seat: chess.White, peerMoved: make(chan struct{}, 1)}

	ui.onMove(chess.Move{Colour: chess.Black, From: chess.MustSquare("e7"), To: chess.MustSquare("e5"), Remote: true})
	ui.onMove(chess.Move{Colour: chess.Black, From: chess.MustSquare("d7"), To: chess.MustSquare("d5"), Remote: true})

	select {
	case <-ui.peerMoved:
	default:
		t.Fatal("peer move did not signal a redraw")
	}
	if !strings.Contains(out.String(), "Black (peer) e7e5") {
		t.Errorf("output = %q", out.String())
	}
}
