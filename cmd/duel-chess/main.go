// duel-chess plays a game of chess between two people on two machines. One
// side listens and plays White, the other dials in and plays Black.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lgbarn/duel-chess/internal/archive"
	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/engine"
	"github.com/lgbarn/duel-chess/internal/output"
	"github.com/lgbarn/duel-chess/internal/relay"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("duel-chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run connects to the opponent and plays one game.
func run(ctx context.Context, cfg *config.Config, in io.Reader) error {
	seat := cfg.Seat()
	ui := &terminal{out: cfg.OutputFile, seat: seat, peerMoved: make(chan struct{}, 1)}

	g := engine.NewGame(
		engine.WithSeat(seat),
		engine.WithLog(cfg.LogFile, cfg.Verbosity),
		engine.WithListener(ui.onMove),
	)

	if cfg.Archive.Enabled() {
		a, id, err := openArchive(cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		g.Subscribe(a.Recorder(id, cfg.LogFile))
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	session, err := relay.NewSession(conn, g, relay.WithLog(cfg.LogFile, cfg.Verbosity))
	if err != nil {
		conn.Close()
		return err
	}
	if err := session.Handshake(ctx); err != nil {
		conn.Close()
		return err
	}

	fmt.Fprintf(ui.out, "You play %s. Type \"help\" for commands.\n", seat)
	ui.board(g)

	relayDone := make(chan error, 1)
	go func() { relayDone <- session.Run(ctx) }()

	lines := readLines(in)
	for {
		select {
		case err := <-relayDone:
			return finish(ui, g, session, err)
		case <-ui.peerMoved:
			ui.board(g)
		case line, ok := <-lines:
			if !ok || ui.handle(g, line) {
				conn.Close()
				<-relayDone
				return nil
			}
		}
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

func openArchive(cfg *config.Config) (*archive.Archive, string, error) {
	a, err := archive.Open(cfg.Archive)
	if err != nil {
		return nil, "", err
	}
	id := cfg.Archive.GameID
	if id == "" {
		id = archive.NewGameID()
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "archiving as game %s\n", id)
	}
	return a, id, nil
}

// connect listens for or dials the opponent.
func connect(ctx context.Context, cfg *config.Config) (net.Conn, error) {
	if !cfg.Relay.Listen {
		if cfg.Verbosity > 0 {
			fmt.Fprintf(cfg.LogFile, "dialing %s\n", config.NormalizeAddr(cfg.Relay.Addr))
		}
		return relay.Dial(ctx, cfg.Relay)
	}

	ln, err := relay.Listen(ctx, cfg.Relay)
	if err != nil {
		return nil, err
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "waiting for the opponent on %s\n", ln.Addr())
	}
	return relay.Accept(ctx, ln)
}

// readLines delivers stdin lines until EOF.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

func finish(ui *terminal, g *engine.Game, session *relay.Session, err error) error {
	if winner, ok := g.Winner(); ok {
		if winner == session.Seat() {
			fmt.Fprintln(ui.out, "Checkmate. You win!")
		} else {
			fmt.Fprintln(ui.out, "Checkmate. Your opponent has won.")
		}
		return nil
	}
	if session.PeerEnded() {
		fmt.Fprintln(ui.out, "Your opponent ended the game.")
		return nil
	}
	return err
}

// terminal prints the game for the local player.
type terminal struct {
	out       io.Writer
	seat      chess.Colour
	peerMoved chan struct{}
}

// onMove runs as a game listener, under the game's lock, so the board is
// redrawn from the main loop instead.
func (t *terminal) onMove(m chess.Move) {
	fmt.Fprintln(t.out, output.DescribeMove(m))
	if !m.Remote {
		return
	}
	select {
	case t.peerMoved <- struct{}{}:
	default:
	}
}

func (t *terminal) board(g *engine.Game) {
	fmt.Fprint(t.out, output.RenderBoard(g.Board(), t.seat))
}

// handle runs one command line and reports whether the player quit.
func (t *terminal) handle(g *engine.Game, line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	cmd, err := parseCommand(line)
	if err != nil {
		fmt.Fprintf(t.out, "%v\n", err)
		return false
	}

	switch cmd.kind {
	case cmdQuit:
		return true
	case cmdHelp:
		fmt.Fprint(t.out, helpText)
	case cmdBoard:
		t.board(g)
	case cmdMoves:
		moves, err := g.LegalMoves(cmd.from)
		if err != nil {
			fmt.Fprintf(t.out, "%v\n", err)
			return false
		}
		if len(moves) == 0 {
			fmt.Fprintf(t.out, "%s has no legal moves\n", cmd.from)
		} else {
			fmt.Fprintf(t.out, "%s: %s\n", cmd.from, strings.Join(moves, " "))
		}
	case cmdMove:
		if _, err := g.AttemptMove(cmd.from, cmd.to, cmd.promotion); err != nil {
			fmt.Fprintf(t.out, "%v\n", err)
			return false
		}
		t.board(g)
	}
	return false
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: duel-chess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against an opponent over TCP.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment: DUELCHESS_ADDR, DUELCHESS_LISTEN, DUELCHESS_TIMEOUT, DUELCHESS_ARCHIVE\n")
}
