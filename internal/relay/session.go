package relay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/engine"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// outboxSize bounds the moves waiting to be written. Turns alternate, so at
// most a move and an END are ever queued.
const outboxSize = 4

// Session relays one game over conn. Local moves reach the peer through a
// listener on the Game; peer moves are fed to Game.ApplyPeerMove.
type Session struct {
	conn   net.Conn
	reader *bufio.Reader
	game   *engine.Game
	seat   chess.Colour

	outbox    chan string
	closed    chan struct{}
	closeOnce sync.Once

	endSent   atomic.Bool
	peerEnded atomic.Bool

	logFile   io.Writer
	verbosity int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLog sets the writer for connection events and, above verbosity 1,
// every line sent and received.
func WithLog(w io.Writer, verbosity int) SessionOption {
	return func(s *Session) {
		s.logFile = w
		s.verbosity = verbosity
	}
}

// NewSession binds game to conn. The game must be seated; the seat decides
// the side of the handshake.
func NewSession(conn net.Conn, game *engine.Game, opts ...SessionOption) (*Session, error) {
	seat, ok := game.Seat()
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "relay needs a seated game")
	}
	s := &Session{
		conn:   conn,
		reader: bufio.NewReader(conn),
		game:   game,
		seat:   seat,
		outbox: make(chan string, outboxSize),
		closed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	game.Subscribe(s.onMove)
	return s, nil
}

// Seat returns the colour played on this side of the connection.
func (s *Session) Seat() chess.Colour {
	return s.seat
}

// PeerEnded reports whether the peer sent END.
func (s *Session) PeerEnded() bool {
	return s.peerEnded.Load()
}

func (s *Session) logf(level int, format string, args ...interface{}) {
	if s.logFile != nil && s.verbosity >= level {
		fmt.Fprintf(s.logFile, "relay: "+format+"\n", args...)
	}
}

// Handshake agrees on colours. The White side announces itself and waits
// for BLACK, then starts the game; the Black side answers WHITE with BLACK
// and waits for START.
func (s *Session) Handshake(ctx context.Context) error {
	defer func() { _ = s.conn.SetDeadline(time.Time{}) }()
	stop := context.AfterFunc(ctx, func() { _ = s.conn.SetDeadline(time.Now()) })
	defer stop()

	var err error
	if s.seat == chess.White {
		err = s.handshakeWhite()
	} else {
		err = s.handshakeBlack()
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "handshake")
	}
	s.logf(1, "connected to %s, playing %s", s.conn.RemoteAddr(), s.seat)
	return nil
}

func (s *Session) handshakeWhite() error {
	if err := s.writeLine(lineWhite); err != nil {
		return err
	}
	if err := s.expect(lineBlack); err != nil {
		return err
	}
	return s.writeLine(lineStart)
}

func (s *Session) handshakeBlack() error {
	if err := s.expect(lineWhite); err != nil {
		return err
	}
	if err := s.writeLine(lineBlack); err != nil {
		return err
	}
	return s.expect(lineStart)
}

// expect reads one line and requires it to be want.
func (s *Session) expect(want string) error {
	line, err := s.readLine()
	if err != nil {
		return err
	}
	if line != want {
		return &errors.ProtocolError{Err: errors.ErrProtocol, Line: line, Got: line}
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			err = nil
		} else {
			return "", err
		}
	}
	line = strings.TrimSpace(line)
	s.logf(2, "< %s", line)
	return line, nil
}

func (s *Session) writeLine(line string) error {
	s.logf(2, "> %s", line)
	_, err := io.WriteString(s.conn, line+"\n")
	return err
}

// onMove queues local moves for the peer. Peer moves are not echoed.
func (s *Session) onMove(m chess.Move) {
	if m.Remote {
		return
	}
	s.queue(EncodeMove(m))
	if m.IsMate() {
		s.queue(lineEnd)
	}
}

func (s *Session) queue(line string) {
	select {
	case s.outbox <- line:
	case <-s.closed:
	}
}

// Run relays moves until the game ends, the peer disconnects or ctx is
// cancelled. It returns nil once checkmate has been exchanged, or when the
// peer sends END.
func (s *Session) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.closeOnce.Do(func() { close(s.closed) })

	stop := context.AfterFunc(runCtx, func() { s.conn.Close() })
	defer stop()

	writeErr := make(chan error, 1)
	go func() { writeErr <- s.writeLoop(runCtx) }()

	readErr := s.readLoop()
	cancel()
	werr := <-writeErr

	switch {
	case s.endSent.Load() || s.peerEnded.Load():
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case readErr != nil:
		return readErr
	default:
		return werr
	}
}

// writeLoop drains the outbox. After writing END the connection is closed,
// which ends the read loop.
func (s *Session) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-s.outbox:
			if err := s.writeLine(line); err != nil {
				return errors.Wrap(err, "send")
			}
			if line == lineEnd {
				s.endSent.Store(true)
				s.logf(1, "checkmate sent, closing")
				return s.conn.Close()
			}
		}
	}
}

// readLoop applies peer moves until END, EOF or an error.
func (s *Session) readLoop() error {
	for {
		line, err := s.readLine()
		if err != nil {
			if err == io.EOF && !s.game.IsOver() {
				return errors.Wrap(io.ErrUnexpectedEOF, "peer disconnected")
			}
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "receive")
		}
		if line == "" {
			continue
		}

		msg, err := Decode(line)
		if err != nil {
			return err
		}
		switch msg.Kind {
		case EndMessage:
			s.peerEnded.Store(true)
			s.logf(1, "peer ended the game")
			return nil
		case NextMessage:
			continue
		}

		from, to := msg.Source()
		out, err := s.game.ApplyPeerMove(from, to, msg.Promotion)
		if err != nil {
			return err
		}
		if msg.Castle && (out.Move.To != msg.To || out.Move.RookTo != msg.RookTo) {
			return &errors.ProtocolError{
				Err:  errors.ErrProtocol,
				Line: line,
				Got:  fmt.Sprintf("castle laid out as %s", EncodeMove(out.Move)),
			}
		}
	}
}
