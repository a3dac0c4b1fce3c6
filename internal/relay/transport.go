package relay

import (
	"context"
	"net"

	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// Listen opens the listening socket for the side that plays White.
func Listen(ctx context.Context, cfg config.RelayConfig) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", cfg.Addr)
	}
	return ln, nil
}

// Accept waits for the opponent to connect. The listener is closed before
// returning, so a game has exactly one peer.
func Accept(ctx context.Context, ln net.Listener) (net.Conn, error) {
	defer ln.Close()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, "accept")
	}
	return conn, nil
}

// Dial connects to a listening opponent within cfg.DialTimeout.
func Dial(ctx context.Context, cfg config.RelayConfig) (net.Conn, error) {
	addr := config.NormalizeAddr(cfg.Addr)
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return conn, nil
}
