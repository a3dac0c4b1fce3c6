package config

import (
	"fmt"
	"net"
	"time"

	"github.com/lgbarn/duel-chess/internal/errors"
)

// DefaultPort is the relay port used when an address names only a host.
const DefaultPort = "5555"

// RelayConfig holds settings for the connection to the opponent.
type RelayConfig struct {
	// Addr is the address to listen on, or the peer to dial.
	Addr string

	// Listen makes this side wait for the peer instead of dialing it.
	Listen bool

	// DialTimeout bounds connecting to the peer and the seat handshake.
	DialTimeout time.Duration
}

// NewRelayConfig creates a RelayConfig with default values.
func NewRelayConfig() *RelayConfig {
	return &RelayConfig{
		Addr:        ":" + DefaultPort,
		DialTimeout: 30 * time.Second,
	}
}

// Validate checks that the relay configuration is usable.
func (r *RelayConfig) Validate() error {
	if r.Addr == "" {
		return fmt.Errorf("relay address is empty: %w", errors.ErrInvalidConfig)
	}
	if _, _, err := net.SplitHostPort(r.Addr); err != nil {
		return fmt.Errorf("relay address %q: %v: %w", r.Addr, err, errors.ErrInvalidConfig)
	}
	if r.DialTimeout < 0 {
		return fmt.Errorf("negative dial timeout (%s): %w", r.DialTimeout, errors.ErrInvalidConfig)
	}
	return nil
}

// NormalizeAddr appends DefaultPort to an address that has no port.
func NormalizeAddr(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, DefaultPort)
}
