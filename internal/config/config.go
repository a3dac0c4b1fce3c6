// Package config provides configuration for the duel-chess commands.
package config

import (
	"io"
	"os"

	"github.com/lgbarn/duel-chess/internal/chess"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=connection events, 2=running commentary

	// Sub-configurations
	Relay   RelayConfig
	Archive ArchiveConfig
	Replay  ReplayConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Relay:      *NewRelayConfig(),
		Archive:    *NewArchiveConfig(),
		Replay:     *NewReplayConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Seat returns the colour played locally. The listening side is White.
func (c *Config) Seat() chess.Colour {
	if c.Relay.Listen {
		return chess.White
	}
	return chess.Black
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Relay.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	return c.Replay.Validate()
}
