package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/duel-chess/internal/errors"
)

// ReplayConfig holds settings for re-playing archived games.
type ReplayConfig struct {
	// Workers is the number of games replayed in parallel.
	Workers int

	// BufferSize is the work queue length.
	BufferSize int

	// StopOnFailure stops at the first game that does not replay.
	StopOnFailure bool

	// Games restricts the replay to these game ids. Empty means all.
	Games []string

	// JSON selects the JSON report instead of text.
	JSON bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		Workers:    runtime.NumCPU(),
		BufferSize: 16,
	}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 1 {
		return fmt.Errorf("workers (%d) < 1: %w", r.Workers, errors.ErrInvalidConfig)
	}
	if r.BufferSize < 1 {
		return fmt.Errorf("buffer size (%d) < 1: %w", r.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
