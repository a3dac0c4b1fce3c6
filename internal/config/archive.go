package config

import (
	"fmt"

	"github.com/lgbarn/duel-chess/internal/errors"
)

// ArchiveConfig holds settings for the move archive.
type ArchiveConfig struct {
	// Dir is the archive directory. Empty disables archiving.
	Dir string

	// InMemory keeps the archive in memory only.
	InMemory bool

	// GameID names the game being recorded. Empty means generate one.
	GameID string
}

// NewArchiveConfig creates an ArchiveConfig with default values.
// Archiving is off by default.
func NewArchiveConfig() *ArchiveConfig {
	return &ArchiveConfig{}
}

// Enabled reports whether moves should be archived.
func (a *ArchiveConfig) Enabled() bool {
	return a.Dir != "" || a.InMemory
}

// Validate checks that the archive configuration is consistent.
func (a *ArchiveConfig) Validate() error {
	if a.InMemory && a.Dir != "" {
		return fmt.Errorf("archive directory %q set for an in-memory archive: %w", a.Dir, errors.ErrInvalidConfig)
	}
	return nil
}
