// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/lgbarn/duel-chess/internal/config"
)

var (
	// Input options
	archiveDir = flag.String("archive", getenv("DUELCHESS_ARCHIVE", ""), "Archive directory to replay")
	games      = flag.String("games", "", "Comma-separated game ids to replay (default: all)")

	// Processing options
	workers       = flag.Int("workers", 0, "Number of games replayed in parallel (default: number of CPUs)")
	bufferSize    = flag.Int("buffer", 0, "Work queue length (default: 16)")
	stopOnFailure = flag.Bool("stop", false, "Stop at the first game that fails to replay")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	logFile    = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	verbose    = flag.Int("v", 1, "Verbosity: 0 failures only, 1 every game, 2 final boards")
	quiet      = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Misc
	help = flag.Bool("h", false, "Show help")
)

// applyFlags applies command-line flags to the config.
func applyFlags(cfg *config.Config) {
	cfg.Archive.Dir = *archiveDir
	cfg.Replay.Games = splitIDs(*games)
	if *workers > 0 {
		cfg.Replay.Workers = *workers
	}
	if *bufferSize > 0 {
		cfg.Replay.BufferSize = *bufferSize
	}
	cfg.Replay.StopOnFailure = *stopOnFailure
	cfg.Replay.JSON = *jsonOutput

	cfg.Verbosity = *verbose
	if *quiet {
		cfg.Verbosity = 0
	}
}

// splitIDs splits a comma-separated list, dropping empty entries.
func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
