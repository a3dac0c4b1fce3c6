// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/lgbarn/duel-chess/internal/config"
)

var (
	// Connection options
	addr        = flag.String("addr", getenv("DUELCHESS_ADDR", ":"+config.DefaultPort), "Address to listen on, or the opponent's address")
	listen      = flag.Bool("listen", getenb("DUELCHESS_LISTEN", false), "Wait for the opponent to connect (the listening side plays White)")
	dialTimeout = flag.Duration("timeout", getdur("DUELCHESS_TIMEOUT", 30*time.Second), "How long to keep dialing the opponent")

	// Archive options
	archiveDir = flag.String("archive", getenv("DUELCHESS_ARCHIVE", ""), "Record every move in this archive directory")
	gameID     = flag.String("game", "", "Game id for the archive (default: generated)")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	verbose = flag.Int("v", 1, "Verbosity: 0 quiet, 1 connection events, 2 every line")
	quiet   = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Misc
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the config.
func applyFlags(cfg *config.Config) {
	cfg.Relay.Addr = *addr
	cfg.Relay.Listen = *listen
	cfg.Relay.DialTimeout = *dialTimeout

	cfg.Archive.Dir = *archiveDir
	cfg.Archive.GameID = *gameID

	cfg.Verbosity = *verbose
	if *quiet {
		cfg.Verbosity = 0
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
