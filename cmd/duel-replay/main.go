// duel-replay re-plays archived duel-chess games through the rules engine
// and reports every game whose recorded moves are not legal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/duel-chess/internal/archive"
	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/errors"
	"github.com/lgbarn/duel-chess/internal/output"
	"github.com/lgbarn/duel-chess/internal/worker"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)
	setupOutputFile(cfg)

	if !cfg.Archive.Enabled() {
		fmt.Fprintf(os.Stderr, "Error: -archive is required\n")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := archive.Open(cfg.Archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	failed, err := replay(ctx, cfg, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		a.Close()
		os.Exit(1)
	}
}

// gameLister lists archived games; *archive.Archive satisfies it.
type gameLister interface {
	worker.RecordSource
	Games() ([]string, error)
}

// replay replays the configured games, writes the report and returns the
// number of games that failed.
func replay(ctx context.Context, cfg *config.Config, src gameLister) (int, error) {
	ids := cfg.Replay.Games
	if len(ids) == 0 {
		var err error
		if ids, err = src.Games(); err != nil {
			return 0, errors.Wrap(err, "list games")
		}
	}
	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "replaying %d games with %d workers\n", len(ids), cfg.Replay.Workers)
	}

	results := worker.ReplayAll(ctx, src, ids, cfg.Replay.StopOnFailure,
		worker.WithWorkers(cfg.Replay.Workers),
		worker.WithBufferSize(cfg.Replay.BufferSize),
	)

	w := output.NewReportWriter(cfg.OutputFile, cfg)
	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		if err := w.WriteResult(r); err != nil {
			return failed, err
		}
	}
	if err := w.Close(); err != nil {
		return failed, err
	}
	if ctx.Err() != nil {
		return failed, ctx.Err()
	}
	return failed, nil
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

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: duel-replay -archive DIR [options]\n\n")
	fmt.Fprintf(os.Stderr, "Re-play archived duel-chess games and report illegal ones.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
