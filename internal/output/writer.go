// Package output formats boards for the terminal and replay reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/worker"
)

// ReportWriter is the interface for writing replay results.
// Different implementations handle different output formats (text, JSON).
type ReportWriter interface {
	// WriteResult writes the report line for a single game.
	WriteResult(r worker.ProcessResult) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewReportWriter returns the writer selected by cfg.
func NewReportWriter(w io.Writer, cfg *config.Config) ReportWriter {
	if cfg.Replay.JSON {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes one line per game. At verbosity 0 only failed games are
// written; above 1 the final board follows each game.
type TextWriter struct {
	w      io.Writer
	cfg    *config.Config
	total  int
	failed int
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteResult writes a game in text form.
func (tw *TextWriter) WriteResult(r worker.ProcessResult) error {
	tw.total++
	if r.Failed() {
		tw.failed++
	} else if tw.cfg.Verbosity == 0 {
		return nil
	}

	var err error
	switch {
	case r.Error != nil:
		_, err = fmt.Fprintf(tw.w, "%s: FAIL %v\n", r.GameID, r.Error)
	case r.Validation != nil && !r.Validation.Valid:
		_, err = fmt.Fprintf(tw.w, "%s: FAIL %s\n", r.GameID, r.Validation.ErrorMsg)
	default:
		a := r.Analysis
		_, err = fmt.Fprintf(tw.w, "%s: ok %d plies %s\n", r.GameID, a.Plies, a.Result())
	}
	if err != nil {
		return err
	}

	if tw.cfg.Verbosity > 1 && r.Analysis != nil && r.Analysis.FinalBoard != nil {
		_, err = io.WriteString(tw.w, r.Analysis.FinalBoard.String())
	}
	return err
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close writes the summary line.
func (tw *TextWriter) Close() error {
	_, err := fmt.Fprintf(tw.w, "%d games, %d failed\n", tw.total, tw.failed)
	return err
}

// JSONWriter writes replay results as a JSON document.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w     io.Writer
	cfg   *config.Config
	games []*JSONGame
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{
		w:     w,
		cfg:   cfg,
		games: make([]*JSONGame, 0),
	}
}

// WriteResult buffers a game for JSON output.
func (jw *JSONWriter) WriteResult(r worker.ProcessResult) error {
	jw.games = append(jw.games, GameToJSON(r, jw.cfg.Verbosity > 1))
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	out := &JSONOutput{Games: jw.games}
	for _, g := range jw.games {
		if !g.Valid {
			out.Failed++
		}
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(out)

	// Clear buffer after writing
	jw.games = jw.games[:0]

	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
