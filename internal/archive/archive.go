// Package archive keeps a journal of every move played, so finished games
// can be listed and replayed later. It is backed by BadgerDB.
package archive

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/duel-chess/internal/chess"
	"github.com/lgbarn/duel-chess/internal/config"
	"github.com/lgbarn/duel-chess/internal/engine"
	"github.com/lgbarn/duel-chess/internal/errors"
)

// Storage keys
const (
	keyMoves  = "move/"
	separator = "/"
)

// Record is one archived move.
type Record struct {
	GameID    string    `json:"game_id"`
	Ply       int       `json:"ply"`
	Colour    string    `json:"colour"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Piece     string    `json:"piece"`
	Promotion string    `json:"promotion,omitempty"`
	RookFrom  string    `json:"rook_from,omitempty"`
	RookTo    string    `json:"rook_to,omitempty"`
	Class     string    `json:"class"`
	Status    string    `json:"status"`
	Remote    bool      `json:"remote"`
	Time      time.Time `json:"time"`
}

// NewRecord converts a finalized move into a Record.
func NewRecord(gameID string, m chess.Move) Record {
	r := Record{
		GameID: gameID,
		Ply:    m.Ply,
		Colour: m.Colour.String(),
		From:   m.From.String(),
		To:     m.To.String(),
		Piece:  m.Piece.String(),
		Class:  m.Class.String(),
		Status: m.Status.String(),
		Remote: m.Remote,
		Time:   time.Now().UTC(),
	}
	if m.IsPromotion() {
		r.Promotion = m.Promotion.String()
	}
	if m.IsCastle() {
		r.RookFrom = m.RookFrom.String()
		r.RookTo = m.RookTo.String()
	}
	return r
}

// Source returns the squares to feed back into Game.AttemptMove. A castle
// is replayed as the king moving onto its rook.
func (r Record) Source() (from, to string, promotion chess.Kind) {
	from, to = r.From, r.To
	if r.RookFrom != "" {
		to = r.RookFrom
	}
	if r.Promotion != "" {
		promotion, _ = chess.ParseKind(r.Promotion)
	}
	return from, to, promotion
}

// Archive wraps BadgerDB for move storage.
type Archive struct {
	db *badger.DB
}

// Open opens the archive described by cfg.
func Open(cfg config.ArchiveConfig) (*Archive, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %q", cfg.Dir)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// NewGameID returns a fresh id: the UTC start time plus a random suffix.
func NewGameID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return time.Now().UTC().Format("20060102T150405") + "-" + hex.EncodeToString(b[:])
}

func checkGameID(gameID string) error {
	if gameID == "" || strings.Contains(gameID, separator) {
		return errors.Wrapf(errors.ErrInvalidGameID, "%q", gameID)
	}
	return nil
}

func gamePrefix(gameID string) []byte {
	return []byte(keyMoves + gameID + separator)
}

func moveKey(gameID string, ply int) []byte {
	return []byte(fmt.Sprintf("%s%s%s%06d", keyMoves, gameID, separator, ply))
}

// Record stores one finalized move of the given game.
func (a *Archive) Record(gameID string, m chess.Move) error {
	if err := checkGameID(gameID); err != nil {
		return err
	}
	return a.Put(NewRecord(gameID, m))
}

// Put stores a record under its game id and ply.
func (a *Archive) Put(r Record) error {
	if err := checkGameID(r.GameID); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(moveKey(r.GameID, r.Ply), data)
	})
}

// Moves returns the moves of a game in ply order.
func (a *Archive) Moves(gameID string) ([]Record, error) {
	if err := checkGameID(gameID); err != nil {
		return nil, err
	}

	var records []Record
	err := a.db.View(func(txn *badger.Txn) error {
		prefix := gamePrefix(gameID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Record
				if err := json.Unmarshal(val, &r); err != nil {
					return errors.Wrapf(err, "decode %s", it.Item().Key())
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "game %q", gameID)
	}
	return records, nil
}

// Games returns the ids of every archived game, sorted.
func (a *Archive) Games() ([]string, error) {
	var ids []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyMoves)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), keyMoves)
			if id, _, ok := strings.Cut(rest, separator); ok {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Delete removes every move of a game.
func (a *Archive) Delete(gameID string) error {
	if err := checkGameID(gameID); err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		prefix := gamePrefix(gameID)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Recorder returns a move listener that archives every move of gameID.
// Storage errors are written to logFile.
func (a *Archive) Recorder(gameID string, logFile io.Writer) engine.MoveListener {
	return func(m chess.Move) {
		if err := a.Record(gameID, m); err != nil && logFile != nil {
			fmt.Fprintf(logFile, "archive: ply %d of %s: %v\n", m.Ply, gameID, err)
		}
	}
}
