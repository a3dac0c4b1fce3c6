// Package worker provides a worker pool that replays archived games in
// parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/duel-chess/internal/archive"
	"github.com/lgbarn/duel-chess/internal/processing"
)

// WorkItem names one archived game to replay.
type WorkItem struct {
	GameID string
	Index  int // Position in the submitted order
}

// ProcessResult is the outcome of replaying one game.
type ProcessResult struct {
	GameID     string
	Index      int
	Analysis   *processing.GameAnalysis
	Validation *processing.ValidationResult
	Error      error // Set when the game could not be loaded
}

// Failed reports whether the game could not be loaded or did not validate.
func (r ProcessResult) Failed() bool {
	return r.Error != nil || (r.Validation != nil && !r.Validation.Valid)
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// RecordSource loads the moves of an archived game.
type RecordSource interface {
	Moves(gameID string) ([]archive.Record, error)
}

// Replay returns a ProcessFunc that loads each game from src, validates it
// and analyzes it.
func Replay(src RecordSource) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{GameID: item.GameID, Index: item.Index}
		records, err := src.Moves(item.GameID)
		if err != nil {
			result.Error = err
			return result
		}
		result.Validation = processing.ValidateGame(records)
		_, result.Analysis = processing.AnalyzeGame(records)
		return result
	}
}

// Pool manages a pool of workers for parallel replay.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. processFunc is required; without options
// the pool runs one worker with a buffer of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Cancelling ctx has the same effect
// as Stop.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.workChan {
		if ctx.Err() != nil {
			p.Stop()
		}
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopFlag.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopFlag.Load()
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker has returned.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ReplayAll replays every game in ids through a pool and returns the
// results in submission order. With stopOnFailure set, the pool stops after
// the first failed game and games not yet started are left out.
func ReplayAll(ctx context.Context, src RecordSource, ids []string, stopOnFailure bool, opts ...PoolOption) []ProcessResult {
	pool := NewPool(Replay(src), opts...)
	pool.Start(ctx)

	go func() {
		for i, id := range ids {
			if pool.IsStopped() {
				break
			}
			pool.Submit(WorkItem{GameID: id, Index: i})
		}
		pool.Close()
	}()

	slots := make([]*ProcessResult, len(ids))
	for result := range pool.Results() {
		result := result
		slots[result.Index] = &result
		if stopOnFailure && result.Failed() {
			pool.Stop()
		}
	}

	results := make([]ProcessResult, 0, len(ids))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}
