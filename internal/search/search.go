// Package search sweeps ranges of seeds for maps that pass the winnow
// filters.
package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vhtoolkit/overworld/internal/generator"
	"github.com/vhtoolkit/overworld/internal/grid"
	"github.com/vhtoolkit/overworld/internal/logger"
)

// DefaultWorkers is the number of blocks a range is split into.
const DefaultWorkers = 4

// Source generates the map for one seed.
type Source interface {
	GenerateSeed(seed uint32, d grid.Difficulty, w generator.Winnow) (*generator.Result, error)
}

// Sink receives accepted maps. Put is called from several goroutines.
type Sink interface {
	Put(ctx context.Context, res *generator.Result) error
}

// MultiSink hands each map to every sink in turn and returns the first
// error.
type MultiSink []Sink

func (ms MultiSink) Put(ctx context.Context, res *generator.Result) error {
	var first error
	for _, s := range ms {
		if err := s.Put(ctx, res); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Request is one sweep over [Start, Start+Count).
type Request struct {
	Start      uint32
	Count      uint32
	Difficulty grid.Difficulty
	Winnow     generator.Winnow
	// Save passes accepted maps to the engine's sink.
	Save bool
}

// Report totals a sweep.
type Report struct {
	Processed  int64
	Accepted   int64
	Rejected   int64 // by a winnow filter
	Failed     int64 // any other error
	Saved      int64
	SaveErrors int64
	Elapsed    time.Duration
}

// Engine runs sweeps.
type Engine struct {
	Generator Source
	Workers   int
	Sink      Sink
}

type counters struct {
	processed, accepted, rejected, failed, saved, saveErrors atomic.Int64
}

// Run splits the range into contiguous blocks, one per worker, and
// generates every seed in it. A seed that fails is counted and skipped.
// Cancelling ctx stops the workers between seeds; Run then returns the
// partial report with ctx.Err().
func (e *Engine) Run(ctx context.Context, req Request) (Report, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	started := time.Now()
	var c counters
	var wg sync.WaitGroup

	for k, b := range Partition(req.Start, req.Count, workers) {
		if b.Lo == b.Hi {
			continue
		}
		wg.Add(1)
		go func(k int, b Block) {
			defer wg.Done()
			e.sweep(ctx, k, b, req, &c)
		}(k, b)
	}
	wg.Wait()

	r := Report{
		Processed:  c.processed.Load(),
		Accepted:   c.accepted.Load(),
		Rejected:   c.rejected.Load(),
		Failed:     c.failed.Load(),
		Saved:      c.saved.Load(),
		SaveErrors: c.saveErrors.Load(),
		Elapsed:    time.Since(started),
	}
	logger.Info("Sweep finished",
		"start", req.Start,
		"count", req.Count,
		"winnow", req.Winnow.String(),
		"processed", r.Processed,
		"accepted", r.Accepted,
		"saved", r.Saved,
		"elapsed", r.Elapsed)

	return r, ctx.Err()
}

func (e *Engine) sweep(ctx context.Context, k int, b Block, req Request, c *counters) {
	var accepted int64
	for i := b.Lo; i < b.Hi; i++ {
		if ctx.Err() != nil {
			logger.Warning("Worker cancelled", "worker", k, "at", i)
			return
		}
		c.processed.Add(1)

		res, err := e.Generator.GenerateSeed(uint32(i), req.Difficulty, req.Winnow)
		if err != nil {
			if errors.Is(err, generator.ErrWinnowRejected) {
				c.rejected.Add(1)
			} else {
				c.failed.Add(1)
				logger.Debug("Seed failed", "seed", i, "error", err)
			}
			continue
		}
		c.accepted.Add(1)
		accepted++

		if req.Save && e.Sink != nil {
			if err := e.Sink.Put(ctx, res); err != nil {
				c.saveErrors.Add(1)
				logger.Error("Failed to save map", "code", res.Code, "error", err)
				continue
			}
			c.saved.Add(1)
		}
	}
	logger.Debug("Worker finished", "worker", k, "from", b.Lo, "to", b.Hi, "accepted", accepted)
}

// Block is a half-open seed range [Lo, Hi).
type Block struct {
	Lo, Hi uint64
}

// Partition splits [start, start+count) into n contiguous blocks. Block k
// ends at start + count*(k+1)/n, so the last block ends exactly at the end
// of the range.
func Partition(start, count uint32, n int) []Block {
	blocks := make([]Block, n)
	lo := uint64(start)
	for k := 0; k < n; k++ {
		hi := uint64(start) + uint64(count)*uint64(k+1)/uint64(n)
		blocks[k] = Block{Lo: lo, Hi: hi}
		lo = hi
	}
	return blocks
}
