package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
)

// Processor runs a function over items with at most Workers in flight.
// A failing item never stops the others.
type Processor[T any] struct {
	workers int
}

// NewProcessor creates a new processor sized by cfg.MaxConcurrentSyncs
func NewProcessor[T any](cfg *config.SyncConfig) *Processor[T] {
	workers := cfg.MaxConcurrentSyncs
	if workers < 1 {
		workers = 1
	}
	return &Processor[T]{workers: workers}
}

// Workers returns the concurrency limit
func (p *Processor[T]) Workers() int {
	return p.workers
}

// ProcessItems calls processFn for every item and returns one error slot per
// item, in input order. Items not yet started when ctx is cancelled get ctx.Err().
func (p *Processor[T]) ProcessItems(ctx context.Context, items []T, processFn func(ctx context.Context, item T) error) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			errs[i] = processFn(ctx, item)
			return nil
		})
	}

	_ = g.Wait()
	return errs
}
