package selection

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Sequencer drives the per-candidate scoring calls. It is a strategy so the
// issue order and parallelism can change without touching normalization or
// ranking logic.
type Sequencer interface {
	// Each invokes fn for indices 0..n-1. A non-nil return from fn stops the
	// traversal and propagates.
	Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error
}

// Serial issues one call at a time in input order. This is the default: the
// scoring service is rate-limited and billed per call, and a total issue
// order keeps logs and partial failures easy to reason about.
type Serial struct {
	// Limiter optionally paces calls. Nil means no pacing.
	Limiter *rate.Limiter
}

func (s Serial) Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := fn(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// Bounded issues calls with at most Parallel in flight. Kept behind the same
// interface for when sequential issuance becomes the bottleneck; results lose
// the total temporal ordering Serial gives, but output ordering is unaffected
// because callers index results by candidate position.
type Bounded struct {
	Parallel int
}

func (b Bounded) Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	parallel := b.Parallel
	if parallel < 1 {
		parallel = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
