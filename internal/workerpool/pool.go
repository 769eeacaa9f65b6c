// Package workerpool offloads blocking git invocations onto a bounded set of
// goroutines, so hosts that fan out across repositories do not start an
// unbounded number of git processes at once.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultSize is the number of concurrent tasks used when size <= 0
const DefaultSize = 4

// Pool bounds how many tasks run at the same time.
// A Pool is safe for concurrent use.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// Result is the outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// New creates a pool that runs at most size tasks concurrently.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	return &Pool{
		size: size,
		sem:  semaphore.NewWeighted(int64(size)),
	}
}

// Size returns the concurrency limit.
func (p *Pool) Size() int {
	return p.size
}

// Submit runs fn on its own goroutine once a slot is free and delivers the
// outcome on the returned channel, which receives exactly one value.
// If ctx is done before a slot frees up, fn is not called and ctx.Err() is delivered.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		if err := p.sem.Acquire(ctx, 1); err != nil {
			ch <- Result[T]{Err: err}
			return
		}
		defer p.sem.Release(1)

		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Map calls fn for every item with at most p.Size() calls in flight across
// the whole pool and returns the values in input order. The first error
// cancels the context passed to the remaining calls and is returned.
func Map[In, Out any](ctx context.Context, p *Pool, items []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)
	for i, item := range items {
		g.Go(func() error {
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer p.sem.Release(1)

			v, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MapAll is like Map but does not stop on failure: every item runs and its
// error, if any, is reported in the matching Result.
func MapAll[In, Out any](ctx context.Context, p *Pool, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	out := make([]Result[Out], len(items))

	var g errgroup.Group
	g.SetLimit(p.size)
	for i, item := range items {
		g.Go(func() error {
			if err := p.sem.Acquire(ctx, 1); err != nil {
				out[i] = Result[Out]{Err: err}
				return nil
			}
			defer p.sem.Release(1)

			v, err := fn(ctx, item)
			out[i] = Result[Out]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
