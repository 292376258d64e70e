// Package fanout runs a function across a slice of items with bounded
// concurrency, preserving input order in results. It backs the health checks,
// where every dependency is checked in parallel under its own deadline.
package fanout

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value   R
	Err     error
	Elapsed time.Duration
}

// Option tunes a Run call.
type Option func(*options)

type options struct {
	itemTimeout time.Duration
}

// WithItemTimeout bounds each fn call with its own deadline derived from the
// parent context. Zero or negative disables the per-item deadline.
func WithItemTimeout(d time.Duration) Option {
	return func(o *options) {
		o.itemTimeout = d
	}
}

// Run executes fn for each item using at most maxWorkers concurrent
// goroutines. Results are returned in the same order as items.
//
// An item still waiting for a worker slot when ctx is canceled records
// ctx.Err() without calling fn. A panic inside fn is recovered and reported
// as that item's error. Values of maxWorkers below 1 are treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error), opts ...Option) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			results[idx] = call(ctx, o, it, fn)
		}(i, item)
	}

	wg.Wait()
	return results
}

func call[T, R any](ctx context.Context, o options, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	if o.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.itemTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result[R]{Err: fmt.Errorf("panic: %v", r)}
		}
		res.Elapsed = time.Since(start)
	}()

	val, err := fn(ctx, item)
	return Result[R]{Value: val, Err: err}
}
