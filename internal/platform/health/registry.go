// Package health provides a thread-safe health check registry for the
// dependencies tourctl talks to: the tour store, the remote policy service
// and the event bus. The `tourctl health` command reports its results.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/app/fanout"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

const (
	defaultCheckTimeout = 3 * time.Second
	maxParallelChecks   = 8
)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
type Registry struct {
	mu           sync.RWMutex
	checkers     []ports.HealthChecker
	checkTimeout time.Duration
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds every individual health check.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.checkTimeout = d
	}
}

// New creates an empty health check registry.
func New(opts ...Option) *Registry {
	r := &Registry{checkTimeout: defaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check in parallel and returns results keyed
// by checker name. Nil values indicate healthy components. When two checkers
// share a name the one registered last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	outcomes := fanout.Run(ctx, maxParallelChecks, checkers,
		func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
			return struct{}{}, c.HealthCheck(ctx)
		},
		fanout.WithItemTimeout(r.checkTimeout),
	)

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = outcomes[i].Err
	}
	return results
}
