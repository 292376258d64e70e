// Package appctx provides the explicit per-operation context for lifecycle
// services.
//
// RequestContext extends Go's context.Context with the acting user and an
// in-memory cache for memoized record loading. The acting user is never
// looked up from ambient state; callers build it once per request:
//
//	rc := appctx.New(ctx, actor)
//
//	// Memoized fetch: the second call for the same key is served from cache.
//	t, err := appctx.GetOrFetch(rc, appctx.TourKey(5), fetchTour)
//
//	// Drop a stale entry after writing the record.
//	rc.Forget(appctx.TourKey(5))
package appctx

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// ErrTypeMismatch is returned by GetOrFetch when a cached value's type does
// not match the requested type T. This indicates a programming error where
// the same cache key is used with different types.
var ErrTypeMismatch = errors.New("appctx: cached value type mismatch")

// RequestContext is a request-scoped context wrapper carrying the acting user
// and an in-memory cache. It embeds context.Context and adds memoization via
// GetOrFetch.
//
// A RequestContext is strictly request-scoped: create a new instance for each
// request. It is NOT safe for concurrent use from multiple goroutines.
type RequestContext struct {
	context.Context
	actor domain.Actor
	cache map[string]cacheEntry
}

// cacheEntry stores the result of a GetOrFetch call, including any error.
// Both successful results and errors are cached to prevent redundant calls
// within the same request.
type cacheEntry struct {
	value any
	err   error
}

// New creates a RequestContext wrapping the given context.Context on behalf
// of actor. The returned RequestContext has an empty cache.
func New(ctx context.Context, actor domain.Actor) *RequestContext {
	return &RequestContext{
		Context: ctx,
		actor:   actor,
		cache:   make(map[string]cacheEntry),
	}
}

// Actor returns the user the request runs as.
func (rc *RequestContext) Actor() domain.Actor {
	return rc.actor
}

// Forget drops the cached entry for key so the next GetOrFetch re-fetches.
func (rc *RequestContext) Forget(key string) {
	delete(rc.cache, key)
}

// TourKey is the cache key for a tour record.
func TourKey(id int64) string {
	return "tour:" + strconv.FormatInt(id, 10)
}

// GetOrFetch returns a cached value for the given key, or calls fetchFn to
// fetch and cache it. Both successful results and errors are cached to
// prevent redundant calls within the same request.
//
// The same key must always be used with the same type T. If a cached value
// exists but its type does not match T, GetOrFetch returns ErrTypeMismatch.
func GetOrFetch[T any](rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	if entry, ok := rc.cache[key]; ok {
		if entry.err != nil {
			var zero T
			return zero, entry.err
		}
		v, ok := entry.value.(T)
		if !ok {
			var zero T
			return zero, fmt.Errorf("%w: key %q holds %T, requested %T", ErrTypeMismatch, key, entry.value, zero)
		}
		return v, nil
	}

	val, err := fetchFn(rc.Context)
	rc.cache[key] = cacheEntry{value: val, err: err}
	return val, err
}
