// Package events dispatches tour delete notifications to an ordered list of
// listeners. Any listener may veto a delete before it happens; after-delete
// notifications are best effort.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface check.
var _ ports.DeleteNotifier = (*Dispatcher)(nil)

// Dispatcher implements [ports.DeleteNotifier]. Listeners are consulted in
// registration order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []ports.DeleteListener
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher with the given listeners.
func NewDispatcher(logger *slog.Logger, listeners ...ports.DeleteListener) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		listeners: listeners,
		logger:    logger,
	}
}

// Register appends a listener. Safe for concurrent use.
func (d *Dispatcher) Register(l ports.DeleteListener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// BeforeDelete consults listeners in order and stops at the first refusal.
func (d *Dispatcher) BeforeDelete(ctx context.Context, event ports.DeleteEvent) error {
	for _, l := range d.snapshot() {
		if l.BeforeDelete(ctx, event) {
			continue
		}
		d.logger.WarnContext(ctx, "delete vetoed by listener",
			slog.String("operation", "Dispatcher.BeforeDelete"),
			slog.String("listener", l.Name()),
			slog.Int64("tour_id", event.Tour.ID),
		)
		return fmt.Errorf("tour %d: %s: %w", event.Tour.ID, l.Name(), domain.ErrVetoed)
	}
	return nil
}

// AfterDelete notifies every listener. A panicking listener is logged and
// does not stop the others.
func (d *Dispatcher) AfterDelete(ctx context.Context, event ports.DeleteEvent) {
	for _, l := range d.snapshot() {
		d.notifyAfter(ctx, l, event)
	}
}

func (d *Dispatcher) notifyAfter(ctx context.Context, l ports.DeleteListener, event ports.DeleteEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "after-delete listener panicked",
				slog.String("operation", "Dispatcher.AfterDelete"),
				slog.String("listener", l.Name()),
				slog.Int64("tour_id", event.Tour.ID),
				slog.Any("panic", r),
			)
		}
	}()
	l.AfterDelete(ctx, event)
}

func (d *Dispatcher) snapshot() []ports.DeleteListener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]ports.DeleteListener, len(d.listeners))
	copy(out, d.listeners)
	return out
}
