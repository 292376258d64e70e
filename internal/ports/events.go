package ports

import (
	"context"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
)

// DeleteContext names the record type in delete notifications.
const DeleteContext = "com_guidedtours.tour"

// DeleteEvent describes a tour that is about to be, or has been, deleted.
type DeleteEvent struct {
	Context string
	Tour    tour.Tour
	Actor   domain.Actor
}

// DeleteListener is notified around tour deletion.
type DeleteListener interface {
	// Name identifies the listener in logs and veto errors.
	Name() string

	// BeforeDelete returns false to refuse the delete.
	BeforeDelete(ctx context.Context, event DeleteEvent) bool

	// AfterDelete runs once the tour and its steps are gone. It is best
	// effort; failures are the listener's concern.
	AfterDelete(ctx context.Context, event DeleteEvent)
}

// DeleteNotifier fans delete notifications out to listeners in order.
type DeleteNotifier interface {
	// BeforeDelete returns an error wrapping domain.ErrVetoed when any
	// listener refuses. Listeners after the refusing one are not consulted.
	BeforeDelete(ctx context.Context, event DeleteEvent) error

	// AfterDelete notifies every listener and ignores their outcome.
	AfterDelete(ctx context.Context, event DeleteEvent)
}
