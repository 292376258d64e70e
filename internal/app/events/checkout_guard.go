package events

import (
	"context"

	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface check.
var _ ports.DeleteListener = CheckoutGuard{}

// CheckoutGuard refuses to delete a tour that another user has checked out
// for editing.
type CheckoutGuard struct{}

// Name implements ports.DeleteListener.
func (CheckoutGuard) Name() string { return "checkout-guard" }

// BeforeDelete allows the delete when the tour is free or checked out by the
// acting user.
func (CheckoutGuard) BeforeDelete(_ context.Context, event ports.DeleteEvent) bool {
	owner := event.Tour.CheckedOut
	return owner == 0 || owner == event.Actor.ID
}

// AfterDelete implements ports.DeleteListener.
func (CheckoutGuard) AfterDelete(context.Context, ports.DeleteEvent) {}
