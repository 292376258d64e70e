package ports

import (
	"context"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// Authorization action names.
const (
	ActionCreate    = "core.create"
	ActionDelete    = "core.delete"
	ActionEditState = "core.edit.state"
)

// DuplicateScope is the blanket scope checked before duplicating tours.
const DuplicateScope = "com_tours"

// Authorizer decides whether an actor may perform an action on a resource
// scope such as "com_guidedtours.tour.5".
type Authorizer interface {
	// Authorise returns true when the action is allowed. A non-nil error
	// means no decision could be made; callers treat it as a failure, not
	// as a denial.
	Authorise(ctx context.Context, actor domain.Actor, action, scope string) (bool, error)
}
