package ports

import (
	"context"

	appctx "github.com/jsamuelsen11/guidedtours/internal/app/context"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
)

// TourService defines the service port for the tour aggregate lifecycle.
// Implemented by the application layer; called by inbound adapters (the CLI).
// Every mutating operation takes the request context carrying the acting user.
type TourService interface {
	// Save creates or updates a tour. A brand-new tour (not a copy) gets one
	// default step. Returns domain.ErrValidation if the tour fails validation
	// and domain.ErrNotFound if an updated tour does not exist.
	Save(rc *appctx.RequestContext, in SaveInput) (*tour.Tour, error)

	// Delete removes each tour and its steps in input order. Fatal errors
	// abort the remaining ids; ids the actor may not delete are pruned and
	// the call fails with domain.ErrForbidden once the loop finishes.
	Delete(rc *appctx.RequestContext, ids []int64) (*DeleteResult, error)

	// Duplicate copies each tour, unpublished, together with its steps.
	// Returns domain.ErrForbidden if the actor may not create tours.
	Duplicate(rc *appctx.RequestContext, ids []int64) (*DuplicateResult, error)

	// SetStepsLanguage sets the language of every step owned by tourID.
	// Returns domain.ErrValidation when tourID is not positive.
	SetStepsLanguage(ctx context.Context, tourID int64, language string) error

	// NextOrdering returns the ordering a new tour would receive.
	NextOrdering(ctx context.Context) (int, error)

	// GetTour returns a single tour with its title and description translated.
	GetTour(rc *appctx.RequestContext, id int64) (*tour.Tour, error)

	// ListTours returns every tour ordered by ordering, then id.
	ListTours(ctx context.Context) ([]tour.Tour, error)

	// ListSteps returns the steps of a tour ordered by ordering, then id.
	ListSteps(ctx context.Context, tourID int64) ([]tour.Step, error)
}

// SaveInput carries the tour fields to save. When Copy is set, Tour.ID names
// the record being copied and a new record is written.
//
// On update only the Fields listed are bound onto the stored tour; nil means
// every field was submitted. Fields is ignored on create and copy.
type SaveInput struct {
	Tour   tour.Tour
	Fields []tour.Field
	Copy   bool
}

// DeleteResult mirrors the caller's id collection after a delete call.
type DeleteResult struct {
	// IDs is the input collection with the ids the actor may not delete pruned.
	IDs     []int64
	Deleted []int64
	Denied  []int64
}

// DuplicatePair links a source tour to the copy made of it.
type DuplicatePair struct {
	SourceID int64
	TourID   int64
	Steps    int
}

// DuplicateResult lists the copies written, including those made before a
// failure aborted the call.
type DuplicateResult struct {
	Copies []DuplicatePair
}
