package ports

import (
	"context"

	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
)

// OrderingSource reports the highest ordering value in the tour collection.
type OrderingSource interface {
	// MaxOrdering returns the maximum ordering across all tours, or 0 when
	// the collection is empty.
	MaxOrdering(ctx context.Context) (int, error)
}

// TourStore defines the persistence port for the Tours and Steps collections.
// Implemented by the persistence adapters; called by the application layer.
// All lookups by id return domain.ErrNotFound when the row does not exist.
type TourStore interface {
	OrderingSource

	// GetTour returns a single tour by ID.
	GetTour(ctx context.Context, id int64) (*tour.Tour, error)

	// GetTourForUpdate returns a single tour by ID and holds a row lock on it
	// until the surrounding transaction ends. Outside a transaction it
	// behaves like GetTour.
	GetTourForUpdate(ctx context.Context, id int64) (*tour.Tour, error)

	// ListTours returns every tour ordered by ordering, then id.
	ListTours(ctx context.Context) ([]tour.Tour, error)

	// CreateTour inserts t and sets its ID.
	CreateTour(ctx context.Context, t *tour.Tour) error

	// UpdateTour writes the mutable fields of an existing tour. Creation
	// metadata is never overwritten.
	UpdateTour(ctx context.Context, t *tour.Tour) error

	// DeleteTour removes a single tour row. Steps are not touched.
	DeleteTour(ctx context.Context, id int64) error

	// ListSteps returns the steps owned by tourID ordered by ordering, then id.
	ListSteps(ctx context.Context, tourID int64) ([]tour.Step, error)

	// CreateSteps inserts all steps in one statement and sets their IDs.
	CreateSteps(ctx context.Context, steps []tour.Step) error

	// DeleteStepsByTour removes every step owned by tourID and returns the
	// number of rows removed.
	DeleteStepsByTour(ctx context.Context, tourID int64) (int64, error)

	// SetStepsLanguage sets the language of every step owned by tourID in a
	// single bulk update and returns the number of rows matched.
	SetStepsLanguage(ctx context.Context, tourID int64, language string) (int64, error)
}

// TourRepository is a TourStore that can run a unit of work atomically.
type TourRepository interface {
	TourStore

	// WithinTx runs fn inside a transaction. The store handed to fn is bound
	// to the transaction; fn must not use the outer repository. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, store TourStore) error) error
}
