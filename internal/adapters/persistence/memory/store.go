// Package memory provides an in-process TourRepository. Transactions run
// against a cloned snapshot that replaces the live state on commit, so a
// failing unit of work leaves no trace.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TourRepository = (*Store)(nil)
	_ ports.TourStore      = (*txStore)(nil)
)

// Operation names accepted by InjectFault.
const (
	OpGetTour           = "GetTour"
	OpListTours         = "ListTours"
	OpMaxOrdering       = "MaxOrdering"
	OpCreateTour        = "CreateTour"
	OpUpdateTour        = "UpdateTour"
	OpDeleteTour        = "DeleteTour"
	OpListSteps         = "ListSteps"
	OpCreateSteps       = "CreateSteps"
	OpDeleteStepsByTour = "DeleteStepsByTour"
	OpSetStepsLanguage  = "SetStepsLanguage"
)

type state struct {
	tours      map[int64]tour.Tour
	steps      map[int64]tour.Step
	nextTourID int64
	nextStepID int64
}

func newState() *state {
	return &state{
		tours:      make(map[int64]tour.Tour),
		steps:      make(map[int64]tour.Step),
		nextTourID: 1,
		nextStepID: 1,
	}
}

func (s *state) clone() *state {
	return &state{
		tours:      maps.Clone(s.tours),
		steps:      maps.Clone(s.steps),
		nextTourID: s.nextTourID,
		nextStepID: s.nextStepID,
	}
}

// Store is a concurrency-safe in-memory TourRepository.
type Store struct {
	mu     sync.Mutex
	state  *state
	faults map[string]error
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState(), faults: make(map[string]error)}
}

// InjectFault makes every later call of op fail with err until cleared with a
// nil err. Used by tests to exercise persistence failures.
func (s *Store) InjectFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

// Name identifies the store in health reports.
func (s *Store) Name() string { return "memory-store" }

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

// WithinTx runs fn against a snapshot of the store. The snapshot becomes the
// live state only when fn returns nil. Transactions are serialized, and fn
// must use the store it is handed rather than s.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store ports.TourStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{state: s.state.clone(), faults: s.faults}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

func (s *Store) view() *txStore {
	return &txStore{state: s.state, faults: s.faults}
}

func (s *Store) MaxOrdering(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().MaxOrdering(ctx)
}

func (s *Store) GetTour(ctx context.Context, id int64) (*tour.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().GetTour(ctx, id)
}

func (s *Store) GetTourForUpdate(ctx context.Context, id int64) (*tour.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().GetTourForUpdate(ctx, id)
}

func (s *Store) ListTours(ctx context.Context) ([]tour.Tour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListTours(ctx)
}

func (s *Store) CreateTour(ctx context.Context, t *tour.Tour) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateTour(ctx, t)
}

func (s *Store) UpdateTour(ctx context.Context, t *tour.Tour) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().UpdateTour(ctx, t)
}

func (s *Store) DeleteTour(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteTour(ctx, id)
}

func (s *Store) ListSteps(ctx context.Context, tourID int64) ([]tour.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListSteps(ctx, tourID)
}

func (s *Store) CreateSteps(ctx context.Context, steps []tour.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateSteps(ctx, steps)
}

func (s *Store) DeleteStepsByTour(ctx context.Context, tourID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteStepsByTour(ctx, tourID)
}

func (s *Store) SetStepsLanguage(ctx context.Context, tourID int64, language string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().SetStepsLanguage(ctx, tourID, language)
}

// txStore operates on one state without locking. The owner holds the lock.
type txStore struct {
	state  *state
	faults map[string]error
}

func (t *txStore) fault(op string) error {
	if err, ok := t.faults[op]; ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (t *txStore) MaxOrdering(_ context.Context) (int, error) {
	if err := t.fault(OpMaxOrdering); err != nil {
		return 0, err
	}
	highest := 0
	for _, tr := range t.state.tours {
		highest = max(highest, tr.Ordering)
	}
	return highest, nil
}

func (t *txStore) GetTour(_ context.Context, id int64) (*tour.Tour, error) {
	if err := t.fault(OpGetTour); err != nil {
		return nil, err
	}
	tr, ok := t.state.tours[id]
	if !ok {
		return nil, fmt.Errorf("tour %d: %w", id, domain.ErrNotFound)
	}
	return &tr, nil
}

// GetTourForUpdate needs no extra locking: transactions are serialized.
func (t *txStore) GetTourForUpdate(ctx context.Context, id int64) (*tour.Tour, error) {
	return t.GetTour(ctx, id)
}

func (t *txStore) ListTours(_ context.Context) ([]tour.Tour, error) {
	if err := t.fault(OpListTours); err != nil {
		return nil, err
	}
	out := slices.Collect(maps.Values(t.state.tours))
	slices.SortFunc(out, func(a, b tour.Tour) int {
		return cmp.Or(cmp.Compare(a.Ordering, b.Ordering), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (t *txStore) CreateTour(_ context.Context, tr *tour.Tour) error {
	if err := t.fault(OpCreateTour); err != nil {
		return err
	}
	tr.ID = t.state.nextTourID
	t.state.nextTourID++
	t.state.tours[tr.ID] = *tr
	return nil
}

func (t *txStore) UpdateTour(_ context.Context, tr *tour.Tour) error {
	if err := t.fault(OpUpdateTour); err != nil {
		return err
	}
	stored, ok := t.state.tours[tr.ID]
	if !ok {
		return fmt.Errorf("tour %d: %w", tr.ID, domain.ErrNotFound)
	}
	updated := *tr
	updated.CreatedAt = stored.CreatedAt
	updated.CreatedBy = stored.CreatedBy
	updated.CheckedOut = stored.CheckedOut
	updated.CheckedOutTime = stored.CheckedOutTime
	t.state.tours[tr.ID] = updated
	*tr = updated
	return nil
}

func (t *txStore) DeleteTour(_ context.Context, id int64) error {
	if err := t.fault(OpDeleteTour); err != nil {
		return err
	}
	if _, ok := t.state.tours[id]; !ok {
		return fmt.Errorf("tour %d: %w", id, domain.ErrNotFound)
	}
	delete(t.state.tours, id)
	return nil
}

func (t *txStore) ListSteps(_ context.Context, tourID int64) ([]tour.Step, error) {
	if err := t.fault(OpListSteps); err != nil {
		return nil, err
	}
	var out []tour.Step
	for _, st := range t.state.steps {
		if st.TourID == tourID {
			out = append(out, st)
		}
	}
	slices.SortFunc(out, func(a, b tour.Step) int {
		return cmp.Or(cmp.Compare(a.Ordering, b.Ordering), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (t *txStore) CreateSteps(_ context.Context, steps []tour.Step) error {
	if err := t.fault(OpCreateSteps); err != nil {
		return err
	}
	for i := range steps {
		steps[i].ID = t.state.nextStepID
		t.state.nextStepID++
		t.state.steps[steps[i].ID] = steps[i]
	}
	return nil
}

func (t *txStore) DeleteStepsByTour(_ context.Context, tourID int64) (int64, error) {
	if err := t.fault(OpDeleteStepsByTour); err != nil {
		return 0, err
	}
	var n int64
	for id, st := range t.state.steps {
		if st.TourID == tourID {
			delete(t.state.steps, id)
			n++
		}
	}
	return n, nil
}

func (t *txStore) SetStepsLanguage(_ context.Context, tourID int64, language string) (int64, error) {
	if err := t.fault(OpSetStepsLanguage); err != nil {
		return 0, err
	}
	var n int64
	for id, st := range t.state.steps {
		if st.TourID == tourID {
			st.Language = language
			t.state.steps[id] = st
			n++
		}
	}
	return n, nil
}
