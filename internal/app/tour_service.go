// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	appctx "github.com/jsamuelsen11/guidedtours/internal/app/context"
	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/platform/telemetry"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time check that TourService implements ports.TourService.
var _ ports.TourService = (*TourService)(nil)

const tracerName = "github.com/jsamuelsen11/guidedtours/internal/app"

// errDeleteNotPermitted is reported when delete denials carry no specific error.
var errDeleteNotPermitted = fmt.Errorf("delete not permitted: %w", domain.ErrForbidden)

// TourService implements ports.TourService. It owns the tour/step lifecycle:
// save with language propagation and a default first step, cascading delete
// guarded by authorization and listeners, and duplicate with step copies.
type TourService struct {
	repo       ports.TourRepository
	authz      ports.Authorizer
	notifier   ports.DeleteNotifier
	cache      ports.TourCache
	translator ports.Translator
	logger     *slog.Logger
	metrics    *telemetry.Metrics
	now        func() time.Time
	tracer     trace.Tracer
}

// TourServiceOption configures optional TourService collaborators.
type TourServiceOption func(*TourService)

// WithClock overrides the time source used for created/modified stamps.
func WithClock(now func() time.Time) TourServiceOption {
	return func(s *TourService) {
		s.now = now
	}
}

// WithMetrics records operation counts and durations.
func WithMetrics(m *telemetry.Metrics) TourServiceOption {
	return func(s *TourService) {
		s.metrics = m
	}
}

// NewTourService wires the lifecycle manager to its ports.
func NewTourService(
	repo ports.TourRepository,
	authz ports.Authorizer,
	notifier ports.DeleteNotifier,
	cache ports.TourCache,
	translator ports.Translator,
	logger *slog.Logger,
	opts ...TourServiceOption,
) *TourService {
	s := &TourService{
		repo:       repo,
		authz:      authz,
		notifier:   notifier,
		cache:      cache,
		translator: translator,
		logger:     logger,
		now:        time.Now,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save creates or updates a tour.
//
// An update binds the submitted fields onto the stored tour; fields the
// caller did not submit keep their stored values.
// The description is stripped of markup when it contains the translation-key
// marker. A copy is written as a new, unpublished record. The tour's language
// is pushed onto its existing steps before the tour row is written and is not
// undone if that write fails. A brand-new tour that is not a copy receives
// one default step in the same transaction as the tour row.
func (s *TourService) Save(rc *appctx.RequestContext, in ports.SaveInput) (_ *tour.Tour, err error) {
	ctx, end := s.begin(rc, "Save", attribute.Int64("tour.id", in.Tour.ID), attribute.Bool("tour.copy", in.Copy))
	defer func() { end(err) }()

	actor := rc.Actor()
	t := in.Tour

	if !in.Copy && !t.IsNew() {
		stored, err := s.loadTour(rc, t.ID)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load tour for update",
				slog.String("operation", "Save"),
				slog.Int64("tour_id", t.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		t = t.BindTo(*stored, in.Fields)
	}

	if t.SanitizeDescription() {
		s.logger.DebugContext(ctx, "stripped markup from tour description", slog.Int64("tour_id", t.ID))
	}

	if in.Copy {
		// The original is loaded for its baseline only; the copy is built
		// from the submitted fields.
		if t.ID > 0 {
			_, _ = s.loadTour(rc, t.ID)
		}
		t.ID = 0
		t.Published = tour.StateUnpublished
	}

	if err := s.applyEditState(rc, &t, in.Copy); err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve published state",
			slog.String("operation", "Save"),
			slog.Int64("tour_id", t.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.SetStepsLanguage(ctx, t.ID, t.Language); err != nil && !errors.Is(err, domain.ErrValidation) {
		s.logger.ErrorContext(ctx, "failed to propagate language to steps",
			slog.String("operation", "Save"),
			slog.Int64("tour_id", t.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	isNew := t.IsNew()
	now := s.now()

	err = s.repo.WithinTx(ctx, func(ctx context.Context, store ports.TourStore) error {
		if !isNew {
			t.PrepareUpdate(now, actor)
			if err := t.Validate(); err != nil {
				return err
			}
			return store.UpdateTour(ctx, &t)
		}

		assigner := NewOrderingAssigner(store)
		if err := t.PrepareCreate(now, actor, func() (int, error) { return assigner.Next(ctx) }); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if err := store.CreateTour(ctx, &t); err != nil {
			return err
		}
		if in.Copy {
			return nil
		}

		step := tour.NewDefaultStep(t.ID, t.Language, now, actor)
		if err := step.Validate(); err != nil {
			return err
		}
		return store.CreateSteps(ctx, []tour.Step{step})
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save tour",
			slog.String("operation", "Save"),
			slog.Int64("tour_id", t.ID),
			slog.Bool("copy", in.Copy),
			slog.Any("error", err),
		)
		return nil, err
	}

	rc.Forget(appctx.TourKey(t.ID))
	s.cache.Invalidate(tour.ComponentScope)

	s.logger.InfoContext(ctx, "saved tour",
		slog.Int64("tour_id", t.ID),
		slog.Bool("created", isNew),
		slog.Bool("copy", in.Copy),
		slog.String("language", t.Language),
	)
	return &t, nil
}

// applyEditState keeps the stored published value when the actor may not
// change it. New tours fall back to unpublished.
func (s *TourService) applyEditState(rc *appctx.RequestContext, t *tour.Tour, isCopy bool) error {
	if isCopy {
		return nil
	}

	scope := tour.ComponentScope
	if !t.IsNew() {
		scope = tour.Scope(t.ID)
	}

	allowed, err := s.authz.Authorise(rc, rc.Actor(), ports.ActionEditState, scope)
	if err != nil {
		return fmt.Errorf("authorising %s on %s: %w", ports.ActionEditState, scope, err)
	}
	if allowed {
		return nil
	}

	if t.IsNew() {
		t.Published = tour.StateUnpublished
		return nil
	}

	stored, err := s.loadTour(rc, t.ID)
	if err != nil {
		return err
	}
	t.Published = stored.Published
	return nil
}

// Delete removes each tour and its steps in input order.
//
// A missing tour, an authorization error, a listener veto or a failed write
// aborts the call; ids already deleted stay deleted. An id the actor may not
// delete is pruned from the result, logged as a warning, and the loop goes on;
// the call then fails with domain.ErrForbidden.
func (s *TourService) Delete(rc *appctx.RequestContext, ids []int64) (_ *ports.DeleteResult, err error) {
	ctx, end := s.begin(rc, "Delete", attribute.Int64Slice("tour.ids", ids))
	defer func() { end(err) }()

	actor := rc.Actor()
	result := &ports.DeleteResult{IDs: slices.Clone(ids)}

	defer func() {
		if len(result.Deleted) > 0 {
			s.cache.Invalidate(tour.ComponentScope)
		}
	}()

	var denyErr error
	for _, id := range ids {
		if id <= 0 {
			return result, fmt.Errorf("tour id %d: %w", id, &domain.ValidationError{
				Fields: map[string]string{"id": "must be positive"},
			})
		}

		t, err := s.loadTour(rc, id)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to load tour for delete",
				slog.String("operation", "Delete"),
				slog.Int64("tour_id", id),
				slog.Any("error", err),
			)
			return result, err
		}

		allowed, err := s.authz.Authorise(ctx, actor, ports.ActionDelete, tour.Scope(id))
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to authorise delete",
				slog.String("operation", "Delete"),
				slog.Int64("tour_id", id),
				slog.Any("error", err),
			)
			return result, fmt.Errorf("authorising delete of tour %d: %w", id, err)
		}
		if !allowed {
			result.IDs = slices.DeleteFunc(result.IDs, func(v int64) bool { return v == id })
			result.Denied = append(result.Denied, id)
			denyErr = errDeleteNotPermitted
			s.logger.WarnContext(ctx, "delete not permitted",
				slog.String("operation", "Delete"),
				slog.Int64("tour_id", id),
				slog.Int64("actor_id", actor.ID),
			)
			continue
		}

		event := ports.DeleteEvent{Context: ports.DeleteContext, Tour: *t, Actor: actor}
		if err := s.notifier.BeforeDelete(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "tour delete vetoed",
				slog.String("operation", "Delete"),
				slog.Int64("tour_id", id),
				slog.Any("error", err),
			)
			return result, err
		}

		var removed int64
		err = s.repo.WithinTx(ctx, func(ctx context.Context, store ports.TourStore) error {
			if err := store.DeleteTour(ctx, id); err != nil {
				return err
			}
			removed, err = store.DeleteStepsByTour(ctx, id)
			return err
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to delete tour",
				slog.String("operation", "Delete"),
				slog.Int64("tour_id", id),
				slog.Any("error", err),
			)
			return result, fmt.Errorf("deleting tour %d: %w", id, err)
		}

		rc.Forget(appctx.TourKey(id))
		result.Deleted = append(result.Deleted, id)
		s.logger.InfoContext(ctx, "deleted tour",
			slog.Int64("tour_id", id),
			slog.Int64("steps_removed", removed),
		)

		s.notifier.AfterDelete(ctx, event)
	}

	if denyErr != nil {
		return result, denyErr
	}
	return result, nil
}

// Duplicate copies each tour as an unpublished draft together with its steps.
//
// The actor must be allowed to create tours at all; this is checked once. The
// source row is locked while the copy is written. Steps are copied after that
// transaction commits, so a failed step insert leaves the new tour in place.
func (s *TourService) Duplicate(rc *appctx.RequestContext, ids []int64) (_ *ports.DuplicateResult, err error) {
	ctx, end := s.begin(rc, "Duplicate", attribute.Int64Slice("tour.ids", ids))
	defer func() { end(err) }()

	actor := rc.Actor()
	result := &ports.DuplicateResult{}

	allowed, err := s.authz.Authorise(ctx, actor, ports.ActionCreate, ports.DuplicateScope)
	if err != nil {
		return result, fmt.Errorf("authorising %s on %s: %w", ports.ActionCreate, ports.DuplicateScope, err)
	}
	if !allowed {
		s.logger.WarnContext(ctx, "duplicate not permitted",
			slog.String("operation", "Duplicate"),
			slog.Int64("actor_id", actor.ID),
		)
		return result, fmt.Errorf("create not permitted: %w", domain.ErrForbidden)
	}

	defer func() {
		if len(result.Copies) > 0 {
			s.cache.Invalidate(tour.ComponentScope)
		}
	}()

	for _, id := range ids {
		pair, err := s.duplicateOne(ctx, actor, id)
		if pair.TourID != 0 {
			result.Copies = append(result.Copies, pair)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to duplicate tour",
				slog.String("operation", "Duplicate"),
				slog.Int64("tour_id", id),
				slog.Int64("copy_id", pair.TourID),
				slog.Any("error", err),
			)
			return result, err
		}
		s.logger.InfoContext(ctx, "duplicated tour",
			slog.Int64("tour_id", id),
			slog.Int64("copy_id", pair.TourID),
			slog.Int("steps", pair.Steps),
		)
	}

	return result, nil
}

func (s *TourService) duplicateOne(ctx context.Context, actor domain.Actor, id int64) (ports.DuplicatePair, error) {
	pair := ports.DuplicatePair{SourceID: id}
	now := s.now()

	var sourceSteps []tour.Step
	err := s.repo.WithinTx(ctx, func(ctx context.Context, store ports.TourStore) error {
		src, err := store.GetTourForUpdate(ctx, id)
		if err != nil {
			return err
		}

		clone := src.CloneAsDraft(now, actor)
		if err := clone.Validate(); err != nil {
			return err
		}
		if err := store.CreateTour(ctx, &clone); err != nil {
			return err
		}
		pair.TourID = clone.ID

		sourceSteps, err = store.ListSteps(ctx, id)
		return err
	})
	if err != nil {
		pair.TourID = 0
		return pair, err
	}

	if len(sourceSteps) == 0 {
		return pair, nil
	}

	copies := make([]tour.Step, len(sourceSteps))
	for i := range sourceSteps {
		copies[i] = sourceSteps[i].CopyTo(pair.TourID, now, actor)
	}
	if err := s.repo.CreateSteps(ctx, copies); err != nil {
		return pair, fmt.Errorf("copying steps of tour %d to %d: %w", id, pair.TourID, err)
	}
	pair.Steps = len(copies)
	return pair, nil
}

// SetStepsLanguage sets the language of every step owned by tourID. An empty
// language means all languages.
func (s *TourService) SetStepsLanguage(ctx context.Context, tourID int64, language string) error {
	if tourID <= 0 {
		return fmt.Errorf("tour id %d: %w", tourID, &domain.ValidationError{
			Fields: map[string]string{"tour_id": "must be positive"},
		})
	}

	language = tour.NormalizeLanguage(language)
	if !tour.IsValidLanguage(language) {
		return &domain.ValidationError{Fields: map[string]string{"language": fmt.Sprintf("invalid: %q", language)}}
	}

	n, err := s.repo.SetStepsLanguage(ctx, tourID, language)
	if err != nil {
		return fmt.Errorf("setting language of steps of tour %d: %w", tourID, err)
	}

	s.logger.DebugContext(ctx, "propagated language to steps",
		slog.Int64("tour_id", tourID),
		slog.String("language", language),
		slog.Int64("steps", n),
	)
	return nil
}

// NextOrdering returns the ordering a new tour would receive.
func (s *TourService) NextOrdering(ctx context.Context) (int, error) {
	return NewOrderingAssigner(s.repo).Next(ctx)
}

// GetTour returns one tour with its title and description translated.
func (s *TourService) GetTour(rc *appctx.RequestContext, id int64) (_ *tour.Tour, err error) {
	ctx, end := s.begin(rc, "GetTour", attribute.Int64("tour.id", id))
	defer func() { end(err) }()

	t, err := s.loadTour(rc, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch tour",
			slog.String("operation", "GetTour"),
			slog.Int64("tour_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	out := *t
	out.TitleTranslation = s.translator.Translate(out.Title)
	out.DescriptionTranslation = s.translator.Translate(out.Description)
	return &out, nil
}

// ListTours returns every tour ordered by ordering, then id. The result is
// served from the tour collection cache when present.
func (s *TourService) ListTours(ctx context.Context) (_ []tour.Tour, err error) {
	ctx, end := s.begin(ctx, "ListTours")
	defer func() { end(err) }()

	if cached, ok := s.cache.Get(tour.ComponentScope); ok {
		return slices.Clone(cached), nil
	}

	tours, err := s.repo.ListTours(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tours",
			slog.String("operation", "ListTours"),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.cache.Set(tour.ComponentScope, slices.Clone(tours))
	return tours, nil
}

// ListSteps returns the steps of a tour ordered by ordering, then id.
func (s *TourService) ListSteps(ctx context.Context, tourID int64) (_ []tour.Step, err error) {
	ctx, end := s.begin(ctx, "ListSteps", attribute.Int64("tour.id", tourID))
	defer func() { end(err) }()

	if _, err := s.repo.GetTour(ctx, tourID); err != nil {
		return nil, err
	}

	steps, err := s.repo.ListSteps(ctx, tourID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list steps",
			slog.String("operation", "ListSteps"),
			slog.Int64("tour_id", tourID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return steps, nil
}

// loadTour reads a tour once per request.
func (s *TourService) loadTour(rc *appctx.RequestContext, id int64) (*tour.Tour, error) {
	t, err := appctx.GetOrFetch(rc, appctx.TourKey(id), func(ctx context.Context) (tour.Tour, error) {
		t, err := s.repo.GetTour(ctx, id)
		if err != nil {
			return tour.Tour{}, err
		}
		return *t, nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// begin opens a span for op and returns a function that ends it and records
// the operation metrics.
func (s *TourService) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "TourService."+op, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		result := "success"
		if err != nil {
			result = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if s.metrics == nil {
			return
		}
		set := metric.WithAttributes(
			telemetry.AttrOperation.String(op),
			telemetry.AttrResult.String(result),
		)
		s.metrics.TourOperationTotal.Add(ctx, 1, set)
		s.metrics.TourOperationDuration.Record(ctx, s.now().Sub(start).Seconds(), set)
	}
}
