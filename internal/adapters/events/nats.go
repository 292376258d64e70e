// Package events publishes tour lifecycle events to NATS. The publisher is
// an after-delete listener; it never vetoes a delete.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/jsamuelsen11/guidedtours/internal/platform/config"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// EventTourDeleted is the type of the event published after a tour is deleted.
const EventTourDeleted = "tour.deleted"

// Compile-time interface checks.
var (
	_ ports.DeleteListener = (*DeletePublisher)(nil)
	_ ports.HealthChecker  = (*ConnHealth)(nil)
	_ Publisher            = (*nats.Conn)(nil)
)

// Publisher sends a message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Envelope is the JSON body of every lifecycle event.
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Context    string    `json:"context"`
	OccurredAt time.Time `json:"occurred_at"`
	TourID     int64     `json:"tour_id"`
	Title      string    `json:"title"`
	ActorID    int64     `json:"actor_id"`
}

// DeletePublisher announces deleted tours on "<prefix>.tour.deleted".
type DeletePublisher struct {
	pub     Publisher
	subject string
	logger  *slog.Logger
	now     func() time.Time
}

// NewDeletePublisher creates a listener publishing through pub.
func NewDeletePublisher(pub Publisher, subjectPrefix string, logger *slog.Logger) *DeletePublisher {
	return &DeletePublisher{
		pub:     pub,
		subject: subjectPrefix + "." + EventTourDeleted,
		logger:  logger,
		now:     time.Now,
	}
}

// Subject returns the subject events are published on.
func (p *DeletePublisher) Subject() string { return p.subject }

// Name implements ports.DeleteListener.
func (p *DeletePublisher) Name() string { return "nats-publisher" }

// BeforeDelete never vetoes.
func (p *DeletePublisher) BeforeDelete(context.Context, ports.DeleteEvent) bool { return true }

// AfterDelete publishes the event. Failures are logged and swallowed.
func (p *DeletePublisher) AfterDelete(ctx context.Context, event ports.DeleteEvent) {
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       EventTourDeleted,
		Context:    event.Context,
		OccurredAt: p.now().UTC(),
		TourID:     event.Tour.ID,
		Title:      event.Tour.Title,
		ActorID:    event.Actor.ID,
	}

	data, err := json.Marshal(env)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode event",
			slog.String("operation", "DeletePublisher.AfterDelete"),
			slog.Int64("tour_id", event.Tour.ID),
			slog.Any("error", err),
		)
		return
	}

	if err := p.pub.Publish(p.subject, data); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("operation", "DeletePublisher.AfterDelete"),
			slog.String("subject", p.subject),
			slog.Int64("tour_id", event.Tour.ID),
			slog.Any("error", err),
		)
		return
	}

	p.logger.DebugContext(ctx, "event published",
		slog.String("subject", p.subject),
		slog.String("event_id", env.ID),
		slog.Int64("tour_id", event.Tour.ID),
	)
}

// Connect dials the configured NATS server.
func Connect(cfg config.EventsConfig, logger *slog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("tourctl"),
		nats.Timeout(cfg.ConnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", slog.Any("error", err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.URL, err)
	}
	return nc, nil
}

// ConnState reports a NATS connection's status. *nats.Conn satisfies it.
type ConnState interface {
	Status() nats.Status
}

// ConnHealth adapts a NATS connection to ports.HealthChecker.
type ConnHealth struct {
	conn ConnState
}

// NewConnHealth wraps conn for health reporting.
func NewConnHealth(conn ConnState) *ConnHealth {
	return &ConnHealth{conn: conn}
}

// Name implements ports.HealthChecker.
func (h *ConnHealth) Name() string { return "nats" }

// HealthCheck fails unless the connection is established.
func (h *ConnHealth) HealthCheck(context.Context) error {
	if status := h.conn.Status(); status != nats.CONNECTED {
		return fmt.Errorf("nats: connection %s", status)
	}
	return nil
}
