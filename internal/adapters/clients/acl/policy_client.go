package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
	"github.com/jsamuelsen11/guidedtours/internal/platform/httpclient"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// authorizePath is the downstream decision endpoint.
const authorizePath = "/api/v1/authorize"

// Compile-time interface checks.
var (
	_ ports.Authorizer    = (*PolicyClient)(nil)
	_ ports.HealthChecker = (*PolicyClient)(nil)
)

// PolicyClient is the outbound adapter for the remote policy service. It
// implements [ports.Authorizer] by asking the service for a decision on
// every check.
//
// The underlying [httpclient.Client] provides circuit breaking, rate
// limiting, retry with exponential backoff, and OpenTelemetry tracing.
// HTTP errors are mapped to domain errors by [TranslateHTTPError] and are
// returned as errors, never as denials.
type PolicyClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewPolicyClient creates a PolicyClient that sends requests through the
// given [httpclient.Client], whose BaseURL points at the policy service root.
func NewPolicyClient(client *httpclient.Client, logger *slog.Logger) *PolicyClient {
	return &PolicyClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// Authorise asks the policy service whether actor may perform action on
// scope. Guests are denied without a round trip.
func (c *PolicyClient) Authorise(ctx context.Context, actor domain.Actor, action, scope string) (bool, error) {
	if actor.IsGuest() {
		return false, nil
	}

	var resp authorizeResponseDTO
	if err := c.req.Do(ctx, http.MethodPost, authorizePath, http.StatusOK, toAuthorizeRequest(actor, action, scope), &resp); err != nil {
		return false, fmt.Errorf("authorising %s on %s: %w", action, scope, err)
	}

	if !resp.Allowed {
		c.logger.DebugContext(ctx, "policy denied",
			slog.Int64("actor_id", actor.ID),
			slog.String("action", action),
			slog.String("scope", scope),
			slog.String("reason", resp.Reason),
		)
	}
	return resp.Allowed, nil
}
