package acl

import (
	"context"
	"fmt"
)

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry]. It matches the service name used by the
// underlying [httpclient.Client] for tracing and metrics.
func (c *PolicyClient) Name() string {
	return "policy-api"
}

// HealthCheck reports the policy service's availability based on the
// circuit breaker state. No network call is made.
//
// State mapping:
//   - "closed": operating normally; returns nil.
//   - "half-open": probing recovery; returns a degraded error.
//   - "open": the breaker is rejecting requests; returns a failing error.
func (c *PolicyClient) HealthCheck(_ context.Context) error {
	state := c.req.CircuitBreakerState()
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("policy-api: degraded (circuit breaker half-open)")
	case "open":
		return fmt.Errorf("policy-api: failing (circuit breaker open)")
	default:
		return fmt.Errorf("policy-api: unknown circuit breaker state %q", state)
	}
}
