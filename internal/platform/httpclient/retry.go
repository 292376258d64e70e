package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/guidedtours/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// outcome is the result of one attempt against the downstream service.
type outcome struct {
	resp  *http.Response
	err   error
	retry bool
	// wait is the delay the server asked for through Retry-After, if any.
	wait time.Duration
}

// doWithRetry sends req until it gets a final answer or the attempts run
// out. The body is buffered once and replayed on every attempt. The last
// response is written to resp, body open, even when err is set; the caller
// closes it.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retryCfg.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retryCfg.maxAttempts)
	}

	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return fmt.Errorf("reading request body: %w", err)
		}
		body = b
	}

	last := c.retryCfg.maxAttempts - 1
	for attempt := 0; ; attempt++ {
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		out := c.attempt(req)
		if !out.retry || attempt == last {
			*resp = out.resp
			return out.err
		}
		if out.resp != nil {
			_, _ = io.Copy(io.Discard, out.resp.Body)
			_ = out.resp.Body.Close()
		}

		delay := c.retryCfg.delay(attempt+1, out.wait)
		logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
			slog.String("operation", "httpclient.Do"),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("peer_service", c.serviceName),
			slog.Int("attempt", attempt+2),
			slog.Int("max_attempts", c.retryCfg.maxAttempts),
			slog.Duration("backoff", delay),
			slog.Any("error", out.err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// attempt performs a single round trip and classifies the result.
func (c *Client) attempt(req *http.Request) outcome {
	r, err := c.httpClient.Do(req)
	if err != nil {
		return outcome{err: err, retry: isRetryable(err)}
	}
	if !isRetryableStatus(r.StatusCode) {
		return outcome{resp: r}
	}

	wait, _ := retryAfter(r.Header.Get("Retry-After"), time.Now())
	return outcome{
		resp:  r,
		err:   fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName),
		retry: true,
		wait:  wait,
	}
}

// delay returns the pause before retry number attempt (1-indexed): the
// exponential backoff with ±25% jitter, raised to the server's Retry-After
// when that is longer. The result never exceeds maxInterval.
func (p retryConfig) delay(attempt int, serverWait time.Duration) time.Duration {
	d := backoff(attempt, p)
	if serverWait > d {
		d = serverWait
	}
	if p.maxInterval > 0 && d > p.maxInterval {
		d = p.maxInterval
	}
	return d
}

// backoff is the jittered exponential delay for retry number attempt
// (1-indexed), capped at maxInterval before jitter.
func backoff(attempt int, p retryConfig) time.Duration {
	d := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt-1))
	if d > float64(p.maxInterval) {
		d = float64(p.maxInterval)
	}

	d += d * jitterFraction * (2*secureRandFloat64() - 1)
	return time.Duration(max(d, 0))
}

// retryAfter parses a Retry-After header given either as delay seconds or
// as an HTTP date. Dates in the past yield zero.
func retryAfter(header string, now time.Time) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(header)
	if err != nil {
		return 0, false
	}
	return max(at.Sub(now), 0), true
}

// secureRandFloat64 returns a random float64 in [0, 1) using crypto/rand.
func secureRandFloat64() float64 {
	const significandBits = 53

	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(64-significandBits)) / float64(uint64(1)<<significandBits)
}

// isRetryable reports whether a transport error is worth another attempt.
// Cancellation and deadlines are final; everything else, network errors
// included, is retried.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether the policy service asked to be retried:
// 429 Too Many Requests or any 5xx.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
