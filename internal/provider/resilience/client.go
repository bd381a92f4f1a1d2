// Package resilience wraps outbound HTTP calls with retries and a
// circuit breaker so a flaky upstream degrades instead of cascading.
package resilience

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the upstream's circuit breaker is open
// and the call failed fast without reaching the network.
var ErrCircuitOpen = errors.New("upstream circuit open")

// Config holds configuration for a resilient HTTP client.
type Config struct {
	// Name identifies the upstream for breaker naming and health reports.
	Name string

	// Timeout bounds each individual HTTP attempt (default: 10s).
	Timeout time.Duration

	// MaxRetries is how many times a failed attempt is retried (default: 3).
	MaxRetries uint64

	// RetryInitialInterval is the first backoff delay (default: 100ms).
	RetryInitialInterval time.Duration

	// RetryMaxInterval caps the backoff delay (default: 5s).
	RetryMaxInterval time.Duration

	// BreakerTimeout is how long the breaker stays open before probing
	// half-open (default: 60s).
	BreakerTimeout time.Duration
}

// Client executes HTTP requests with retry and circuit breaking.
// Attempts that return 5xx or a transport error are retried with
// exponential backoff; 4xx responses pass through untouched.
type Client struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	cfg     Config
}

// New creates a resilient HTTP client for one upstream.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryInitialInterval == 0 {
		cfg.RetryInitialInterval = 100 * time.Millisecond
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: readyToTrip,
	})

	return &Client{
		name:    cfg.Name,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		cfg:     cfg,
	}
}

// readyToTrip opens the breaker once five or more requests have been
// seen and at least half of them failed.
func readyToTrip(counts gobreaker.Counts) bool {
	ratio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && ratio >= 0.5
}

// retryableStatus marks a 5xx response as a failure so it both trips
// the breaker and triggers a retry.
type retryableStatus struct {
	code int
}

func (e *retryableStatus) Error() string {
	return fmt.Sprintf("upstream returned %d", e.code)
}

// Do executes the request with retry and circuit breaking. The caller
// owns closing the response body on success.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.RetryInitialInterval
	policy.MaxInterval = c.cfg.RetryMaxInterval
	policy.MaxElapsedTime = 0

	var lastResp *http.Response

	attempt := func() error {
		// Rewind the body so a retry does not send an already-consumed
		// reader. GetBody is set for the buffered bodies this module sends.
		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return backoff.Permanent(bodyErr)
			}
			req.Body = body
		}

		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, doErr := c.http.Do(req.Clone(ctx))
			if doErr != nil {
				return nil, doErr
			}
			if r.StatusCode >= 500 {
				return r, &retryableStatus{code: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				// Release the connection held by the superseded attempt.
				if lastResp != nil {
					lastResp.Body.Close()
				}
				lastResp = resp
			}
			return err
		}
		if lastResp != nil {
			lastResp.Body.Close()
		}
		lastResp = resp
		return nil
	}

	err := backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, c.cfg.MaxRetries), ctx))
	if err != nil {
		// A 5xx that exhausted its retries still reaches the caller so
		// the body text can be preserved for diagnostics.
		if lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}
	return lastResp, nil
}

// Health reports the upstream's breaker state.
func (c *Client) Health() Health {
	return Health{
		Name:   c.name,
		State:  c.breaker.State(),
		Counts: c.breaker.Counts(),
	}
}

// Health is a point-in-time view of one upstream's circuit breaker.
type Health struct {
	Name   string
	State  gobreaker.State
	Counts gobreaker.Counts
}

// Healthy reports whether the circuit is closed.
func (h Health) Healthy() bool {
	return h.State == gobreaker.StateClosed
}

// String renders the breaker state for ops output.
func (h Health) String() string {
	return fmt.Sprintf("%s: %s (%d/%d failures)", h.Name, h.State, h.Counts.TotalFailures, h.Counts.Requests)
}
