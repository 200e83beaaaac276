package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Backoff configures retries of transient failures.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	Factor   float64
}

// DefaultBackoff is three attempts starting at half a second.
func DefaultBackoff() Backoff {
	return Backoff{Attempts: 3, Initial: 500 * time.Millisecond, Max: 5 * time.Second, Factor: 2}
}

// wait returns the pause before retry number attempt (0-based), with ±20%
// jitter.
func (b Backoff) wait(attempt int) time.Duration {
	d := float64(b.Initial)
	for range attempt {
		d *= b.Factor
	}
	d = min(d, float64(b.Max))
	d += d * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

type retrying struct {
	inner Provider
	b     Backoff
}

// WithRetry retries rate limits and server errors with exponential backoff.
// A reply that fails schema validation is retried once.
func WithRetry(p Provider, b Backoff) Provider {
	if b.Attempts < 1 {
		b.Attempts = 1
	}
	return &retrying{inner: p, b: b}
}

func (r *retrying) Model() string { return r.inner.Model() }

func (r *retrying) Complete(ctx context.Context, req Request) (*Response, error) {
	var err error
	retriedInvalid := false
	for attempt := range r.b.Attempts {
		var resp *Response
		resp, err = r.inner.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		switch {
		case errors.As(err, &inv) && !retriedInvalid:
			retriedInvalid = true
		case !transient(err):
			return nil, err
		}
		if attempt == r.b.Attempts-1 {
			break
		}

		pause := r.b.wait(attempt)
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			pause = rl.RetryAfter
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pause):
		}
	}
	return nil, err
}
