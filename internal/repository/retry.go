package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryPolicy retries transient database failures at the call site. The
// connection layer occasionally drops after long inactivity; one delayed
// re-attempt recovers those cases.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy returns the policy used by the repositories: one
// retry after a fixed 500ms delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 2,
		Delay:       500 * time.Millisecond,
	}
}

// Do runs fn, re-running it after the configured delay when it fails
// with a transient error. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}

		if attempt < p.MaxAttempts {
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return err
}

// isTransient reports whether the error is a connection-layer failure
// worth one more attempt.
func isTransient(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
