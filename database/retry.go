package database

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// RetryPolicy is an exponential backoff schedule. Only reads are retried.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

var readPolicy = RetryPolicy{Attempts: 3, Initial: 100 * time.Millisecond, Max: 2 * time.Second}

// delay returns the wait before the given retry (1-based).
func (p RetryPolicy) delay(retry int) time.Duration {
	d := p.Initial << (retry - 1)
	if d <= 0 || d > p.Max {
		return p.Max
	}
	return d
}

// SQLState extracts the PostgreSQL error code from either supported driver.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var drvErr pgdriver.Error
	if errors.As(err, &drvErr) {
		return drvErr.Field('C')
	}
	return ""
}

// SQLSTATE classes and codes worth another attempt
var (
	transientClasses = []string{"08", "53"} // connection exception, insufficient resources
	transientStates  = []string{"40001", "40P01", "57P01"}
)

// driver messages seen when the connection drops before a SQLSTATE is known
var transientMessages = []string{
	"connection refused",
	"connection reset",
	"connection closed",
	"bad connection",
	"broken pipe",
	"i/o timeout",
	"no such host",
	"network is unreachable",
	"too many clients",
	"server is not accepting",
	"eof",
}

func isTransient(err error) bool {
	if err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrNoRows) {
		return false
	}

	if code := SQLState(err); code != "" {
		return slices.Contains(transientStates, code) || slices.Contains(transientClasses, code[:min(2, len(code))])
	}

	msg := strings.ToLower(err.Error())
	return slices.ContainsFunc(transientMessages, func(s string) bool {
		return strings.Contains(msg, s)
	})
}

// Retry runs op until it succeeds, fails permanently or the policy runs out.
func Retry(ctx context.Context, policy RetryPolicy, op func() error) error {
	var err error
	for attempt := 1; attempt <= max(policy.Attempts, 1); attempt++ {
		if err = op(); err == nil || !isTransient(err) {
			return err
		}
		if attempt == policy.Attempts {
			break
		}

		timer := time.NewTimer(policy.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}

// WithRetry wraps a read with the default read policy.
func WithRetry(ctx context.Context, fn func() error) error {
	return Retry(ctx, readPolicy, fn)
}
