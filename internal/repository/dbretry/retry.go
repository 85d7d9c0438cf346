package dbretry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
)

var (
	maxElapsedTime  = 10 * time.Second
	initialInterval = 50 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxRetries      = uint64(4)
)

// retryableCodes are postgres SQLSTATEs worth another attempt.
var retryableCodes = map[pq.ErrorCode]struct{}{
	"08000": {}, // connection_exception
	"08003": {}, // connection_does_not_exist
	"08006": {}, // connection_failure
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53300": {}, // too_many_connections
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P03": {}, // cannot_connect_now
}

// IsRetryableError checks if the given error is a transient database failure.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		_, ok := retryableCodes[pqErr.Code]
		return ok
	}

	return errors.Is(err, driver.ErrBadConn)
}

func newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(maxElapsedTime),
		backoff.WithInitialInterval(initialInterval),
		backoff.WithMaxInterval(maxInterval),
	), maxRetries)
	return backoff.WithContext(b, ctx)
}

// Operation runs a database operation, retrying transient failures.
// Non-retryable errors are returned unchanged so callers can match them.
func Operation[T any](ctx context.Context, operation func(context.Context) (T, error)) (T, error) {
	var (
		result   T
		lastErr  error
		finalErr error
	)

	err := backoff.Retry(func() error {
		var err error
		result, err = operation(ctx)
		if err != nil {
			if !IsRetryableError(err) {
				finalErr = err
				return backoff.Permanent(err)
			}
			lastErr = err
			return err
		}
		return nil
	}, newBackOff(ctx))
	if err != nil {
		if finalErr != nil {
			return result, finalErr
		}
		if lastErr != nil {
			return result, fmt.Errorf("database operation failed after retries: %w", lastErr)
		}
		return result, fmt.Errorf("database operation failed: %w", err)
	}

	return result, nil
}

// NoResult wraps a database operation that doesn't return a result.
func NoResult(ctx context.Context, operation func(context.Context) error) error {
	_, err := Operation(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, operation(ctx)
	})
	return err
}
