package dbretry

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaily/internal/domain"
)

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.True(t, IsRetryableError(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryableError(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryableError(&pq.Error{Code: "23505"}))
	assert.True(t, IsRetryableError(driver.ErrBadConn))
	assert.False(t, IsRetryableError(domain.ErrCommentNotFound))
}

func TestOperation_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	got, err := Operation(context.Background(), func(context.Context) (int, error) {
		attempts++
		if attempts < 3 {
			return 0, &pq.Error{Code: "40001"}
		}
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 3, attempts)
}

func TestOperation_PermanentErrorsPassThrough(t *testing.T) {
	attempts := 0
	err := NoResult(context.Background(), func(context.Context) error {
		attempts++
		return domain.ErrCommentNotFound
	})

	assert.Same(t, domain.ErrCommentNotFound, err)
	assert.Equal(t, 1, attempts)
}

func TestOperation_GivesUp(t *testing.T) {
	attempts := 0
	_, err := Operation(context.Background(), func(context.Context) (int, error) {
		attempts++
		return 0, &pq.Error{Code: "40P01"}
	})

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40P01"), pqErr.Code)
	assert.Equal(t, int(maxRetries)+1, attempts)
}
