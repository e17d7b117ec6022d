package shared

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("INVALID_SEGMENT", "bad segment")
	assert.Equal(t, "bad segment", err.Error())
	assert.Equal(t, "INVALID_SEGMENT", err.Code)
}

func TestRetrievalError(t *testing.T) {
	t.Run("wraps and unwraps the store error", func(t *testing.T) {
		err := NewRetrievalError("list customers", context.DeadlineExceeded)

		assert.Equal(t, "list customers: context deadline exceeded", err.Error())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "context deadline exceeded", err.Cause())
	})

	t.Run("is found through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("insights: %w", NewRetrievalError("list orders", errors.New("connection reset")))

		var re *RetrievalError
		assert.True(t, errors.As(wrapped, &re))
		assert.Equal(t, "list orders", re.Op)
	})

	t.Run("nil cause", func(t *testing.T) {
		err := NewRetrievalError("list orders", nil)
		assert.Equal(t, "list orders: retrieval failed", err.Error())
		assert.Equal(t, "list orders", err.Cause())
	})
}
