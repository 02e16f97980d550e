package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		r := New(WithDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		r := New(WithAttempts(3), WithDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		r := New(WithAttempts(2), WithDelay(time.Millisecond))

		wantErr := errors.New("still failing")
		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return wantErr
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		r := New(WithAttempts(10), WithDelay(50*time.Millisecond))

		ctx, cancel := context.WithCancel(t.Context())

		calls := 0
		err := r.Execute(ctx, func() error {
			calls++
			cancel()
			return errors.New("transient")
		})

		require.Error(t, err)
		assert.Less(t, calls, 10)
	})
}
