package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		err := Init(WithLevel("not-a-level"))
		require.Error(t, err)
	})

	t.Run("initializes with valid level", func(t *testing.T) {
		err := Init(WithLevel("error"))
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("repeated init is a no-op", func(t *testing.T) {
		require.NoError(t, Init())
		first := logger

		require.NoError(t, Init(WithLevel("debug")))
		assert.Same(t, first, logger)
	})
}
