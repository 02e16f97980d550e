package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client := NewClient()
		require.NotNil(t, client)

		assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 1*time.Second, client.RetryWaitMin)
		assert.Equal(t, 8*time.Second, client.RetryWaitMax)
		assert.Equal(t, 2, client.RetryMax)
		assert.Nil(t, client.Logger)
	})

	t.Run("custom options", func(t *testing.T) {
		client := NewClient(
			WithTimeout(3*time.Second),
			WithRetryWaitMin(200*time.Millisecond),
			WithRetryWaitMax(2*time.Second),
			WithRetryMax(5),
		)
		require.NotNil(t, client)

		assert.Equal(t, 3*time.Second, client.HTTPClient.Timeout)
		assert.Equal(t, 200*time.Millisecond, client.RetryWaitMin)
		assert.Equal(t, 2*time.Second, client.RetryWaitMax)
		assert.Equal(t, 5, client.RetryMax)
	})
}
