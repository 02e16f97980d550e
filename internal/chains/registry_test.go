package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("known chain", func(t *testing.T) {
		c, err := Get("polygon")

		require.NoError(t, err)
		assert.Equal(t, "MATIC", c.NativeSymbol)
		assert.Equal(t, 18, c.NativeDecimals)
	})

	t.Run("unknown chain", func(t *testing.T) {
		_, err := Get("dogechain")
		assert.ErrorIs(t, err, ErrUnknownChain)
	})
}

func TestAll(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	assert.Equal(t, "eth", all[0].ID)
	assert.Len(t, IDs(), len(all))

	// mutating the copy must not affect the registry
	all[0].NativeSymbol = "MUTATED"
	c, err := Get("eth")
	require.NoError(t, err)
	assert.Equal(t, "ETH", c.NativeSymbol)
}
