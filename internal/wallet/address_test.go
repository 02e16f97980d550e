package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"0x" + strings.Repeat("0", 40),
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD",
		"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
	}
	for _, addr := range valid {
		assert.True(t, IsValid(addr), addr)
	}

	invalid := []string{
		"",
		"0x",
		"0x123",
		"0X" + strings.Repeat("a", 40),                  // uppercase prefix
		"0x" + strings.Repeat("a", 39),                  // too short
		"0x" + strings.Repeat("a", 41),                  // too long
		"0x" + strings.Repeat("g", 40),                  // non-hex
		strings.Repeat("a", 42),                         // missing prefix
		" 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",   // leading whitespace
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045\n",  // trailing whitespace
	}
	for _, addr := range invalid {
		assert.False(t, IsValid(addr), "%q", addr)
	}
}

func TestParse(t *testing.T) {
	t.Run("trims whitespace and normalizes", func(t *testing.T) {
		addr, err := Parse("  0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045\t")

		require.NoError(t, err)
		assert.Equal(t, "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", addr.Canonical)
		assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", addr.Checksummed)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := Parse("not an address")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("whitespace alone does not make garbage valid", func(t *testing.T) {
		_, err := Parse("   ")
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("0xABcd", "0xabCD"))
	assert.False(t, Equal("0xabcd", "0xabce"))
}
