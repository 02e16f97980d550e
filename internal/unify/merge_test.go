package unify

import (
	"testing"
	"time"

	"github.com/gcavalcante/walletfolio/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMerge(t *testing.T) {
	t.Run("tags chain and kind", func(t *testing.T) {
		native := map[string][]Transaction{
			"eth": {{Hash: "0xa", Timestamp: ts("2024-01-05T10:00:00Z")}},
		}
		transfers := map[string][]Transaction{
			"polygon": {{Hash: "0xb", Timestamp: ts("2024-01-05T09:00:00Z")}},
		}

		unified := Merge(native, transfers)

		require.Len(t, unified, 2)
		assert.Equal(t, "eth", unified[0].Chain)
		assert.Equal(t, KindNative, unified[0].Kind)
		assert.Equal(t, "polygon", unified[1].Chain)
		assert.Equal(t, KindERC20, unified[1].Kind)
	})

	t.Run("sorts descending by timestamp", func(t *testing.T) {
		native := map[string][]Transaction{
			"eth": {
				{Hash: "0xold", Timestamp: ts("2024-01-01T00:00:00Z")},
				{Hash: "0xnew", Timestamp: ts("2024-03-01T00:00:00Z")},
			},
		}
		transfers := map[string][]Transaction{
			"bsc": {{Hash: "0xmid", Timestamp: ts("2024-02-01T00:00:00Z")}},
		}

		unified := Merge(native, transfers)

		require.Len(t, unified, 3)
		assert.Equal(t, "0xnew", unified[0].Hash)
		assert.Equal(t, "0xmid", unified[1].Hash)
		assert.Equal(t, "0xold", unified[2].Hash)
	})

	t.Run("stable sort keeps fetch order on ties", func(t *testing.T) {
		when := ts("2024-01-05T10:00:00Z")
		native := map[string][]Transaction{
			"eth": {
				{Hash: "0xfirst", Timestamp: when},
				{Hash: "0xsecond", Timestamp: when},
			},
		}

		unified := Merge(native, nil)

		require.Len(t, unified, 2)
		assert.Equal(t, "0xfirst", unified[0].Hash)
		assert.Equal(t, "0xsecond", unified[1].Hash)
	})

	t.Run("empty and absent chains contribute nothing", func(t *testing.T) {
		native := map[string][]Transaction{"eth": {}}

		assert.Empty(t, Merge(native, nil))
		assert.Empty(t, Merge(nil, nil))
	})

	t.Run("idempotent on the same input", func(t *testing.T) {
		native := map[string][]Transaction{
			"eth":     {{Hash: "0xa", Timestamp: ts("2024-01-05T10:00:00Z")}},
			"polygon": {{Hash: "0xb", Timestamp: ts("2024-01-05T10:00:00Z")}},
		}
		transfers := map[string][]Transaction{
			"eth": {{Hash: "0xc", Timestamp: ts("2024-01-04T10:00:00Z")}},
		}

		first := Merge(native, transfers)
		second := Merge(native, transfers)

		assert.Equal(t, first, second)
	})
}

func TestTransaction_Decimals(t *testing.T) {
	t.Run("native always 18", func(t *testing.T) {
		tx := Transaction{Kind: KindNative, TokenDecimals: 6}
		assert.Equal(t, 18, tx.Decimals())
	})

	t.Run("erc20 uses token decimals", func(t *testing.T) {
		tx := Transaction{Kind: KindERC20, TokenDecimals: 6}
		assert.Equal(t, 6, tx.Decimals())
	})

	t.Run("missing decimals default to 18", func(t *testing.T) {
		tx := Transaction{Kind: KindERC20}
		assert.Equal(t, 18, tx.Decimals())
	})
}

func TestTransaction_DecodedAmount(t *testing.T) {
	t.Run("decodes with token decimals", func(t *testing.T) {
		tx := Transaction{Kind: KindERC20, TokenDecimals: 6, Value: types.Amount("100000000")}

		value, ok := tx.DecodedAmount()
		require.True(t, ok)
		assert.InDelta(t, 100.0, value, 1e-9)
	})

	t.Run("malformed value reports failure", func(t *testing.T) {
		tx := Transaction{Kind: KindERC20, Value: types.Amount("0x123")}

		_, ok := tx.DecodedAmount()
		assert.False(t, ok)
	})
}

func TestTransaction_Involves(t *testing.T) {
	tx := Transaction{From: "0xAAA", To: "0xBBB"}

	assert.True(t, tx.Involves("0xaaa"))
	assert.True(t, tx.Involves("0xBBB"))
	assert.False(t, tx.Involves("0xccc"))
}
