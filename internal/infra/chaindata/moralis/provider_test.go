package moralis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transporthttp "github.com/gcavalcante/walletfolio/internal/pkg/transport/http"
	"github.com/gcavalcante/walletfolio/internal/pkg/types"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// newTestClient points a provider client at the test server with retries
// disabled so failure tests stay fast.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := transporthttp.NewClient(transporthttp.WithRetryMax(0))
	opts = append(opts, WithHTTPClient(httpClient))
	return NewClient(server.URL, "test-key", opts...)
}

func TestNativeTransactions(t *testing.T) {
	t.Run("decodes and converts the history page", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+testAddress, r.URL.Path)
			assert.Equal(t, "eth", r.URL.Query().Get("chain"))
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

			fmt.Fprint(w, `{
				"cursor": "",
				"result": [{
					"hash": "0xabc",
					"from_address": "0xfrom",
					"to_address": "0xto",
					"value": "1000000000000000000",
					"block_timestamp": "2024-05-10T14:30:00.000Z"
				}]
			}`)
		})

		c := newTestClient(t, handler)

		txs, err := c.NativeTransactions(context.Background(), "eth", testAddress)
		require.NoError(t, err)
		require.Len(t, txs, 1)

		assert.Equal(t, "0xabc", txs[0].Hash)
		assert.Equal(t, types.Amount("1000000000000000000"), txs[0].Value)
		assert.Equal(t, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC), txs[0].Timestamp.UTC())
	})

	t.Run("reports unexpected statuses", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		c := newTestClient(t, handler)

		_, err := c.NativeTransactions(context.Background(), "eth", testAddress)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})
}

func TestTokenTransfers(t *testing.T) {
	t.Run("parses decimals and spam signals", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+testAddress+"/erc20/transfers", r.URL.Path)

			fmt.Fprint(w, `{
				"result": [{
					"transaction_hash": "0xswap",
					"from_address": "0xfrom",
					"to_address": "0xto",
					"value": "100000000",
					"block_timestamp": "2024-05-10T14:30:00Z",
					"token_symbol": "USDC",
					"token_name": "USD Coin",
					"token_decimals": "6",
					"address": "0xa0b8",
					"possible_spam": false,
					"security_score": 87,
					"verified_contract": true
				}]
			}`)
		})

		c := newTestClient(t, handler)

		txs, err := c.TokenTransfers(context.Background(), "eth", testAddress)
		require.NoError(t, err)
		require.Len(t, txs, 1)

		assert.Equal(t, "USDC", txs[0].TokenSymbol)
		assert.Equal(t, 6, txs[0].TokenDecimals)
		assert.Equal(t, "0xa0b8", txs[0].TokenAddress)
		require.NotNil(t, txs[0].SecurityScore)
		assert.Equal(t, 87, *txs[0].SecurityScore)
		require.NotNil(t, txs[0].VerifiedContract)
		assert.True(t, *txs[0].VerifiedContract)
	})

	t.Run("treats unparseable decimals as unknown", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{
				"result": [{
					"transaction_hash": "0x1",
					"value": "5",
					"block_timestamp": "2024-05-10T14:30:00Z",
					"token_symbol": "XYZ",
					"token_decimals": ""
				}]
			}`)
		})

		c := newTestClient(t, handler)

		txs, err := c.TokenTransfers(context.Background(), "eth", testAddress)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, 0, txs[0].TokenDecimals)
	})
}

func TestTokenBalances(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testAddress+"/erc20", r.URL.Path)

		fmt.Fprint(w, `[{
			"token_address": "0xa0b8",
			"symbol": "USDC",
			"name": "USD Coin",
			"decimals": 6,
			"balance": "250000000",
			"possible_spam": false,
			"verified_contract": true
		}]`)
	})

	c := newTestClient(t, handler)

	balances, err := c.TokenBalances(context.Background(), "eth", testAddress)
	require.NoError(t, err)
	require.Len(t, balances, 1)

	assert.Equal(t, "USDC", balances[0].Symbol)
	assert.Equal(t, 6, balances[0].Decimals)
	assert.Equal(t, types.Amount("250000000"), balances[0].RawBalance)
}

func TestNFTs(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testAddress+"/nft", r.URL.Path)
		assert.Equal(t, "decimal", r.URL.Query().Get("format"))

		fmt.Fprint(w, `{
			"result": [{
				"token_address": "0xape",
				"token_id": "42",
				"name": "Bored Friends",
				"possible_spam": false,
				"verified_collection": true,
				"normalized_metadata": {
					"name": "Bored Friend #42",
					"description": "One of many",
					"image": "ipfs://img"
				},
				"floor_price_usd": "1234.56"
			}]
		}`)
	})

	c := newTestClient(t, handler)

	nfts, err := c.NFTs(context.Background(), "eth", testAddress)
	require.NoError(t, err)
	require.Len(t, nfts, 1)

	assert.Equal(t, "Bored Friend #42", nfts[0].Name)
	assert.Equal(t, "ipfs://img", nfts[0].Image)
	assert.True(t, nfts[0].VerifiedCollection)
	require.NotNil(t, nfts[0].FloorPriceUSD)
	assert.InDelta(t, 1234.56, *nfts[0].FloorPriceUSD, 1e-9)
}

type nodeFake struct {
	result json.RawMessage
	err    error
}

func (n *nodeFake) Fetch(_ context.Context, method string, _ ...any) (json.RawMessage, error) {
	if n.err != nil {
		return nil, n.err
	}
	return n.result, nil
}

func TestNativeBalance(t *testing.T) {
	t.Run("converts the node's hex quantity to a decimal amount", func(t *testing.T) {
		node := &nodeFake{result: json.RawMessage(`"0x1bc16d674ec80000"`)} // 2 ETH

		c := newTestClient(t, http.NotFoundHandler(), WithNode("eth", node))

		balance, err := c.NativeBalance(context.Background(), "eth", testAddress)
		require.NoError(t, err)
		assert.Equal(t, types.Amount("2000000000000000000"), balance)
	})

	t.Run("fails for chains without a configured node", func(t *testing.T) {
		c := newTestClient(t, http.NotFoundHandler())

		_, err := c.NativeBalance(context.Background(), "polygon", testAddress)
		assert.ErrorIs(t, err, ErrNoNodeForChain)
	})
}
