package coinregistry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transporthttp "github.com/gcavalcante/walletfolio/internal/pkg/transport/http"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := transporthttp.NewClient(transporthttp.WithRetryMax(0))
	opts = append(opts, WithHTTPClient(httpClient))
	return NewClient(server.URL, opts...)
}

func TestQuotes(t *testing.T) {
	t.Run("maps symbols to coin ids and back", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))

			ids := strings.Split(r.URL.Query().Get("ids"), ",")
			assert.ElementsMatch(t, []string{"ethereum", "usd-coin"}, ids)

			fmt.Fprint(w, `{
				"ethereum": {"usd": 2500.12, "usd_24h_change": -1.5},
				"usd-coin": {"usd": 1.0, "usd_24h_change": 0.01}
			}`)
		})

		c := newTestClient(t, handler)

		quotes, err := c.Quotes(context.Background(), []string{"ETH", "USDC"})
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		assert.InDelta(t, 2500.12, quotes["ETH"].PriceUSD, 1e-9)
		assert.InDelta(t, -1.5, quotes["ETH"].ChangePercent24h, 1e-9)
		assert.InDelta(t, 1.0, quotes["USDC"].PriceUSD, 1e-9)
	})

	t.Run("skips the request entirely when no symbol is known", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Error("no request expected")
		})

		c := newTestClient(t, handler)

		quotes, err := c.Quotes(context.Background(), []string{"UNKNOWN1", "UNKNOWN2"})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("unknown symbols are absent, not an error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"ethereum": {"usd": 2500, "usd_24h_change": 0}}`)
		})

		c := newTestClient(t, handler)

		quotes, err := c.Quotes(context.Background(), []string{"ETH", "OBSCURE"})
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Contains(t, quotes, "ETH")
	})

	t.Run("sends the api key when configured", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "demo-key", r.Header.Get("x-cg-demo-api-key"))
			fmt.Fprint(w, `{}`)
		})

		c := newTestClient(t, handler, WithAPIKey("demo-key"))

		_, err := c.Quotes(context.Background(), []string{"ETH"})
		require.NoError(t, err)
	})

	t.Run("reports unexpected statuses", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		c := newTestClient(t, handler)

		_, err := c.Quotes(context.Background(), []string{"ETH"})
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
	})
}
