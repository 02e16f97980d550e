// Package coinregistry implements the pricing.PrimarySource interface on
// top of a CoinGecko-compatible market data API. Symbols are mapped to the
// registry's coin ids through a fixed table covering the assets the
// dashboard actually quotes.
package coinregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gcavalcante/walletfolio/internal/pricing"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatus indicates a non-2xx response from the registry.
var ErrUnexpectedStatus = errors.New("price registry returned an unexpected status")

// coinIDs maps uppercased ticker symbols to registry coin ids. Symbols
// outside this table are simply not quoted by the primary source; the
// resolver falls through to the pair source for those.
var coinIDs = map[string]string{
	"ETH":   "ethereum",
	"BTC":   "bitcoin",
	"MATIC": "matic-network",
	"BNB":   "binancecoin",
	"AVAX":  "avalanche-2",
	"FTM":   "fantom",
	"XDAI":  "xdai",
	"CRO":   "crypto-com-chain",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"DAI":   "dai",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"AAVE":  "aave",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"SHIB":  "shiba-inu",
	"PEPE":  "pepe",
	"LDO":   "lido-dao",
	"CRV":   "curve-dao-token",
	"SNX":   "havven",
	"MKR":   "maker",
	"COMP":  "compound-governance-token",
	"GRT":   "the-graph",
	"SAND":  "the-sandbox",
	"MANA":  "decentraland",
	"APE":   "apecoin",
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
}

var _ pricing.PrimarySource = (*client)(nil)

type config struct {
	apiKey     string
	httpClient *retryablehttp.Client
}

// Option configures the registry client.
type Option func(*config)

// WithAPIKey sends the given key with every request. The free tier works
// without one.
func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *retryablehttp.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// NewClient creates a primary price source backed by the registry at
// baseURL.
func NewClient(baseURL string, opts ...Option) *client {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = retryablehttp.NewClient()
		httpClient.Logger = nil
	}

	return &client{
		baseURL:    baseURL,
		apiKey:     cfg.apiKey,
		httpClient: httpClient,
	}
}

// priceEntry is the per-coin payload of the simple price endpoint.
type priceEntry struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Quotes resolves the given symbols in one batched request. Unknown
// symbols are left out of the result.
func (c *client) Quotes(ctx context.Context, symbols []string) (map[string]pricing.Quote, error) {
	ids := make([]string, 0, len(symbols))
	symbolByID := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		upper := strings.ToUpper(symbol)
		id, ok := coinIDs[upper]
		if !ok {
			continue
		}
		ids = append(ids, id)
		symbolByID[id] = upper
	}

	if len(ids) == 0 {
		return map[string]pricing.Quote{}, nil
	}

	query := url.Values{
		"ids":                 {strings.Join(ids, ",")},
		"vs_currencies":       {"usd"},
		"include_24hr_change": {"true"},
	}

	endpoint := c.baseURL + "/simple/price?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}

	var body map[string]priceEntry
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	quotes := make(map[string]pricing.Quote, len(body))
	for id, entry := range body {
		symbol, ok := symbolByID[id]
		if !ok {
			continue
		}
		quotes[symbol] = pricing.Quote{
			PriceUSD:         entry.USD,
			ChangePercent24h: entry.USD24hChange,
		}
	}
	return quotes, nil
}
