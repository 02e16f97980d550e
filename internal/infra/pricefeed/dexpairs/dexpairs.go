// Package dexpairs implements the pricing.PairSource interface on top of
// a DEX pair aggregator API. It serves the long tail of tokens the
// primary registry does not list, priced from their most liquid trading
// pair.
package dexpairs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gcavalcante/walletfolio/internal/pricing"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrUnexpectedStatus indicates a non-2xx response from the aggregator.
var ErrUnexpectedStatus = errors.New("pair aggregator returned an unexpected status")

// maxAddressesPerRequest is the aggregator's documented batch limit.
const maxAddressesPerRequest = 30

type client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

var _ pricing.PairSource = (*client)(nil)

type config struct {
	httpClient *retryablehttp.Client
}

// Option configures the pair source client.
type Option func(*config)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *retryablehttp.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// NewClient creates a pair price source backed by the aggregator at
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
		httpClient: httpClient,
	}
}

type (
	// pairResponse is one trading pair from the aggregator. PriceUSD comes
	// back as a decimal string.
	pairResponse struct {
		ChainID   string `json:"chainId"`
		BaseToken struct {
			Address string `json:"address"`
			Symbol  string `json:"symbol"`
		} `json:"baseToken"`
		PriceUSD    string `json:"priceUsd"`
		PriceChange struct {
			H24 float64 `json:"h24"`
		} `json:"priceChange"`
		Liquidity struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
	}

	pairsEnvelope struct {
		Pairs []pairResponse `json:"pairs"`
	}
)

// PairQuotes looks up current pair prices for the given token contract
// addresses on one network. Result keys are lowercased addresses; tokens
// without a listed pair are absent. When a token trades in several pairs
// the most liquid one wins.
func (c *client) PairQuotes(ctx context.Context, network string, addresses []string) (map[string]pricing.Quote, error) {
	quotes := make(map[string]pricing.Quote, len(addresses))
	liquidity := make(map[string]float64, len(addresses))

	for start := 0; start < len(addresses); start += maxAddressesPerRequest {
		end := start + maxAddressesPerRequest
		if end > len(addresses) {
			end = len(addresses)
		}

		var body pairsEnvelope
		if err := c.fetchBatch(ctx, network, addresses[start:end], &body); err != nil {
			return nil, err
		}

		for _, pair := range body.Pairs {
			price, err := strconv.ParseFloat(pair.PriceUSD, 64)
			if err != nil {
				continue
			}

			key := strings.ToLower(pair.BaseToken.Address)
			if existing, ok := liquidity[key]; ok && existing >= pair.Liquidity.USD {
				continue
			}

			liquidity[key] = pair.Liquidity.USD
			quotes[key] = pricing.Quote{
				PriceUSD:         price,
				ChangePercent24h: pair.PriceChange.H24,
			}
		}
	}

	return quotes, nil
}

func (c *client) fetchBatch(ctx context.Context, network string, addresses []string, out *pairsEnvelope) error {
	endpoint := c.baseURL + "/tokens/" + network + "/" + strings.Join(addresses, ",")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
