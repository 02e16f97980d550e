// Package moralis implements the portfolio.ChainDataProvider interface on
// top of a Moralis-compatible indexing REST API, with native balances
// fetched straight from chain nodes over JSON-RPC.
package moralis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gcavalcante/walletfolio/internal/pkg/transport/jsonrpc"
	"github.com/gcavalcante/walletfolio/internal/portfolio"

	"github.com/hashicorp/go-retryablehttp"
)

var (
	// ErrUnexpectedStatus indicates a non-2xx response from the provider.
	ErrUnexpectedStatus = errors.New("provider returned an unexpected status")

	// ErrNoNodeForChain indicates that no JSON-RPC node was configured for
	// the requested chain.
	ErrNoNodeForChain = errors.New("no rpc node configured for chain")
)

type client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
	nodes      map[string]jsonrpc.Client
}

var _ portfolio.ChainDataProvider = (*client)(nil)

type config struct {
	httpClient *retryablehttp.Client
	nodes      map[string]jsonrpc.Client
}

// Option configures the provider client.
type Option func(*config)

// WithHTTPClient overrides the HTTP client used for REST calls.
func WithHTTPClient(c *retryablehttp.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithNode registers the JSON-RPC node used for native balance lookups on
// the given chain.
func WithNode(chain string, node jsonrpc.Client) Option {
	return func(cfg *config) {
		cfg.nodes[chain] = node
	}
}

// NewClient creates a provider client for the given API base URL and key.
func NewClient(baseURL, apiKey string, opts ...Option) *client {
	cfg := config{
		nodes: make(map[string]jsonrpc.Client),
	}
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
		apiKey:     apiKey,
		httpClient: httpClient,
		nodes:      cfg.nodes,
	}
}

// get performs an authenticated GET against the provider and decodes the
// JSON body into out.
func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s: %s", ErrUnexpectedStatus, http.MethodGet, path, res.Status)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
