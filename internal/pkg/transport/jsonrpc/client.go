// Package jsonrpc provides a generic JSON-RPC 2.0 client over HTTP.
// It is used to talk to blockchain node endpoints for the few calls that
// are not served by the indexing provider's REST API (e.g. native balance
// lookups).
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrProviderReturnedError indicates that the remote JSON-RPC server
// returned an error response.
var ErrProviderReturnedError = errors.New("provider error")

// response represents a standard JSON-RPC 2.0 response.
type response struct {
	JsonRPC string `json:"jsonrpc"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Err returns an error if the response includes a JSON-RPC error object,
// wrapping ErrProviderReturnedError with the code and message.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return fmt.Errorf("%w: [%d] - %s", ErrProviderReturnedError, r.Error.Code, r.Error.Message)
}

// Client defines the interface for a generic JSON-RPC client. It abstracts
// the underlying implementation to facilitate mocking in tests.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method name and
	// parameters, returning the raw JSON result.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client is the default implementation of Client. It posts JSON-RPC
// requests to the configured endpoint using the provided HTTP client.
type client struct {
	endpoint   string
	httpClient *http.Client
}

var _ Client = (*client)(nil)

// Fetch sends a JSON-RPC request to the remote server. The request id is a
// freshly generated UUID string.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}

	return data.Result, data.Err()
}

// NewClient constructs a Client that sends JSON-RPC requests to the given
// endpoint using the provided HTTP client.
func NewClient(httpClient *http.Client, endpoint string) *client {
	return &client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}
