package moralis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/portfolio"
	"github.com/gcavalcante/walletfolio/internal/unify"
)

// NativeTransactions fetches the address's base-currency transaction
// history on the given chain.
func (c *client) NativeTransactions(ctx context.Context, chain, address string) ([]unify.Transaction, error) {
	query := url.Values{"chain": {chain}}

	var body page[transactionResponse]
	if err := c.get(ctx, "/"+address, query, &body); err != nil {
		return nil, err
	}

	transactions := make([]unify.Transaction, len(body.Result))
	for i, record := range body.Result {
		transactions[i] = record.toTransaction()
	}
	return transactions, nil
}

// TokenTransfers fetches the address's ERC-20 transfer records on the
// given chain.
func (c *client) TokenTransfers(ctx context.Context, chain, address string) ([]unify.Transaction, error) {
	query := url.Values{"chain": {chain}}

	var body page[transferResponse]
	if err := c.get(ctx, "/"+address+"/erc20/transfers", query, &body); err != nil {
		return nil, err
	}

	transactions := make([]unify.Transaction, len(body.Result))
	for i, record := range body.Result {
		transactions[i] = record.toTransaction()
	}
	return transactions, nil
}

// TokenBalances fetches the address's current ERC-20 holdings on the
// given chain. The endpoint returns a bare array, not a cursor page.
func (c *client) TokenBalances(ctx context.Context, chain, address string) ([]portfolio.TokenBalance, error) {
	query := url.Values{"chain": {chain}}

	var body []balanceResponse
	if err := c.get(ctx, "/"+address+"/erc20", query, &body); err != nil {
		return nil, err
	}

	balances := make([]portfolio.TokenBalance, len(body))
	for i, record := range body {
		balances[i] = record.toTokenBalance()
	}
	return balances, nil
}

// NFTs fetches the NFTs held by the address on the given chain, with
// normalized metadata when the provider has it.
func (c *client) NFTs(ctx context.Context, chain, address string) ([]portfolio.NFT, error) {
	query := url.Values{
		"chain":             {chain},
		"format":            {"decimal"},
		"normalizeMetadata": {"true"},
		"include_prices":    {"true"},
		"exclude_spam":      {"false"},
		"media_items":       {"false"},
	}

	var body page[nftResponse]
	if err := c.get(ctx, "/"+address+"/nft", query, &body); err != nil {
		return nil, err
	}

	nfts := make([]portfolio.NFT, len(body.Result))
	for i, record := range body.Result {
		nfts[i] = record.toNFT()
	}
	return nfts, nil
}

// NativeBalance asks the chain's own node for the address balance via
// eth_getBalance, since the indexing API does not serve point-in-time
// balances for every chain.
func (c *client) NativeBalance(ctx context.Context, chain, address string) (types.Amount, error) {
	node, ok := c.nodes[chain]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoNodeForChain, chain)
	}

	data, err := node.Fetch(ctx, "eth_getBalance", address, "latest")
	if err != nil {
		return "", err
	}

	var hexBalance string
	if err := json.Unmarshal(data, &hexBalance); err != nil {
		return "", err
	}

	return hexToAmount(hexBalance)
}

// hexToAmount converts a 0x-prefixed hex quantity into a decimal Amount.
func hexToAmount(raw string) (types.Amount, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if trimmed == "" {
		return "0", nil
	}

	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return "", fmt.Errorf("malformed hex quantity %q", raw)
	}
	return types.Amount(value.String()), nil
}
