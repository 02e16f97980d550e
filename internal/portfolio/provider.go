// Package portfolio orchestrates the aggregation pipeline: it fans
// requests out across every configured chain with bounded concurrency,
// joins the results, and runs them through unification, pricing, spam
// filtering, and activity grouping. Partial data always beats an error:
// a failed chain degrades to an empty result, and only a total failure
// surfaces to the caller.
package portfolio

import (
	"context"

	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/unify"
)

// ChainDataProvider is the contract for per-chain data fetching. Records
// come back normalized but untagged: the unifier stamps chain and kind.
//
// Implementations must not panic on provider errors; they return the error
// and the orchestrator degrades that chain to an empty result.
type ChainDataProvider interface {
	// NativeTransactions returns the address's base-currency transactions
	// on the given chain.
	NativeTransactions(ctx context.Context, chain, address string) ([]unify.Transaction, error)

	// TokenTransfers returns the address's ERC-20 transfer records on the
	// given chain, including provider spam signals where available.
	TokenTransfers(ctx context.Context, chain, address string) ([]unify.Transaction, error)

	// TokenBalances returns the address's current token holdings on the
	// given chain.
	TokenBalances(ctx context.Context, chain, address string) ([]TokenBalance, error)

	// NativeBalance returns the address's base-currency balance on the
	// given chain as a raw 18-decimal amount.
	NativeBalance(ctx context.Context, chain, address string) (types.Amount, error)

	// NFTs returns the NFTs held by the address on the given chain.
	NFTs(ctx context.Context, chain, address string) ([]NFT, error)
}

// TokenBalance is one token holding on one chain. Price fields are nil
// when the token could not be priced; a missing price means unknown, not
// zero.
type TokenBalance struct {
	Chain            string
	TokenAddress     string
	Symbol           string
	Name             string
	Logo             string
	Decimals         int
	RawBalance       types.Amount
	Balance          float64 // decoded human-scale balance
	PriceUSD         *float64
	Change24h        *float64
	ValueUSD         *float64 // Balance × PriceUSD when priced
	Native           bool     // true for the chain's base currency row
	PossibleSpam     bool
	SecurityScore    *int
	VerifiedContract *bool
	Spam             bool // classifier verdict
}

// NFT is one NFT holding. Spam carries the classifier verdict so callers
// can filter or badge without re-scoring.
type NFT struct {
	Chain              string
	ContractAddress    string
	TokenID            string
	Name               string
	Description        string
	Image              string
	FloorPriceUSD      *float64
	VerifiedCollection bool
	PossibleSpam       bool
	Spam               bool
	SpamPoints         int
}
