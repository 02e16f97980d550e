// Package unify defines the normalized transaction shape shared by the
// whole aggregation pipeline and merges per-chain fetch results into one
// ordered list. Records are immutable once fetched: every derived view is
// computed, never mutated in place.
package unify

import (
	"time"

	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/wallet"
)

// Kind discriminates how a transaction's value is decoded.
type Kind string

const (
	// KindNative marks a transfer of the chain's base currency, decoded
	// with a fixed 18-decimal unit.
	KindNative Kind = "native"

	// KindERC20 marks a token transfer, decoded with the token's own
	// decimals.
	KindERC20 Kind = "erc20"
)

// Transaction is one normalized movement of value. The hash is not unique
// across records: several transfers routinely share one hash.
type Transaction struct {
	Hash      string
	From      string
	To        string
	Value     types.Amount // raw integer amount; unit depends on Kind
	Timestamp time.Time    // block time, drives ordering and date grouping
	Chain     string       // originating network identifier
	Kind      Kind

	// Token transfer fields, unset for native transactions.
	TokenSymbol      string
	TokenName        string
	TokenLogo        string
	TokenDecimals    int // values <= 0 are treated as unknown
	TokenAddress     string
	PossibleSpam     bool
	SecurityScore    *int
	VerifiedContract *bool
}

// Decimals returns the scale used to decode Value. Native transfers always
// use 18. For token transfers, a missing or nonsensical decimals value
// falls back to the 18-decimal default.
func (t Transaction) Decimals() int {
	if t.Kind == KindNative {
		return types.DefaultDecimals
	}

	if t.TokenDecimals <= 0 {
		return types.DefaultDecimals
	}
	return t.TokenDecimals
}

// DecodedAmount returns the human-scale amount of the transfer. The second
// return value is false when the raw value cannot be parsed; callers must
// treat such records as non-positive rather than letting NaN leak into
// totals.
func (t Transaction) DecodedAmount() (float64, bool) {
	return t.Value.Decode(t.Decimals())
}

// Involves reports whether the given address is the sender or recipient,
// compared case-insensitively.
func (t Transaction) Involves(address string) bool {
	return wallet.Equal(t.From, address) || wallet.Equal(t.To, address)
}
