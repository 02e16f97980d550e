package types

import (
	"math/big"
	"strings"
)

// Amount represents a raw on-chain integer amount as a decimal string
// (e.g. "1000000000000000000" for 1 unit of an 18-decimal token).
// Providers return these values as strings because they routinely exceed
// the range of int64. Amount offers safe decoding with explicit failure
// reporting instead of propagating NaN or panics into aggregates.
type Amount string

// maxDecimals bounds the accepted token decimals. Values outside the range
// fall back to the 18-decimal default.
const maxDecimals = 77

// DefaultDecimals is the scale applied when a record carries no usable
// decimals value. Both native currencies and the vast majority of ERC-20
// tokens use 18.
const DefaultDecimals = 18

// Decode returns the amount scaled down by 10^decimals as a float64.
// The second return value is false when the raw string is not a valid
// non-negative integer; callers must treat that as a non-positive amount.
// Decimals outside [0, 77] are replaced by DefaultDecimals.
func (a Amount) Decode(decimals int) (float64, bool) {
	raw := strings.TrimSpace(string(a))
	if raw == "" {
		return 0, false
	}

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok || value.Sign() < 0 {
		return 0, false
	}

	if decimals < 0 || decimals > maxDecimals {
		decimals = DefaultDecimals
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	result, _ := new(big.Float).Quo(
		new(big.Float).SetInt(value),
		new(big.Float).SetInt(scale),
	).Float64()

	return result, true
}

// IsZero reports whether the amount decodes to exactly zero. Malformed
// amounts are not considered zero.
func (a Amount) IsZero() bool {
	value, ok := new(big.Int).SetString(strings.TrimSpace(string(a)), 10)
	return ok && value.Sign() == 0
}
