// Package wallet provides normalization and validation of EVM wallet
// addresses. All address comparison in the aggregation pipeline is
// case-insensitive; this package centralizes the rules so the rest of the
// codebase works with a single canonical form.
package wallet

import (
	"errors"
	"strings"

	gethcommon "github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress is returned when the input is not a 0x-prefixed
// 40-character hexadecimal address after trimming surrounding whitespace.
var ErrInvalidAddress = errors.New("invalid wallet address")

// Address is a validated EVM address.
type Address struct {
	// Canonical is the lowercased form used for map keys and comparison.
	Canonical string

	// Checksummed is the EIP-55 mixed-case rendering used for display.
	Checksummed string
}

// IsValid reports whether the string is exactly "0x" followed by 40 hex
// characters, case-insensitive. No trimming is applied; callers that accept
// user input should go through Parse instead.
func IsValid(address string) bool {
	return strings.HasPrefix(address, "0x") && gethcommon.IsHexAddress(address)
}

// Parse trims surrounding whitespace, validates the address, and returns
// its canonical and checksummed forms.
func Parse(address string) (Address, error) {
	trimmed := strings.TrimSpace(address)
	if !IsValid(trimmed) {
		return Address{}, ErrInvalidAddress
	}

	return Address{
		Canonical:   strings.ToLower(trimmed),
		Checksummed: gethcommon.HexToAddress(trimmed).Hex(),
	}, nil
}

// Equal compares two addresses case-insensitively.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
