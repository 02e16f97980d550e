// Package chains holds the registry of supported EVM-compatible networks.
// Each entry carries the metadata the aggregation pipeline needs: the
// native currency symbol for pricing and the network slug understood by the
// pair-based price source.
package chains

import "errors"

// ErrUnknownChain is returned when a chain identifier is not registered.
var ErrUnknownChain = errors.New("unknown chain")

// Chain describes one supported EVM network.
type Chain struct {
	ID             string // short identifier used throughout the pipeline (e.g. "eth")
	Name           string // human-readable network name
	NativeSymbol   string // symbol of the base currency (e.g. "ETH")
	NativeDecimals int    // decimals of the base currency, 18 on every EVM chain
	PriceNetwork   string // network slug used by the pair price source
}

// registry lists the supported networks in display order.
var registry = []Chain{
	{ID: "eth", Name: "Ethereum", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "ethereum"},
	{ID: "polygon", Name: "Polygon", NativeSymbol: "MATIC", NativeDecimals: 18, PriceNetwork: "polygon"},
	{ID: "bsc", Name: "BNB Smart Chain", NativeSymbol: "BNB", NativeDecimals: 18, PriceNetwork: "bsc"},
	{ID: "arbitrum", Name: "Arbitrum One", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "arbitrum"},
	{ID: "optimism", Name: "Optimism", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "optimism"},
	{ID: "base", Name: "Base", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "base"},
	{ID: "avalanche", Name: "Avalanche C-Chain", NativeSymbol: "AVAX", NativeDecimals: 18, PriceNetwork: "avalanche"},
	{ID: "fantom", Name: "Fantom", NativeSymbol: "FTM", NativeDecimals: 18, PriceNetwork: "fantom"},
	{ID: "gnosis", Name: "Gnosis", NativeSymbol: "XDAI", NativeDecimals: 18, PriceNetwork: "gnosischain"},
	{ID: "cronos", Name: "Cronos", NativeSymbol: "CRO", NativeDecimals: 18, PriceNetwork: "cronos"},
	{ID: "linea", Name: "Linea", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "linea"},
	{ID: "zksync", Name: "zkSync Era", NativeSymbol: "ETH", NativeDecimals: 18, PriceNetwork: "zksync"},
}

// index maps chain ID to its registry entry.
var index = func() map[string]Chain {
	m := make(map[string]Chain, len(registry))
	for _, c := range registry {
		m[c.ID] = c
	}
	return m
}()

// All returns every registered chain in display order. The returned slice
// is a copy; callers may modify it freely.
func All() []Chain {
	out := make([]Chain, len(registry))
	copy(out, registry)
	return out
}

// Get returns the chain registered under the given identifier.
func Get(id string) (Chain, error) {
	c, ok := index[id]
	if !ok {
		return Chain{}, ErrUnknownChain
	}
	return c, nil
}

// IDs returns the identifiers of all registered chains in display order.
func IDs() []string {
	out := make([]string, len(registry))
	for i, c := range registry {
		out[i] = c.ID
	}
	return out
}
