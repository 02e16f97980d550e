// Package pricing resolves current USD quotes for a set of tokens. It
// consults a primary symbol-registry source first, retries well-known
// wrapped-token synonyms, and falls back to a pair-based lookup by contract
// address for anything still unpriced. Source failures are logged and
// swallowed: a token that cannot be priced is simply absent from the
// result, and callers must treat a missing quote as unknown, never as zero.
package pricing

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
	"time"

	"github.com/gcavalcante/walletfolio/internal/pkg/logger"
	"github.com/gcavalcante/walletfolio/internal/pkg/types"
)

// TokenRef identifies one token to price. Symbol is required; Address and
// Network enable the pair-based fallback when the primary source has no
// entry for the symbol.
type TokenRef struct {
	Symbol  string
	Address string
	Network string
}

// Quote is the current market data for one token.
type Quote struct {
	PriceUSD         float64
	ChangePercent24h float64
}

// PrimarySource answers batched symbol lookups against a market data
// registry. Symbols it does not recognize are absent from the result; that
// is not an error.
type PrimarySource interface {
	Quotes(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// PairSource answers batched pair lookups by token contract address on a
// single network. Result keys are lowercased contract addresses.
type PairSource interface {
	PairQuotes(ctx context.Context, network string, addresses []string) (map[string]Quote, error)
}

// Cache stores resolved quote sets for a short period, keyed by the exact
// set of requested tokens.
type Cache interface {
	Get(ctx context.Context, key string) (map[string]Quote, bool, error)
	Set(ctx context.Context, key string, quotes map[string]Quote, ttl time.Duration) error
}

// synonyms maps wrapped-token symbols to the base asset the primary source
// actually lists. Tried when the wrapped symbol itself has no entry.
var synonyms = map[string]string{
	"WETH":   "ETH",
	"WBTC":   "BTC",
	"WMATIC": "MATIC",
	"WBNB":   "BNB",
	"WAVAX":  "AVAX",
	"WFTM":   "FTM",
}

// Resolver resolves USD quotes for token sets.
type Resolver interface {
	// Resolve returns a mapping from uppercased symbol to quote. Tokens
	// that could not be priced are absent. Resolve only fails when the
	// context is canceled; individual source failures degrade to missing
	// quotes.
	Resolve(ctx context.Context, refs []TokenRef) (map[string]Quote, error)
}

type service struct {
	primary PrimarySource
	pair    PairSource
	cache   Cache
	ttl     time.Duration
}

var _ Resolver = (*service)(nil)

type config struct {
	cache Cache
	ttl   time.Duration
}

// Option configures the resolver.
type Option func(*config)

// WithCache sets the cache backend. Default is an in-process nop cache.
func WithCache(c Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithCacheTTL sets how long a resolved quote set stays cached.
func WithCacheTTL(d time.Duration) Option {
	return func(cfg *config) {
		cfg.ttl = d
	}
}

// New creates a Resolver backed by the given primary and pair sources.
// Either source may be nil, in which case that stage is skipped.
func New(primary PrimarySource, pair PairSource, opts ...Option) *service {
	cfg := config{
		cache: nopCache{},
		ttl:   time.Minute,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		primary: primary,
		pair:    pair,
		cache:   cfg.cache,
		ttl:     cfg.ttl,
	}
}

// cacheKey derives a stable key from the requested token set. The set is
// deduplicated and sorted first so request order does not fragment the
// cache.
func cacheKey(refs []TokenRef) string {
	parts := types.NewSet[string]()
	for _, ref := range refs {
		parts.Add(fmt.Sprintf("%s|%s|%s",
			strings.ToUpper(ref.Symbol),
			strings.ToLower(ref.Address),
			strings.ToLower(ref.Network),
		))
	}

	sorted := parts.ToSlice()
	slices.Sort(sorted)

	h := fnv.New64a()
	for _, p := range sorted {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// resolvePrimary prices as many symbols as possible against the primary
// source. The batch includes synonym symbols up front so a wrapped token
// can be answered from its base asset in the same request.
func (s *service) resolvePrimary(ctx context.Context, symbols []string) map[string]Quote {
	if s.primary == nil || len(symbols) == 0 {
		return nil
	}

	batch := types.NewSet(symbols...)
	for _, symbol := range symbols {
		if synonym, ok := synonyms[symbol]; ok {
			batch.Add(synonym)
		}
	}

	fetched, err := s.primary.Quotes(ctx, batch.ToSlice())
	if err != nil {
		logger.Warn(ctx, "primary price source failed", "symbols", len(symbols), "error", err)
		return nil
	}

	resolved := make(map[string]Quote, len(symbols))
	for _, symbol := range symbols {
		if quote, ok := fetched[symbol]; ok {
			resolved[symbol] = quote
			continue
		}

		if synonym, ok := synonyms[symbol]; ok {
			if quote, ok := fetched[synonym]; ok {
				resolved[symbol] = quote
			}
		}
	}

	return resolved
}

// resolvePairs prices the remaining refs through the pair source, batching
// one request per network and matching results by case-insensitive
// contract address.
func (s *service) resolvePairs(ctx context.Context, refs []TokenRef, resolved map[string]Quote) {
	if s.pair == nil {
		return
	}

	byNetwork := types.NewDefaultMap[string](func() []TokenRef { return nil })
	for _, ref := range refs {
		symbol := strings.ToUpper(ref.Symbol)
		if _, ok := resolved[symbol]; ok {
			continue
		}
		if ref.Address == "" || ref.Network == "" {
			continue
		}

		byNetwork.Set(ref.Network, append(byNetwork.Get(ref.Network), ref))
	}

	for network, pending := range byNetwork.ToMap() {
		addresses := make([]string, len(pending))
		for i, ref := range pending {
			addresses[i] = strings.ToLower(ref.Address)
		}

		quotes, err := s.pair.PairQuotes(ctx, network, addresses)
		if err != nil {
			logger.Warn(ctx, "pair price source failed", "network", network, "tokens", len(addresses), "error", err)
			continue
		}

		for _, ref := range pending {
			if quote, ok := quotes[strings.ToLower(ref.Address)]; ok {
				resolved[strings.ToUpper(ref.Symbol)] = quote
			}
		}
	}
}

func (s *service) Resolve(ctx context.Context, refs []TokenRef) (map[string]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return map[string]Quote{}, nil
	}

	key := cacheKey(refs)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn(ctx, "price cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	symbols := types.NewSet[string]()
	for _, ref := range refs {
		if ref.Symbol != "" {
			symbols.Add(strings.ToUpper(ref.Symbol))
		}
	}

	resolved := s.resolvePrimary(ctx, symbols.ToSlice())
	if resolved == nil {
		resolved = make(map[string]Quote)
	}

	s.resolvePairs(ctx, refs, resolved)

	if err := s.cache.Set(ctx, key, resolved, s.ttl); err != nil {
		logger.Warn(ctx, "price cache write failed", "error", err)
	}

	return resolved, nil
}
