package portfolio

import (
	"context"
	"sort"
	"strings"

	"github.com/gcavalcante/walletfolio/internal/chains"
	"github.com/gcavalcante/walletfolio/internal/pkg/logger"
	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/pricing"
	"github.com/gcavalcante/walletfolio/internal/spamguard"
	"github.com/gcavalcante/walletfolio/internal/wallet"
)

// BalanceView is the priced balance sheet of one address across every
// configured chain.
type BalanceView struct {
	Address      string
	Tokens       []TokenBalance // sorted by ValueUSD descending, unpriced last
	TotalUSD     float64        // sum over priced, non-spam balances only
	ChainsFailed int
}

func (s *service) Balances(ctx context.Context, address string) (BalanceView, error) {
	addr, err := wallet.Parse(address)
	if err != nil {
		return BalanceView{}, err
	}

	tokens, tokensFailed := fanOut(ctx, s.chains, s.concurrencyLimit, s.limiter, s.retrier, "token balances",
		func(ctx context.Context, chain string) ([]TokenBalance, error) {
			return s.provider.TokenBalances(ctx, chain, addr.Canonical)
		})

	native, nativeFailed := fanOut(ctx, s.chains, s.concurrencyLimit, s.limiter, s.retrier, "native balance",
		func(ctx context.Context, chain string) ([]TokenBalance, error) {
			raw, err := s.provider.NativeBalance(ctx, chain, addr.Canonical)
			if err != nil {
				return nil, err
			}
			balance := TokenBalance{RawBalance: raw, Decimals: types.DefaultDecimals}
			if c, err := chains.Get(chain); err == nil {
				balance.Symbol = c.NativeSymbol
				balance.Decimals = c.NativeDecimals
			}
			return []TokenBalance{balance}, nil
		})

	totalFetches := 2 * len(s.chains)
	if totalFetches > 0 && tokensFailed+nativeFailed == totalFetches {
		return BalanceView{}, ErrAllChainsFailed
	}

	balances := collectBalances(tokens, native, s.classifier)

	if err := priceBalances(ctx, s.prices, balances); err != nil {
		logger.Warn(ctx, "balance pricing failed, rendering without values", "address", addr.Canonical, "error", err)
	}

	total := 0.0
	for _, b := range balances {
		if b.ValueUSD != nil && !b.Spam {
			total += *b.ValueUSD
		}
	}

	sort.SliceStable(balances, func(i, j int) bool {
		vi, vj := -1.0, -1.0
		if balances[i].ValueUSD != nil {
			vi = *balances[i].ValueUSD
		}
		if balances[j].ValueUSD != nil {
			vj = *balances[j].ValueUSD
		}
		return vi > vj
	})

	return BalanceView{
		Address:      addr.Checksummed,
		Tokens:       balances,
		TotalUSD:     total,
		ChainsFailed: max(tokensFailed, nativeFailed),
	}, nil
}

// collectBalances flattens the per-chain results in a deterministic chain
// order, decodes raw amounts where the provider left them encoded, and
// attaches the spam verdict.
func collectBalances(tokens, native map[string][]TokenBalance, classifier *spamguard.Classifier) []TokenBalance {
	chainIDs := make([]string, 0, len(tokens)+len(native))
	seen := types.NewSet[string]()
	for chain := range tokens {
		chainIDs = append(chainIDs, chain)
		seen.Add(chain)
	}
	for chain := range native {
		if !seen.Has(chain) {
			chainIDs = append(chainIDs, chain)
		}
	}
	sort.Strings(chainIDs)

	var out []TokenBalance
	for _, chain := range chainIDs {
		for _, b := range native[chain] {
			b.Chain = chain
			b.Native = true
			decodeBalance(&b)
			out = append(out, b)
		}
		for _, b := range tokens[chain] {
			b.Chain = chain
			decodeBalance(&b)
			b.Spam = classifier.IsSpamToken(spamguard.TokenInput{
				Symbol:           b.Symbol,
				Name:             b.Name,
				Address:          b.TokenAddress,
				PossibleSpam:     b.PossibleSpam,
				SecurityScore:    b.SecurityScore,
				VerifiedContract: b.VerifiedContract,
			})
			out = append(out, b)
		}
	}
	return out
}

func decodeBalance(b *TokenBalance) {
	if b.Balance != 0 || b.RawBalance == "" {
		return
	}
	decimals := b.Decimals
	if decimals <= 0 {
		decimals = types.DefaultDecimals
	}
	if v, ok := types.Amount(b.RawBalance).Decode(decimals); ok {
		b.Balance = v
	}
}

// priceBalances resolves quotes for every balance in one batch and fills
// in PriceUSD, Change24h, and ValueUSD where a quote came back.
func priceBalances(ctx context.Context, resolver PriceResolver, balances []TokenBalance) error {
	seen := types.NewSet[string]()
	var refs []pricing.TokenRef
	for _, b := range balances {
		if b.Symbol == "" {
			continue
		}
		key := strings.ToUpper(b.Symbol) + "|" + strings.ToLower(b.TokenAddress)
		if seen.Has(key) {
			continue
		}
		seen.Add(key)

		network := ""
		if c, err := chains.Get(b.Chain); err == nil {
			network = c.PriceNetwork
		}
		refs = append(refs, pricing.TokenRef{
			Symbol:  b.Symbol,
			Address: b.TokenAddress,
			Network: network,
		})
	}

	quotes, err := resolver.Resolve(ctx, refs)
	if err != nil {
		return err
	}

	for i := range balances {
		quote, ok := quotes[strings.ToUpper(balances[i].Symbol)]
		if !ok {
			continue
		}
		price := quote.PriceUSD
		change := quote.ChangePercent24h
		value := price * balances[i].Balance

		balances[i].PriceUSD = &price
		balances[i].Change24h = &change
		balances[i].ValueUSD = &value
	}
	return nil
}
