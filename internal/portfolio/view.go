package portfolio

import (
	"context"
	"time"

	"github.com/gcavalcante/walletfolio/internal/activity"
	"github.com/gcavalcante/walletfolio/internal/chains"
	"github.com/gcavalcante/walletfolio/internal/pkg/logger"
	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/pricing"
	"github.com/gcavalcante/walletfolio/internal/unify"
	"github.com/gcavalcante/walletfolio/internal/wallet"

	"github.com/google/uuid"
)

// ActivityView is the grouped, classified, priced activity of one address.
type ActivityView struct {
	Address      string                   // checksummed form of the watched address
	Days         []activity.DateBucket    // newest day first
	Quotes       map[string]pricing.Quote // uppercased symbol -> quote; absent = unknown
	ChainsFailed int                      // chains that degraded to empty results
	HiddenSpam   int                      // transfers removed by the spam filter
}

// tokenRefs collects the unique tokens involved in the unified list, plus
// the native currency of every chain that contributed records, for one
// batched price resolution.
func tokenRefs(txs []unify.Transaction) []pricing.TokenRef {
	seen := types.NewSet[string]()
	var refs []pricing.TokenRef

	addRef := func(ref pricing.TokenRef) {
		key := ref.Symbol + "|" + ref.Address
		if seen.Has(key) {
			return
		}
		seen.Add(key)
		refs = append(refs, ref)
	}

	for _, tx := range txs {
		if tx.Kind == unify.KindERC20 && tx.TokenSymbol != "" {
			network := ""
			if c, err := chains.Get(tx.Chain); err == nil {
				network = c.PriceNetwork
			}
			addRef(pricing.TokenRef{
				Symbol:  tx.TokenSymbol,
				Address: tx.TokenAddress,
				Network: network,
			})
			continue
		}

		if c, err := chains.Get(tx.Chain); err == nil {
			addRef(pricing.TokenRef{Symbol: c.NativeSymbol})
		}
	}

	return refs
}

func (s *service) ActivityView(ctx context.Context, address string) (ActivityView, error) {
	addr, err := wallet.Parse(address)
	if err != nil {
		return ActivityView{}, err
	}

	generation := s.generations.Next(addr.Canonical)

	native, nativeFailed := fanOut(ctx, s.chains, s.concurrencyLimit, s.limiter, s.retrier, "native transactions",
		func(ctx context.Context, chain string) ([]unify.Transaction, error) {
			return s.provider.NativeTransactions(ctx, chain, addr.Canonical)
		})

	transfers, transfersFailed := fanOut(ctx, s.chains, s.concurrencyLimit, s.limiter, s.retrier, "token transfers",
		func(ctx context.Context, chain string) ([]unify.Transaction, error) {
			return s.provider.TokenTransfers(ctx, chain, addr.Canonical)
		})

	if !s.generations.IsLatest(addr.Canonical, generation) {
		return ActivityView{}, ErrSupersededRequest
	}

	totalFetches := 2 * len(s.chains)
	if totalFetches > 0 && nativeFailed+transfersFailed == totalFetches {
		return ActivityView{}, ErrAllChainsFailed
	}

	unified := unify.Merge(native, transfers)

	quotes, err := s.prices.Resolve(ctx, tokenRefs(unified))
	if err != nil {
		logger.Warn(ctx, "price resolution failed, rendering without quotes", "address", addr.Canonical, "error", err)
		quotes = map[string]pricing.Quote{}
	}

	hidden := 0
	if s.hideSpam {
		kept := make([]unify.Transaction, 0, len(unified))
		for _, tx := range unified {
			if s.classifier.IsSpamTransaction(tx) {
				hidden++
				continue
			}
			kept = append(kept, tx)
		}
		unified = kept
	}

	days := activity.Group(unified, addr.Canonical, s.activityOpts...)

	view := ActivityView{
		Address:      addr.Checksummed,
		Days:         days,
		Quotes:       quotes,
		ChainsFailed: max(nativeFailed, transfersFailed),
		HiddenSpam:   hidden,
	}

	s.notifyActivity(ctx, view)
	return view, nil
}

// notifyActivity emits a summary event when a notifier is configured.
// Delivery failures are logged and never fail the view.
func (s *service) notifyActivity(ctx context.Context, view ActivityView) {
	if s.notifier == nil {
		return
	}

	summary := ActivitySummary{
		EventID:      uuid.NewString(),
		Address:      view.Address,
		GeneratedAt:  time.Now().UTC(),
		Days:         len(view.Days),
		ChainsFailed: view.ChainsFailed,
	}
	for _, day := range view.Days {
		summary.Entries += len(day.Entries)
		for _, entry := range day.Entries {
			if entry.Category == activity.CategorySwapped {
				summary.Swaps++
			}
		}
	}

	if err := s.notifier.NotifyActivity(ctx, summary); err != nil {
		logger.Error(ctx, "activity notification failed",
			"address", view.Address,
			"event.id", summary.EventID,
			"error", err,
		)
	}
}
