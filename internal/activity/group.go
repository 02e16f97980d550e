package activity

import (
	"slices"
	"time"

	"github.com/gcavalcante/walletfolio/internal/unify"
	"github.com/gcavalcante/walletfolio/internal/wallet"
)

const (
	// DefaultDustEpsilon is the decoded amount below which an ERC-20
	// transfer is considered dust (an approval artifact, not a real
	// transfer).
	DefaultDustEpsilon = 1e-6

	// DefaultSwapLegCap bounds how many legs of each direction a swap
	// entry carries. Extra legs of complex multi-hop swaps are dropped.
	DefaultSwapLegCap = 2
)

type config struct {
	dustEpsilon     float64
	swapLegCap      int
	resortWithinDay bool
	location        *time.Location
}

// Option tunes the grouping behavior.
type Option func(*config)

// WithDustEpsilon overrides the decoded-amount threshold below which an
// ERC-20 record counts as dust.
func WithDustEpsilon(eps float64) Option {
	return func(c *config) {
		c.dustEpsilon = eps
	}
}

// WithSwapLegCap overrides how many sent and received legs a swap entry
// keeps.
func WithSwapLegCap(n int) Option {
	return func(c *config) {
		c.swapLegCap = n
	}
}

// WithLocation sets the time zone used to derive calendar-day keys.
// Defaults to the process-local zone, matching how a user expects to see
// their own history grouped.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		c.location = loc
	}
}

// WithinDayResort re-sorts entries inside each date bucket by timestamp,
// newest first. By default entries keep hash-group emission order, which
// follows the overall descending-timestamp order of the input.
func WithinDayResort() Option {
	return func(c *config) {
		c.resortWithinDay = true
	}
}

// hashGroup holds all records sharing one transaction hash, in input order.
type hashGroup struct {
	hash    string
	records []unify.Transaction
}

// isDust reports whether the record is negligible: an ERC-20 transfer
// whose decoded amount is below the epsilon, or a native transfer whose
// raw value is zero. Unparseable values count as dust rather than
// propagating into classification.
func isDust(tx unify.Transaction, epsilon float64) bool {
	amount, ok := tx.DecodedAmount()
	if !ok {
		return true
	}

	if tx.Kind == unify.KindNative {
		return amount == 0
	}
	return amount < epsilon
}

// partitionByHash splits the input into hash groups, preserving both the
// first-seen order of hashes and the record order inside each group.
func partitionByHash(txs []unify.Transaction) []hashGroup {
	order := make([]string, 0, len(txs))
	byHash := make(map[string][]unify.Transaction, len(txs))

	for _, tx := range txs {
		if _, seen := byHash[tx.Hash]; !seen {
			order = append(order, tx.Hash)
		}
		byHash[tx.Hash] = append(byHash[tx.Hash], tx)
	}

	groups := make([]hashGroup, len(order))
	for i, hash := range order {
		groups[i] = hashGroup{hash: hash, records: byHash[hash]}
	}
	return groups
}

// classify resolves one hash group into display entries for the watched
// address. It returns nil when no record involves the address.
func classify(group hashGroup, watched string, cfg config) []Entry {
	var relevant []unify.Transaction
	for _, tx := range group.records {
		if tx.Involves(watched) {
			relevant = append(relevant, tx)
		}
	}
	if len(relevant) == 0 {
		return nil
	}

	var sent, received []unify.Transaction
	for _, tx := range relevant {
		if wallet.Equal(tx.From, watched) && !isDust(tx, cfg.dustEpsilon) {
			sent = append(sent, tx)
		}
		if wallet.Equal(tx.To, watched) && !isDust(tx, cfg.dustEpsilon) {
			received = append(received, tx)
		}
	}

	switch {
	case len(sent) > 0 && len(received) > 0:
		legs := make([]unify.Transaction, 0, 2*cfg.swapLegCap)
		legs = append(legs, sent[:min(len(sent), cfg.swapLegCap)]...)
		legs = append(legs, received[:min(len(received), cfg.swapLegCap)]...)
		return []Entry{{Category: CategorySwapped, Transactions: legs}}

	case len(sent) > 0:
		entries := make([]Entry, len(sent))
		for i, tx := range sent {
			entries[i] = Entry{Category: CategorySent, Transactions: []unify.Transaction{tx}}
		}
		return entries

	case len(received) > 0:
		entries := make([]Entry, len(received))
		for i, tx := range received {
			entries[i] = Entry{Category: CategoryReceived, Transactions: []unify.Transaction{tx}}
		}
		return entries

	default:
		// Only dust remains: approvals for tokens, bare interactions for
		// zero-value native calls.
		entries := make([]Entry, len(relevant))
		for i, tx := range relevant {
			category := CategoryApproved
			if tx.Kind == unify.KindNative {
				category = CategoryInteraction
			}
			entries[i] = Entry{Category: category, Transactions: []unify.Transaction{tx}}
		}
		return entries
	}
}

// Group converts a unified, descending-timestamp transaction list into
// ordered date buckets of display entries for the watched address.
//
// Hash groups are processed in first-seen order, so buckets and the
// entries within them follow the input's newest-first ordering. Groups
// with no record involving the watched address are skipped entirely.
func Group(txs []unify.Transaction, watched string, opts ...Option) []DateBucket {
	cfg := config{
		dustEpsilon: DefaultDustEpsilon,
		swapLegCap:  DefaultSwapLegCap,
		location:    time.Local,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		bucketOrder []string
		byDate      = make(map[string][]Entry)
	)

	for _, group := range partitionByHash(txs) {
		for _, entry := range classify(group, watched, cfg) {
			key := dateKey(entry.Timestamp(), cfg.location)
			if _, seen := byDate[key]; !seen {
				bucketOrder = append(bucketOrder, key)
			}
			byDate[key] = append(byDate[key], entry)
		}
	}

	buckets := make([]DateBucket, len(bucketOrder))
	for i, key := range bucketOrder {
		entries := byDate[key]
		if cfg.resortWithinDay {
			slices.SortStableFunc(entries, func(a, b Entry) int {
				return b.Timestamp().Compare(a.Timestamp())
			})
		}
		buckets[i] = DateBucket{Date: key, Entries: entries}
	}
	return buckets
}
