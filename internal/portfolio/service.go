package portfolio

import (
	"context"
	"errors"

	"github.com/gcavalcante/walletfolio/internal/activity"
	"github.com/gcavalcante/walletfolio/internal/pkg/resilience/retry"
	"github.com/gcavalcante/walletfolio/internal/pricing"
	"github.com/gcavalcante/walletfolio/internal/spamguard"

	"golang.org/x/time/rate"
)

var (
	// ErrAllChainsFailed is returned when every configured chain failed to
	// deliver data. Partial failures never produce this error.
	ErrAllChainsFailed = errors.New("all chains failed to load")

	// ErrSupersededRequest is returned when a newer request for the same
	// address was issued while this one was in flight. The stale result is
	// discarded rather than merged into the current view.
	ErrSupersededRequest = errors.New("request superseded by a newer one for the same address")

	// ErrNoAddressBook is returned by the address book operations when no
	// storage backend was configured.
	ErrNoAddressBook = errors.New("no address book configured")
)

// defaultConcurrencyLimit bounds how many chain requests are in flight at
// once, keeping the fan-out under provider rate limits.
const defaultConcurrencyLimit = 5

// PriceResolver is the pricing dependency as seen by this package.
type PriceResolver interface {
	Resolve(ctx context.Context, refs []pricing.TokenRef) (map[string]pricing.Quote, error)
}

// Service is the dashboard-facing entrypoint of the aggregation pipeline.
type Service interface {
	// ActivityView loads, unifies, prices, filters, and groups the
	// address's transaction history across every configured chain.
	ActivityView(ctx context.Context, address string) (ActivityView, error)

	// Balances aggregates the address's token and native balances across
	// every configured chain, pricing what it can.
	Balances(ctx context.Context, address string) (BalanceView, error)

	// NFTs collects the address's NFTs across every configured chain and
	// attaches a spam verdict to each.
	NFTs(ctx context.Context, address string) (NFTView, error)

	// Watch saves an address to the address book.
	Watch(ctx context.Context, address string) error

	// Unwatch removes an address from the address book.
	Unwatch(ctx context.Context, address string) error

	// SavedAddresses lists the address book's contents.
	SavedAddresses(ctx context.Context) ([]string, error)
}

type service struct {
	provider   ChainDataProvider
	prices     PriceResolver
	classifier *spamguard.Classifier
	chains     []string

	concurrencyLimit int
	limiter          *rate.Limiter
	retrier          retry.Retry
	hideSpam         bool
	activityOpts     []activity.Option

	notifier    ActivityNotifier
	addressBook AddressBook
	generations *generationTracker
}

var _ Service = (*service)(nil)

type config struct {
	concurrencyLimit int
	limiter          *rate.Limiter
	retrier          retry.Retry
	hideSpam         bool
	activityOpts     []activity.Option
	notifier         ActivityNotifier
	addressBook      AddressBook
}

// Option configures the service.
type Option func(*config)

// WithConcurrencyLimit bounds the number of chain requests in flight at
// once. Default: 5.
func WithConcurrencyLimit(n int) Option {
	return func(c *config) {
		c.concurrencyLimit = n
	}
}

// WithRateLimiter throttles outgoing chain requests across the whole
// fan-out. Default: unthrottled.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *config) {
		c.limiter = l
	}
}

// WithRetry wraps each chain fetch in the given retry policy.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retrier = r
	}
}

// WithHideSpam drops transfers the classifier flags as spam from the
// activity view instead of only counting them.
func WithHideSpam(hide bool) Option {
	return func(c *config) {
		c.hideSpam = hide
	}
}

// WithActivityOptions forwards options to the activity grouper (dust
// epsilon, within-day resort, location).
func WithActivityOptions(opts ...activity.Option) Option {
	return func(c *config) {
		c.activityOpts = opts
	}
}

// WithNotifier emits an ActivitySummary after each successful activity
// view.
func WithNotifier(n ActivityNotifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithAddressBook enables the saved-address operations.
func WithAddressBook(b AddressBook) Option {
	return func(c *config) {
		c.addressBook = b
	}
}

// New creates the portfolio service. The provider, price resolver, and
// classifier are required; chains lists the network identifiers to fan
// out across.
func New(provider ChainDataProvider, prices PriceResolver, classifier *spamguard.Classifier, chains []string, opts ...Option) *service {
	cfg := config{
		concurrencyLimit: defaultConcurrencyLimit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		provider:         provider,
		prices:           prices,
		classifier:       classifier,
		chains:           chains,
		concurrencyLimit: cfg.concurrencyLimit,
		limiter:          cfg.limiter,
		retrier:          cfg.retrier,
		hideSpam:         cfg.hideSpam,
		activityOpts:     cfg.activityOpts,
		notifier:         cfg.notifier,
		addressBook:      cfg.addressBook,
		generations:      newGenerationTracker(),
	}
}
