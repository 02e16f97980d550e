package portfolio

import (
	"context"
	"time"
)

// ActivitySummary is the event emitted after a successful activity view,
// for downstream alerting or analytics.
type ActivitySummary struct {
	EventID      string    `json:"event_id"`
	Address      string    `json:"address"`
	GeneratedAt  time.Time `json:"generated_at"`
	Days         int       `json:"days"`
	Entries      int       `json:"entries"`
	Swaps        int       `json:"swaps"`
	ChainsFailed int       `json:"chains_failed"`
}

// ActivityNotifier delivers activity summaries to an external system.
// Notification failures are logged by the service, never surfaced to the
// caller of the view.
type ActivityNotifier interface {
	NotifyActivity(ctx context.Context, summary ActivitySummary) error
}

// AddressBook stores the user's saved wallet addresses.
type AddressBook interface {
	// SaveAddress adds an address to the book. Saving an already-present
	// address is a no-op.
	SaveAddress(ctx context.Context, address string) error

	// RemoveAddress deletes an address from the book.
	RemoveAddress(ctx context.Context, address string) error

	// ListAddresses returns every saved address.
	ListAddresses(ctx context.Context) ([]string, error)
}
