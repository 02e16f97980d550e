package redis

import (
	"context"
	"fmt"

	"github.com/gcavalcante/walletfolio/internal/portfolio"
)

// addressBookPrefix is the base key prefix for saved wallet addresses.
const addressBookPrefix = "addressbook"

// addressBookKey returns the Redis key holding the saved address set.
//
// Format: "addressbook:saved"
func addressBookKey() string {
	return fmt.Sprintf("%s:saved", addressBookPrefix)
}

// SaveAddress implements the portfolio.AddressBook interface using a Redis
// set, so saving an already-present address is naturally a no-op.
func (c *client) SaveAddress(ctx context.Context, address string) error {
	return c.conn.SAdd(ctx, addressBookKey(), address).Err()
}

// RemoveAddress implements the portfolio.AddressBook interface. Removing
// an address that was never saved is not an error.
func (c *client) RemoveAddress(ctx context.Context, address string) error {
	return c.conn.SRem(ctx, addressBookKey(), address).Err()
}

// ListAddresses implements the portfolio.AddressBook interface, returning
// every saved address in set order.
func (c *client) ListAddresses(ctx context.Context) ([]string, error) {
	return c.conn.SMembers(ctx, addressBookKey()).Result()
}

// Compile-time assertion to ensure *client satisfies the portfolio.AddressBook interface
var _ portfolio.AddressBook = new(client)
