package cli

import (
	"context"

	"github.com/gcavalcante/walletfolio/internal/portfolio"

	"github.com/urfave/cli/v3"
)

// watchAddressCommand returns a CLI command that saves a wallet address to
// the address book.
//
// Usage example:
//
//	walletfolio watch --address 0xABC123...
func watchAddressCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Save a wallet address to the address book for quick access.",
		Usage:       "Saves an address. Must provide an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			return svc.Watch(ctx, c.String("address"))
		},
	}
}

// unwatchAddressCommand returns a CLI command that removes a wallet
// address from the address book.
//
// Usage example:
//
//	walletfolio unwatch --address 0xABC123...
func unwatchAddressCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "unwatch",
		Description: "Remove a wallet address from the address book.",
		Usage:       "Removes an address. Must provide an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			return svc.Unwatch(ctx, c.String("address"))
		},
	}
}

// savedAddressesCommand returns a CLI command that lists the saved wallet
// addresses.
func savedAddressesCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "saved",
		Description: "List every wallet address saved in the address book.",
		Usage:       "Prints the saved addresses as JSON.",
		Action: func(ctx context.Context, c *cli.Command) error {
			addresses, err := svc.SavedAddresses(ctx)
			if err != nil {
				return err
			}

			return printJSON(addresses)
		},
	}
}
