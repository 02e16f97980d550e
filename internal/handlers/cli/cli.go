// Package cli exposes the walletfolio pipeline as a command-line
// application.
package cli

import (
	"context"
	"os"

	"github.com/gcavalcante/walletfolio/internal/portfolio"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the walletfolio CLI application.
//
// It registers all available commands:
//
//   - `activity`: Prints the grouped activity view for an address.
//   - `balances`: Prints the priced balance sheet for an address.
//   - `nfts`: Prints the NFTs held by an address with spam verdicts.
//   - `watch`: Saves an address to the address book.
//   - `unwatch`: Removes an address from the address book.
//   - `saved`: Lists the saved addresses.
func Run(ctx context.Context, svc portfolio.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletfolio",
		Description:           "Command-line interface for the walletfolio multi-chain wallet dashboard.",
		Usage:                 "walletfolio [command] [flags]",
		Commands: []*cli.Command{
			activityCommand(svc),
			balancesCommand(svc),
			nftsCommand(svc),
			watchAddressCommand(svc),
			unwatchAddressCommand(svc),
			savedAddressesCommand(svc),
		},
	}

	return app.Run(ctx, os.Args)
}
