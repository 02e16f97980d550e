package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/gcavalcante/walletfolio/internal/portfolio"

	"github.com/urfave/cli/v3"
)

// printJSON renders the view to stdout for piping into jq or a UI layer.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// addressFlag is the required wallet address flag shared by the view
// commands.
func addressFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "address",
		Usage:    "Wallet address to load (0x-prefixed hex)",
		Required: true,
	}
}

// activityCommand returns a CLI command that prints the grouped,
// classified activity of an address across every configured chain.
//
// Usage example:
//
//	walletfolio activity --address 0xABC123...
func activityCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "activity",
		Description: "Load, unify, price, and group the address's transaction history across all chains.",
		Usage:       "Prints the activity view as JSON. Must provide an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			view, err := svc.ActivityView(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return printJSON(view)
		},
	}
}

// balancesCommand returns a CLI command that prints the address's priced
// token balances across every configured chain.
func balancesCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "balances",
		Description: "Aggregate and price the address's token and native balances across all chains.",
		Usage:       "Prints the balance view as JSON. Must provide an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			view, err := svc.Balances(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return printJSON(view)
		},
	}
}

// nftsCommand returns a CLI command that prints the address's NFTs with
// their spam verdicts.
func nftsCommand(svc portfolio.Service) *cli.Command {
	return &cli.Command{
		Name:        "nfts",
		Description: "Collect the address's NFTs across all chains, each scored for spam.",
		Usage:       "Prints the NFT view as JSON. Must provide an address.",
		Flags:       []cli.Flag{addressFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			view, err := svc.NFTs(ctx, c.String("address"))
			if err != nil {
				return err
			}

			return printJSON(view)
		},
	}
}
