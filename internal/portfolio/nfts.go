package portfolio

import (
	"context"
	"sort"

	"github.com/gcavalcante/walletfolio/internal/spamguard"
	"github.com/gcavalcante/walletfolio/internal/wallet"
)

// NFTView lists the address's NFTs across every configured chain, each
// carrying its spam verdict.
type NFTView struct {
	Address      string
	NFTs         []NFT
	HiddenSpam   int // NFTs removed when spam hiding is enabled
	ChainsFailed int
}

func (s *service) NFTs(ctx context.Context, address string) (NFTView, error) {
	addr, err := wallet.Parse(address)
	if err != nil {
		return NFTView{}, err
	}

	perChain, failed := fanOut(ctx, s.chains, s.concurrencyLimit, s.limiter, s.retrier, "nfts",
		func(ctx context.Context, chain string) ([]NFT, error) {
			return s.provider.NFTs(ctx, chain, addr.Canonical)
		})

	if len(s.chains) > 0 && failed == len(s.chains) {
		return NFTView{}, ErrAllChainsFailed
	}

	chainIDs := make([]string, 0, len(perChain))
	for chain := range perChain {
		chainIDs = append(chainIDs, chain)
	}
	sort.Strings(chainIDs)

	view := NFTView{
		Address:      addr.Checksummed,
		ChainsFailed: failed,
	}
	for _, chain := range chainIDs {
		for _, nft := range perChain[chain] {
			nft.Chain = chain
			nft.SpamPoints, nft.Spam = s.classifier.ScoreNFT(spamguard.NFTInput{
				TokenID:            nft.TokenID,
				Name:               nft.Name,
				Image:              nft.Image,
				VerifiedCollection: nft.VerifiedCollection,
				PossibleSpam:       nft.PossibleSpam,
			})
			if s.hideSpam && nft.Spam {
				view.HiddenSpam++
				continue
			}
			view.NFTs = append(view.NFTs, nft)
		}
	}

	return view, nil
}
