package moralis

import (
	"strconv"
	"time"

	"github.com/gcavalcante/walletfolio/internal/pkg/types"
	"github.com/gcavalcante/walletfolio/internal/portfolio"
	"github.com/gcavalcante/walletfolio/internal/unify"
)

type (
	// transactionResponse is one native transaction as returned by the
	// provider's transaction history endpoint.
	transactionResponse struct {
		Hash           string `json:"hash"`
		FromAddress    string `json:"from_address"`
		ToAddress      string `json:"to_address"`
		Value          string `json:"value"`
		BlockTimestamp string `json:"block_timestamp"`
	}

	// transferResponse is one ERC-20 transfer record, including the
	// provider's spam signals.
	transferResponse struct {
		TransactionHash  string `json:"transaction_hash"`
		FromAddress      string `json:"from_address"`
		ToAddress        string `json:"to_address"`
		Value            string `json:"value"`
		BlockTimestamp   string `json:"block_timestamp"`
		TokenSymbol      string `json:"token_symbol"`
		TokenName        string `json:"token_name"`
		TokenLogo        string `json:"token_logo"`
		TokenDecimals    string `json:"token_decimals"`
		Address          string `json:"address"`
		PossibleSpam     bool   `json:"possible_spam"`
		SecurityScore    *int   `json:"security_score"`
		VerifiedContract *bool  `json:"verified_contract"`
	}

	// balanceResponse is one ERC-20 holding from the token balances
	// endpoint.
	balanceResponse struct {
		TokenAddress     string `json:"token_address"`
		Symbol           string `json:"symbol"`
		Name             string `json:"name"`
		Logo             string `json:"logo"`
		Decimals         int    `json:"decimals"`
		Balance          string `json:"balance"`
		PossibleSpam     bool   `json:"possible_spam"`
		SecurityScore    *int   `json:"security_score"`
		VerifiedContract *bool  `json:"verified_contract"`
	}

	// nftResponse is one NFT from the wallet NFTs endpoint. Metadata
	// fields the provider could not normalize come back empty.
	nftResponse struct {
		TokenAddress       string `json:"token_address"`
		TokenID            string `json:"token_id"`
		Name               string `json:"name"`
		PossibleSpam       bool   `json:"possible_spam"`
		VerifiedCollection bool   `json:"verified_collection"`
		NormalizedMetadata struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Image       string `json:"image"`
		} `json:"normalized_metadata"`
		FloorPriceUSD string `json:"floor_price_usd"`
	}

	// page is the cursor-paginated envelope the provider wraps list
	// results in.
	page[T any] struct {
		Cursor string `json:"cursor"`
		Result []T    `json:"result"`
	}
)

// parseBlockTimestamp accepts the provider's RFC 3339 block timestamps,
// with or without fractional seconds. Unparseable values produce the zero
// time so the record sorts last instead of being dropped.
func parseBlockTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func (t transactionResponse) toTransaction() unify.Transaction {
	return unify.Transaction{
		Hash:      t.Hash,
		From:      t.FromAddress,
		To:        t.ToAddress,
		Value:     types.Amount(t.Value),
		Timestamp: parseBlockTimestamp(t.BlockTimestamp),
	}
}

func (t transferResponse) toTransaction() unify.Transaction {
	decimals, err := strconv.Atoi(t.TokenDecimals)
	if err != nil {
		decimals = 0 // unknown, decoded with the default scale
	}

	return unify.Transaction{
		Hash:             t.TransactionHash,
		From:             t.FromAddress,
		To:               t.ToAddress,
		Value:            types.Amount(t.Value),
		Timestamp:        parseBlockTimestamp(t.BlockTimestamp),
		TokenSymbol:      t.TokenSymbol,
		TokenName:        t.TokenName,
		TokenLogo:        t.TokenLogo,
		TokenDecimals:    decimals,
		TokenAddress:     t.Address,
		PossibleSpam:     t.PossibleSpam,
		SecurityScore:    t.SecurityScore,
		VerifiedContract: t.VerifiedContract,
	}
}

func (b balanceResponse) toTokenBalance() portfolio.TokenBalance {
	return portfolio.TokenBalance{
		TokenAddress:     b.TokenAddress,
		Symbol:           b.Symbol,
		Name:             b.Name,
		Logo:             b.Logo,
		Decimals:         b.Decimals,
		RawBalance:       types.Amount(b.Balance),
		PossibleSpam:     b.PossibleSpam,
		SecurityScore:    b.SecurityScore,
		VerifiedContract: b.VerifiedContract,
	}
}

func (n nftResponse) toNFT() portfolio.NFT {
	name := n.NormalizedMetadata.Name
	if name == "" {
		name = n.Name
	}

	var floor *float64
	if v, err := strconv.ParseFloat(n.FloorPriceUSD, 64); err == nil {
		floor = &v
	}

	return portfolio.NFT{
		ContractAddress:    n.TokenAddress,
		TokenID:            n.TokenID,
		Name:               name,
		Description:        n.NormalizedMetadata.Description,
		Image:              n.NormalizedMetadata.Image,
		FloorPriceUSD:      floor,
		VerifiedCollection: n.VerifiedCollection,
		PossibleSpam:       n.PossibleSpam,
	}
}
