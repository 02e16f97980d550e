// Package spamguard classifies transactions, tokens, and NFTs as spam or
// noise using heuristic scoring. No external calls are made: every signal
// comes from the record itself or from provider-reported flags. Thresholds
// are explicit constructor parameters so they can be tuned without code
// changes, and each heuristic is a named pure function.
package spamguard

import (
	"strings"
	"unicode"

	"github.com/gcavalcante/walletfolio/internal/unify"
)

const (
	// DefaultSecurityScoreThreshold is the provider security score below
	// which a token contract is considered suspect.
	DefaultSecurityScoreThreshold = 50

	// DefaultNFTPointThreshold is the number of accumulated heuristic
	// points at which an NFT is classified as spam.
	DefaultNFTPointThreshold = 2

	// DefaultNFTTokenIDMaxLen is the token-id string length above which an
	// NFT earns a spam point.
	DefaultNFTTokenIDMaxLen = 50
)

// defaultDenylist holds the substrings that mark a symbol, name, or
// address as spam when matched case-insensitively.
var defaultDenylist = []string{
	"claim",
	"airdrop",
	"free",
	"reward",
	"bonus",
	"giveaway",
	"http://",
	"https://",
	"www.",
	".com",
	".io",
	".xyz",
	".net",
	"visit",
}

// TokenInput carries the token-level signals considered by the classifier.
type TokenInput struct {
	Symbol           string
	Name             string
	Address          string
	PossibleSpam     bool
	SecurityScore    *int
	VerifiedContract *bool
}

// NFTInput carries the NFT-level signals considered by the point system.
type NFTInput struct {
	TokenID            string
	Name               string
	Image              string
	VerifiedCollection bool
	PossibleSpam       bool
}

// Classifier applies the spam heuristics with a fixed set of thresholds.
type Classifier struct {
	securityScoreThreshold int
	nftPointThreshold      int
	nftTokenIDMaxLen       int
	denylist               []string
}

type config struct {
	securityScoreThreshold int
	nftPointThreshold      int
	nftTokenIDMaxLen       int
	denylist               []string
}

// Option tunes classifier thresholds.
type Option func(*config)

// WithSecurityScoreThreshold overrides the minimum acceptable provider
// security score.
func WithSecurityScoreThreshold(n int) Option {
	return func(c *config) {
		c.securityScoreThreshold = n
	}
}

// WithNFTPointThreshold overrides the NFT spam point threshold.
func WithNFTPointThreshold(n int) Option {
	return func(c *config) {
		c.nftPointThreshold = n
	}
}

// WithDenylist replaces the default denylist of suspicious substrings.
func WithDenylist(words []string) Option {
	return func(c *config) {
		c.denylist = words
	}
}

// New creates a Classifier with the default thresholds, adjusted by the
// given options.
func New(opts ...Option) *Classifier {
	cfg := config{
		securityScoreThreshold: DefaultSecurityScoreThreshold,
		nftPointThreshold:      DefaultNFTPointThreshold,
		nftTokenIDMaxLen:       DefaultNFTTokenIDMaxLen,
		denylist:               defaultDenylist,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Classifier{
		securityScoreThreshold: cfg.securityScoreThreshold,
		nftPointThreshold:      cfg.nftPointThreshold,
		nftTokenIDMaxLen:       cfg.nftTokenIDMaxLen,
		denylist:               cfg.denylist,
	}
}

// containsNonASCII reports whether the string holds any rune outside the
// ASCII range. Spam tokens routinely use lookalike Unicode characters to
// imitate legitimate symbols.
func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// matchesDenylist reports whether the lowercased string contains any of
// the denylisted substrings.
func matchesDenylist(s string, denylist []string) bool {
	lowered := strings.ToLower(s)
	for _, word := range denylist {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// isDataURI reports whether the image URL embeds its payload directly,
// a common trait of mass-minted spam NFTs.
func isDataURI(image string) bool {
	return strings.HasPrefix(strings.ToLower(image), "data:")
}

// IsSpamToken classifies a token using provider flags and the lookalike
// and denylist heuristics. Any single firing signal flags the token.
func (c *Classifier) IsSpamToken(in TokenInput) bool {
	if in.PossibleSpam {
		return true
	}

	if in.VerifiedContract != nil && !*in.VerifiedContract {
		return true
	}

	if in.SecurityScore != nil && *in.SecurityScore < c.securityScoreThreshold {
		return true
	}

	if containsNonASCII(in.Symbol) || containsNonASCII(in.Name) {
		return true
	}

	for _, s := range []string{in.Symbol, in.Name, in.Address} {
		if s != "" && matchesDenylist(s, c.denylist) {
			return true
		}
	}

	return false
}

// IsSpamTransaction classifies a unified transaction. Native transactions
// with a nonzero value are always exempt: real money movement is never
// hidden as spam.
func (c *Classifier) IsSpamTransaction(tx unify.Transaction) bool {
	if tx.Kind == unify.KindNative {
		if amount, ok := tx.DecodedAmount(); ok && amount > 0 {
			return false
		}
	}

	if c.IsSpamToken(TokenInput{
		Symbol:           tx.TokenSymbol,
		Name:             tx.TokenName,
		Address:          tx.TokenAddress,
		PossibleSpam:     tx.PossibleSpam,
		SecurityScore:    tx.SecurityScore,
		VerifiedContract: tx.VerifiedContract,
	}) {
		return true
	}

	return matchesDenylist(tx.From, c.denylist) || matchesDenylist(tx.To, c.denylist)
}

// ScoreNFT applies the NFT point system and returns the accumulated points
// together with the spam verdict. A verified collection short-circuits to
// not-spam; an explicit possible-spam flag short-circuits to spam.
func (c *Classifier) ScoreNFT(in NFTInput) (int, bool) {
	if in.VerifiedCollection {
		return 0, false
	}
	if in.PossibleSpam {
		return c.nftPointThreshold, true
	}

	points := 0
	if len(in.TokenID) > c.nftTokenIDMaxLen {
		points++
	}
	if in.Image == "" && in.Name == "" {
		points++
	}
	if in.Name != "" && matchesDenylist(in.Name, c.denylist) {
		points++
	}
	if isDataURI(in.Image) {
		points++
	}

	return points, points >= c.nftPointThreshold
}

// IsSpamNFT applies the NFT point system and returns only the verdict.
func (c *Classifier) IsSpamNFT(in NFTInput) bool {
	_, spam := c.ScoreNFT(in)
	return spam
}
