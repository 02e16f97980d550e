// Package config loads and validates the application configuration from
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gcavalcante/walletfolio/internal/chains"
	"github.com/gcavalcante/walletfolio/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

func init() {
	// The "chain" tag restricts a field to identifiers known to the
	// chain registry, so a typo in WALLETFOLIO_CHAINS fails Load
	// instead of surfacing as provider errors at request time.
	err := validator.RegisterValidation("chain", func(value string) bool {
		_, err := chains.Get(value)
		return err == nil
	})
	if err != nil {
		panic(err)
	}
}

// RPCEndpoints maps chain identifiers to JSON-RPC node URLs. It implements
// envconfig.Decoder because the library's built-in map syntax splits pairs
// on ":", which URLs contain.
//
// Format: "eth=https://node-1.example.com,base=https://node-2.example.com"
type RPCEndpoints map[string]string

func (r *RPCEndpoints) Decode(value string) error {
	endpoints := make(RPCEndpoints)
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		chain, endpoint, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("malformed rpc endpoint pair %q, want chain=url", pair)
		}
		endpoints[chain] = endpoint
	}

	*r = endpoints
	return nil
}

// Config carries every tunable of the walletfolio application. Values come
// from WALLETFOLIO_-prefixed environment variables.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ServiceName identifies this instance in telemetry. Telemetry is
	// enabled only when explicitly requested.
	ServiceName     string `envconfig:"SERVICE_NAME" default:"walletfolio"`
	TelemetryEnable bool   `envconfig:"TELEMETRY_ENABLE" default:"false"`

	// Chain data provider (Moralis-compatible REST API).
	ChainDataBaseURL string `envconfig:"CHAIN_DATA_BASE_URL" default:"https://deep-index.moralis.io/api/v2.2" validate:"required,url"`
	ChainDataAPIKey  string `envconfig:"CHAIN_DATA_API_KEY" validate:"required"`

	// RPCEndpoints lists the JSON-RPC nodes used for native balance
	// lookups, keyed by chain identifier.
	RPCEndpoints RPCEndpoints `envconfig:"RPC_ENDPOINTS"`

	// Price sources.
	PriceAPIBaseURL string        `envconfig:"PRICE_API_BASE_URL" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
	PriceAPIKey     string        `envconfig:"PRICE_API_KEY"`
	PairAPIBaseURL  string        `envconfig:"PAIR_API_BASE_URL" default:"https://api.dexscreener.com/latest/dex" validate:"required,url"`
	PriceCacheTTL   time.Duration `envconfig:"PRICE_CACHE_TTL" default:"1m"`

	// Chains lists the network identifiers to fan out across.
	Chains []string `envconfig:"CHAINS" default:"eth,polygon,bsc,arbitrum,optimism,base" validate:"required,min=1,dive,chain"`

	// Fan-out tuning.
	ConcurrencyLimit  int           `envconfig:"CONCURRENCY_LIMIT" default:"5" validate:"gt=0"`
	RequestsPerSecond float64       `envconfig:"REQUESTS_PER_SECOND" default:"0" validate:"gte=0"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	RetryAttempts     uint          `envconfig:"RETRY_ATTEMPTS" default:"3"`

	// HideSpam removes flagged transfers and NFTs from views instead of
	// only counting them.
	HideSpam bool `envconfig:"HIDE_SPAM" default:"true"`

	// Redis backs the quote cache and the address book when configured.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Kafka publishes activity summaries when brokers are configured.
	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"KAFKA_TOPIC" default:"walletfolio.activity"`
}

// envPrefix namespaces every environment variable read by Load.
const envPrefix = "WALLETFOLIO"

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
