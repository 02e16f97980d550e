package main

import (
	"context"

	"github.com/gcavalcante/walletfolio/internal/config"
	"github.com/gcavalcante/walletfolio/internal/handlers/cli"
	"github.com/gcavalcante/walletfolio/internal/infra/chaindata/moralis"
	kafkaevents "github.com/gcavalcante/walletfolio/internal/infra/events/kafka"
	"github.com/gcavalcante/walletfolio/internal/infra/pricefeed/coinregistry"
	"github.com/gcavalcante/walletfolio/internal/infra/pricefeed/dexpairs"
	redisstorage "github.com/gcavalcante/walletfolio/internal/infra/storage/redis"
	"github.com/gcavalcante/walletfolio/internal/pkg/logger"
	"github.com/gcavalcante/walletfolio/internal/pkg/resilience/retry"
	"github.com/gcavalcante/walletfolio/internal/pkg/telemetry"
	transporthttp "github.com/gcavalcante/walletfolio/internal/pkg/transport/http"
	"github.com/gcavalcante/walletfolio/internal/pkg/transport/jsonrpc"
	"github.com/gcavalcante/walletfolio/internal/portfolio"
	"github.com/gcavalcante/walletfolio/internal/pricing"
	"github.com/gcavalcante/walletfolio/internal/spamguard"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.TelemetryEnable {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			panic(err)
		}
		defer shutdown(ctx)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()

	httpClient := transporthttp.NewClient(transporthttp.WithTimeout(cfg.HTTPTimeout))

	providerOpts := []moralis.Option{moralis.WithHTTPClient(httpClient)}
	for chain, endpoint := range cfg.RPCEndpoints {
		node := jsonrpc.NewClient(httpClient.StandardClient(), endpoint)
		providerOpts = append(providerOpts, moralis.WithNode(chain, node))
	}
	provider := moralis.NewClient(cfg.ChainDataBaseURL, cfg.ChainDataAPIKey, providerOpts...)

	primary := coinregistry.NewClient(cfg.PriceAPIBaseURL,
		coinregistry.WithAPIKey(cfg.PriceAPIKey),
		coinregistry.WithHTTPClient(httpClient),
	)
	pairs := dexpairs.NewClient(cfg.PairAPIBaseURL, dexpairs.WithHTTPClient(httpClient))

	pricingOpts := []pricing.Option{pricing.WithCacheTTL(cfg.PriceCacheTTL)}
	serviceOpts := []portfolio.Option{
		portfolio.WithConcurrencyLimit(cfg.ConcurrencyLimit),
		portfolio.WithRetry(retry.New(retry.WithAttempts(cfg.RetryAttempts))),
		portfolio.WithHideSpam(cfg.HideSpam),
	}

	// One Redis connection serves both the quote cache and the address
	// book.
	if cfg.RedisAddr != "" {
		redisClient, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal(ctx, "redis connection failed", "error", err)
		}
		defer redisClient.Close()

		pricingOpts = append(pricingOpts, pricing.WithCache(redisClient))
		serviceOpts = append(serviceOpts, portfolio.WithAddressBook(redisClient))
	}
	prices := pricing.New(primary, pairs, pricingOpts...)

	if cfg.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.ConcurrencyLimit)
		serviceOpts = append(serviceOpts, portfolio.WithRateLimiter(limiter))
	}
	if len(cfg.KafkaBrokers) > 0 {
		emitter := kafkaevents.NewEmitter(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer emitter.Close()

		serviceOpts = append(serviceOpts, portfolio.WithNotifier(emitter))
	}

	svc := portfolio.New(provider, prices, spamguard.New(), cfg.Chains, serviceOpts...)

	if err := cli.Run(ctx, svc); err != nil {
		logger.Fatal(ctx, "application terminated with an error", "error", err)
	}
}
