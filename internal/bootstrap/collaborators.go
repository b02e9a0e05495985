package bootstrap

import (
	"log/slog"

	"github.com/osse101/PrizePool_Go/internal/config"
	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/httpclient"
	"github.com/osse101/PrizePool_Go/internal/payout"
	"github.com/osse101/PrizePool_Go/internal/resultsource"
)

// InitializeResultSources builds the registry settlement reads actual values from.
// Categories without a source settle only with a manual value.
func InitializeResultSources(cfg *config.Config) *resultsource.Registry {
	registry := resultsource.NewRegistry(cfg.ResultCacheSize, cfg.ResultCacheTTL)

	var opts []httpclient.Option
	if cfg.ResultSourceRate > 0 {
		opts = append(opts, httpclient.WithRateLimit(cfg.ResultSourceRate, 1))
	}
	if cfg.ResultSourceMaxRetries > 0 {
		opts = append(opts, httpclient.WithRetries(cfg.ResultSourceMaxRetries, httpclient.DefaultRetryWait))
	}
	crypto := resultsource.NewCryptoPriceSource(httpclient.New(cfg.CryptoSourceURL, opts...))
	registry.Register(domain.CategoryCrypto, crypto)
	slog.Info(LogMsgResultSourceRegistered, "category", domain.CategoryCrypto, "url", cfg.CryptoSourceURL)

	return registry
}

// InitializeProcessor builds the payment-processor client used for payouts
func InitializeProcessor(cfg *config.Config) payout.Processor {
	slog.Info(LogMsgProcessorConfigured, "url", cfg.ProcessorURL, "rate", cfg.ProcessorRate)
	return payout.NewHTTPProcessor(payout.ProcessorConfig{
		BaseURL:       cfg.ProcessorURL,
		APIKey:        cfg.ProcessorAPIKey,
		RatePerSecond: cfg.ProcessorRate,
		Burst:         1,
		MaxRetries:    cfg.ProcessorMaxRetries,
		RetryWait:     cfg.ProcessorRetryWait,
	})
}
