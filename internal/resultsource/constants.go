package resultsource

import "time"

// Defaults for the crypto price source
const (
	DefaultCryptoBaseURL = "https://api.binance.com"
	TickerPricePath      = "/api/v3/ticker/price"
	QuerySymbol          = "symbol"
)

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Minute
)

// Log messages
const (
	LogMsgCacheHit        = "Actual value served from cache"
	LogMsgFetchingValue   = "Fetching actual value"
	LogMsgNoSourceForType = "No result source registered for category"
)
