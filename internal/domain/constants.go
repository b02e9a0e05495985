package domain

// Contest category constants used to route result lookups
const (
	CategoryCrypto    = "crypto"
	CategoryStocks    = "stocks"
	CategorySports    = "sports"
	CategoryEconomics = "economics"
)

// TierIDPrefix prefixes generated slot identifiers ("slot-1", "slot-2", ...)
const TierIDPrefix = "slot-"

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)
