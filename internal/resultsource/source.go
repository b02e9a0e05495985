package resultsource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/logger"
	"github.com/osse101/PrizePool_Go/internal/utils"
)

// Source resolves the actual value of a contest's outcome
type Source interface {
	FetchActualValue(ctx context.Context, contest *domain.Contest) (decimal.Decimal, error)
}

// Registry routes a contest to the source registered for its category and
// remembers resolved values per contest, so a retried settlement scores against
// the same number.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	cache   *expirable.LRU[string, decimal.Decimal]
}

// NewRegistry creates an empty registry with a value cache of the given size and TTL
func NewRegistry(cacheSize int, ttl time.Duration) *Registry {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Registry{
		sources: make(map[string]Source),
		cache:   expirable.NewLRU[string, decimal.Decimal](cacheSize, nil, ttl),
	}
}

// Register binds a source to a category. Categories are matched case-insensitively.
func (r *Registry) Register(category string, src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[utils.NormalizeCategory(category)] = src
}

// Categories lists the categories that have a source
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sources))
	for c := range r.sources {
		out = append(out, c)
	}
	return out
}

// FetchActualValue implements Source
func (r *Registry) FetchActualValue(ctx context.Context, contest *domain.Contest) (decimal.Decimal, error) {
	log := logger.FromContext(ctx)
	key := contest.ID.String()

	if v, ok := r.cache.Get(key); ok {
		log.Debug(LogMsgCacheHit, "contestID", contest.ID, "value", v)
		return v, nil
	}

	category := utils.NormalizeCategory(contest.Category)
	r.mu.RLock()
	src, ok := r.sources[category]
	r.mu.RUnlock()
	if !ok {
		log.Warn(LogMsgNoSourceForType, "contestID", contest.ID, "category", category)
		return decimal.Zero, fmt.Errorf("%w: no source for category %q", domain.ErrResultUnavailable, contest.Category)
	}

	log.Info(LogMsgFetchingValue, "contestID", contest.ID, "category", category, "symbol", contest.ResultSymbol)
	v, err := src.FetchActualValue(ctx, contest)
	if err != nil {
		return decimal.Zero, err
	}

	r.cache.Add(key, v)
	return v, nil
}

// Forget drops a cached value, e.g. after a manual correction
func (r *Registry) Forget(contestID string) {
	r.cache.Remove(contestID)
}
