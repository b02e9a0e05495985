package resultsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/httpclient"
)

// CryptoPriceSource reads the latest spot price of a contest's symbol from a
// Binance-compatible ticker endpoint
type CryptoPriceSource struct {
	client *httpclient.Client
}

type tickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// NewCryptoPriceSource creates a crypto source over the given client.
// A nil client talks to DefaultCryptoBaseURL.
func NewCryptoPriceSource(client *httpclient.Client) *CryptoPriceSource {
	if client == nil {
		client = httpclient.New(DefaultCryptoBaseURL)
	}
	return &CryptoPriceSource{client: client}
}

// FetchActualValue implements Source
func (s *CryptoPriceSource) FetchActualValue(ctx context.Context, contest *domain.Contest) (decimal.Decimal, error) {
	symbol := strings.ToUpper(strings.TrimSpace(contest.ResultSymbol))
	if symbol == "" {
		return decimal.Zero, fmt.Errorf("%w: contest %s has no result symbol", domain.ErrResultUnavailable, contest.ID)
	}

	var tp tickerPrice
	if err := s.client.GetJSON(ctx, TickerPricePath, url.Values{QuerySymbol: {symbol}}, &tp); err != nil {
		return decimal.Zero, fmt.Errorf("%w: ticker %s: %v", domain.ErrResultUnavailable, symbol, err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(tp.Price))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: ticker %s returned price %q", domain.ErrResultUnavailable, symbol, tp.Price)
	}
	return price, nil
}
