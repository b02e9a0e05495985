package payout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/httpclient"
)

// ProcessorRequest is what the payment processor needs to send money to a card.
// Requests sharing an IdempotencyKey resolve to the same processor payout.
type ProcessorRequest struct {
	IdempotencyKey  string
	NetAmount       decimal.Decimal
	Currency        string
	DestinationCard string
	Metadata        map[string]string
}

// Processor is the payment-processor collaborator
type Processor interface {
	CreatePayout(ctx context.Context, req ProcessorRequest) (string, error)
	GetPayoutStatus(ctx context.Context, processorPayoutID string) (domain.PayoutStatus, error)
}

// ProcessorConfig configures the HTTP processor client
type ProcessorConfig struct {
	BaseURL       string
	APIKey        string
	RatePerSecond float64
	Burst         int
	MaxRetries    int
	RetryWait     time.Duration
}

// HTTPProcessor talks to the processor's REST API.
// Amounts travel in minor units (cents).
type HTTPProcessor struct {
	client *httpclient.Client
}

type createPayoutBody struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Destination string            `json:"destination"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type payoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewHTTPProcessor creates a processor client from config
func NewHTTPProcessor(cfg ProcessorConfig) *HTTPProcessor {
	opts := []httpclient.Option{
		httpclient.WithHeader(ProcessorAPIKeyHeader, bearer(cfg.APIKey)),
	}
	if cfg.RatePerSecond > 0 {
		opts = append(opts, httpclient.WithRateLimit(cfg.RatePerSecond, max(cfg.Burst, 1)))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, httpclient.WithRetries(cfg.MaxRetries, cfg.RetryWait))
	}
	return &HTTPProcessor{client: httpclient.New(cfg.BaseURL, opts...)}
}

func bearer(key string) string {
	if key == "" {
		return ""
	}
	return ProcessorAPIKeyPrefix + key
}

// CreatePayout submits a payout and returns the processor's payout id
func (p *HTTPProcessor) CreatePayout(ctx context.Context, req ProcessorRequest) (string, error) {
	body := createPayoutBody{
		Amount:      req.NetAmount.Shift(2).Round(0).IntPart(),
		Currency:    req.Currency,
		Destination: req.DestinationCard,
		Metadata:    req.Metadata,
	}

	var resp payoutResponse
	if err := p.client.PostJSONIdempotent(ctx, ProcessorPayoutsPath, req.IdempotencyKey, body, &resp); err != nil {
		if isRejection(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrProcessorDeclined, err)
		}
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: empty payout id", domain.ErrProcessorUnavailable)
	}
	if mapProcessorStatus(resp.Status) == domain.PayoutStatusFailed {
		return "", fmt.Errorf("%w: %s", domain.ErrProcessorDeclined, resp.ID)
	}
	return resp.ID, nil
}

// isRejection is true for a 4xx answer other than rate limiting
func isRejection(err error) bool {
	var se *httpclient.StatusError
	return errors.As(err, &se) &&
		se.StatusCode >= http.StatusBadRequest &&
		se.StatusCode < http.StatusInternalServerError &&
		se.StatusCode != http.StatusTooManyRequests
}

// GetPayoutStatus returns the mapped status of a processor payout
func (p *HTTPProcessor) GetPayoutStatus(ctx context.Context, processorPayoutID string) (domain.PayoutStatus, error) {
	var resp payoutResponse
	err := p.client.GetJSON(ctx, ProcessorPayoutsPath+"/"+url.PathEscape(processorPayoutID), nil, &resp)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return "", fmt.Errorf("%w: processor has no payout %s", domain.ErrPayoutNotFound, processorPayoutID)
		}
		return "", err
	}
	return mapProcessorStatus(resp.Status), nil
}

func mapProcessorStatus(status string) domain.PayoutStatus {
	switch status {
	case processorStatusPaid:
		return domain.PayoutStatusPaid
	case processorStatusFailed, processorStatusCanceled:
		return domain.PayoutStatusFailed
	case processorStatusPending, processorStatusInTransit:
		return domain.PayoutStatusProcessing
	default:
		return domain.PayoutStatusProcessing
	}
}
