package payout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PrizePool_Go/internal/domain"
	"github.com/osse101/PrizePool_Go/internal/httpclient"
)

func newTestProcessor(url string) *HTTPProcessor {
	return NewHTTPProcessor(ProcessorConfig{
		BaseURL:       url,
		APIKey:        "sk_test",
		RatePerSecond: 1000,
		Burst:         10,
		MaxRetries:    1,
		RetryWait:     time.Millisecond,
	})
}

func TestHTTPProcessor_CreatePayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ProcessorPayoutsPath, r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get(ProcessorAPIKeyHeader))
		assert.Equal(t, "p-1", r.Header.Get(httpclient.HeaderIdempotencyKey))

		var body createPayoutBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(98450), body.Amount, "amounts travel in cents")
		assert.Equal(t, "USD", body.Currency)
		assert.Equal(t, "card_1", body.Destination)
		assert.Equal(t, "p-1", body.Metadata[MetadataKeyPayoutID])

		_ = json.NewEncoder(w).Encode(payoutResponse{ID: "po_1", Status: processorStatusPending})
	}))
	defer srv.Close()

	id, err := newTestProcessor(srv.URL).CreatePayout(context.Background(), ProcessorRequest{
		IdempotencyKey:  "p-1",
		NetAmount:       d("984.5"),
		Currency:        "USD",
		DestinationCard: "card_1",
		Metadata:        map[string]string{MetadataKeyPayoutID: "p-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "po_1", id)
}

func TestHTTPProcessor_CreatePayoutDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(payoutResponse{ID: "po_2", Status: processorStatusFailed})
	}))
	defer srv.Close()

	_, err := newTestProcessor(srv.URL).CreatePayout(context.Background(), ProcessorRequest{NetAmount: d("1")})

	assert.ErrorIs(t, err, domain.ErrProcessorDeclined)
}

func TestHTTPProcessor_CreatePayoutRejectedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid destination"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := newTestProcessor(srv.URL).CreatePayout(context.Background(), ProcessorRequest{NetAmount: d("1")})

	assert.ErrorIs(t, err, domain.ErrProcessorDeclined)
}

func TestHTTPProcessor_CreatePayoutServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestProcessor(srv.URL).CreatePayout(context.Background(), ProcessorRequest{NetAmount: d("1")})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProcessorDeclined, "an outage is not a decline")
}

func TestHTTPProcessor_GetPayoutStatus(t *testing.T) {
	statuses := map[string]string{
		"po_paid":    processorStatusPaid,
		"po_transit": processorStatusInTransit,
		"po_cancel":  processorStatusCanceled,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len(ProcessorPayoutsPath)+1:]
		status, ok := statuses[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(payoutResponse{ID: id, Status: status})
	}))
	defer srv.Close()
	p := newTestProcessor(srv.URL)
	ctx := context.Background()

	got, err := p.GetPayoutStatus(ctx, "po_paid")
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusPaid, got)

	got, err = p.GetPayoutStatus(ctx, "po_transit")
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusProcessing, got)

	got, err = p.GetPayoutStatus(ctx, "po_cancel")
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusFailed, got)

	_, err = p.GetPayoutStatus(ctx, "po_missing")
	assert.ErrorIs(t, err, domain.ErrPayoutNotFound)
}
