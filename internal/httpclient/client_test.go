package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pong struct {
	Value string `json:"value"`
}

func fastClient(base string, opts ...Option) *Client {
	opts = append([]Option{WithRetries(2, time.Millisecond), WithRateLimit(1000, 100)}, opts...)
	return New(base, opts...)
}

func TestGetJSON_DecodesAndSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ping", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, ContentTypeJSON, r.Header.Get(HeaderAccept))
		_ = json.NewEncoder(w).Encode(pong{Value: "ok"})
	}))
	defer srv.Close()

	c := fastClient(srv.URL+"/", WithHeader("X-API-Key", "secret"))
	var out pong
	err := c.GetJSON(context.Background(), "/v1/ping", url.Values{"symbol": {"BTCUSDT"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestPostJSON_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, ContentTypeJSON, r.Header.Get(HeaderContentType))
		var in pong
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(pong{Value: in.Value + "!"})
	}))
	defer srv.Close()

	var out pong
	err := fastClient(srv.URL).PostJSON(context.Background(), "/echo", pong{Value: "hi"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hi!", out.Value)
}

func TestPostJSONIdempotent_KeySurvivesRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "payout-7", r.Header.Get(HeaderIdempotencyKey))
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(pong{Value: "ok"})
	}))
	defer srv.Close()

	var out pong
	err := fastClient(srv.URL).PostJSONIdempotent(context.Background(), "/v1/payouts", "payout-7", pong{}, &out)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(pong{Value: "late"})
	}))
	defer srv.Close()

	var out pong
	err := fastClient(srv.URL).GetJSON(context.Background(), "/", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "late", out.Value)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetriesTooManyRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(pong{Value: "ok"})
	}))
	defer srv.Close()

	err := fastClient(srv.URL).GetJSON(context.Background(), "/", nil, &pong{})

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := fastClient(srv.URL).GetJSON(context.Background(), "/", nil, &pong{})

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, int32(3), calls.Load(), "first attempt plus two retries")
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unknown symbol", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := fastClient(srv.URL).GetJSON(context.Background(), "/", nil, &pong{})

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "unknown symbol")
	assert.Equal(t, int32(1), calls.Load())
}

func TestContextCancelledStopsRetrying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(srv.URL, WithRetries(5, time.Hour)).GetJSON(ctx, "/", nil, &pong{})

	assert.ErrorIs(t, err, context.Canceled)
}
