package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	mw := AuthMiddleware(testAPIKey, nil, NewSuspiciousActivityDetector())(okHandler())

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"valid key", "/api/v1/contests", testAPIKey, http.StatusOK},
		{"missing key", "/api/v1/contests", "", http.StatusUnauthorized},
		{"wrong key", "/api/v1/contests", "nope", http.StatusUnauthorized},
		{"public health", "/healthz", "", http.StatusOK},
		{"public swagger", "/swagger/index.html", "", http.StatusOK},
		{"public metrics", "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuthMiddleware_EmptyConfiguredKeyRejects(t *testing.T) {
	mw := AuthMiddleware("", nil, NewSuspiciousActivityDetector())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(HeaderAPIKey, "")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	d := NewSuspiciousActivityDetector()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	d.lastResetTime = now

	assert.Equal(t, 1, d.RecordFailedAuth("10.0.0.1"))
	assert.Equal(t, 2, d.RecordFailedAuth("10.0.0.1"))
	assert.Equal(t, 1, d.RecordFailedAuth("10.0.0.2"))

	now = now.Add(FailedAuthWindow + time.Second)
	assert.Equal(t, 1, d.RecordFailedAuth("10.0.0.1"))
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"), "burst exhausted")
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per IP")
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := RateLimitMiddleware(nil, NewIPRateLimiter(0.001, 1))(okHandler())

	call := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("/api/v1/contests").Code)
	rec := call("/api/v1/contests")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, call("/healthz").Code, "health checks are never limited")
}

func TestRateLimitMiddleware_NilLimiterDisabled(t *testing.T) {
	mw := RateLimitMiddleware(nil, nil)(okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "203.0.113.5:5555", "", nil, "203.0.113.5"},
		{"untrusted forwarded ignored", "203.0.113.5:5555", "198.51.100.7", nil, "203.0.113.5"},
		{"trusted proxy", "10.0.0.1:80", "198.51.100.7, 10.0.0.9", []string{"10.0.0.1"}, "10.0.0.9"},
		{"trusted single hop", "10.0.0.1:80", "198.51.100.7", []string{"10.0.0.1"}, "198.51.100.7"},
		{"no port", "203.0.113.5", "", nil, "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
