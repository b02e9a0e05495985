package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/PrizePool_Go/internal/logger"
)

// StatusError is returned for non-retryable 4xx responses and for 5xx
// responses that outlived the retries.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// Client is a JSON HTTP client with rate limiting and retries.
// It is safe for concurrent use.
type Client struct {
	http       *http.Client
	baseURL    string
	limiter    *rate.Limiter
	headers    map[string]string
	maxRetries int
	retryWait  time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit sets the limiter rate and burst
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithRetries sets the retry count and the initial backoff
func WithRetries(maxRetries int, wait time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryWait = wait
	}
}

// WithHeader adds a header to every request, e.g. an API key
func WithHeader(name, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.headers[name] = value
		}
	}
}

// New creates a Client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(DefaultRatePerSecond, DefaultBurst),
		headers:    make(map[string]string),
		maxRetries: DefaultMaxRetries,
		retryWait:  DefaultRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON performs a GET and decodes the JSON response into out
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}, out)
}

// PostJSON performs a POST with a JSON body and decodes the JSON response into out
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.PostJSONIdempotent(ctx, path, "", body, out)
}

// PostJSONIdempotent is PostJSON with an Idempotency-Key header, so retries and
// later resubmissions under the same key resolve to the same upstream object.
// An empty key sends no header.
func (c *Client) PostJSONIdempotent(ctx context.Context, path, key string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	target := c.baseURL + path
	return c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set(HeaderContentType, ContentTypeJSON)
		if key != "" {
			req.Header.Set(HeaderIdempotencyKey, key)
		}
		return req, nil
	}, out)
}

func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error), out any) error {
	log := logger.FromContext(ctx)
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Debug(LogMsgRetrying, "attempt", attempt, "error", lastErr)
			if err := c.sleep(ctx, attempt-1); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := build()
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set(HeaderAccept, ContentTypeJSON)
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			log.Warn(LogMsgRateLimited, "url", req.URL.Path, "attempt", attempt+1)
			lastErr = &StatusError{StatusCode: resp.StatusCode}
			continue
		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = readStatusError(resp)
			log.Warn(LogMsgServerError, "url", req.URL.Path, "status", resp.StatusCode)
			continue
		case resp.StatusCode >= http.StatusBadRequest:
			return readStatusError(resp)
		}

		return decode(resp, out)
	}

	log.Error(LogMsgRequestFailed, "retries", c.maxRetries, "error", lastErr)
	return fmt.Errorf("request failed after %d retries: %w", c.maxRetries, lastErr)
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readStatusError(resp *http.Response) *StatusError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// sleep waits 2^attempt * retryWait, returning early if ctx is done
func (c *Client) sleep(ctx context.Context, attempt int) error {
	wait := c.retryWait << attempt
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
