// Package backends holds the HTTP clients for the specialised chemistry
// services and the completion fallback.
package backends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chemgpt/gateway/internal/infrastructure/monitoring/logging"
	apperrors "github.com/chemgpt/gateway/pkg/errors"
)

const userAgent = "chemgw/0.1.0"

// HTTPClient is a retrying JSON client for one backend service. Retries
// cover network errors and 5xx responses with exponential backoff and
// jitter; 4xx responses fail immediately.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	logger       logging.Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryMax sets the number of retries after the initial attempt.
func WithRetryMax(n int) Option {
	return func(c *HTTPClient) {
		c.retryMax = n
	}
}

// WithRetryWait sets the backoff window between retries.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *HTTPClient) {
		c.retryWaitMin = min
		c.retryWaitMax = max
	}
}

// WithLogger sets the logger; a nop logger is used otherwise.
func WithLogger(logger logging.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient validates the base URL and builds a client with the
// default retry policy.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidConfig, "invalid backend URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig,
			"backend URL scheme must be http or https, got %q", parsed.Scheme)
	}

	c := &HTTPClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logging.NewNopLogger(),
		retryMax:     2,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PostJSON sends body as JSON to path and returns the raw response body.
// The caller gets the payload verbatim; this client never reshapes what a
// backend returns.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "marshal request body")
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			c.logger.Debug("retrying backend call",
				logging.Int("attempt", attempt),
				logging.Duration("backoff", backoff),
				logging.String("url", fullURL))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, wrapContextErr(ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternal, "create request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("X-Request-ID", uuid.New().String())

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, wrapContextErr(ctx.Err())
			}
			c.logger.Warn("backend request failed",
				logging.String("url", fullURL),
				logging.Err(err))
			lastErr = apperrors.Wrap(err, apperrors.CodeBackendFailure, "backend request failed")
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeBackendFailure, "read backend response")
		}

		c.logger.Debug("backend call",
			logging.String("url", fullURL),
			logging.Int("status", resp.StatusCode),
			logging.Duration("duration", time.Since(start)))

		if resp.StatusCode >= 500 {
			lastErr = apperrors.Newf(apperrors.CodeBackendFailure,
				"backend returned %d: %s", resp.StatusCode, truncate(respBody, 256))
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, apperrors.Newf(apperrors.CodeBackendFailure,
				"backend returned %d: %s", resp.StatusCode, truncate(respBody, 256))
		}

		return respBody, nil
	}

	return nil, lastErr
}

// Ping issues a GET against the service root, used by readiness checks.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeBackendFailure, "backend unreachable")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return apperrors.Newf(apperrors.CodeBackendFailure, "backend returned %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) backoff(attempt int) time.Duration {
	backoff := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.retryWaitMax {
		backoff = c.retryWaitMax
	}
	jitter := time.Duration(rand.Int63n(int64(backoff / 4)))
	return backoff + jitter
}

func wrapContextErr(err error) error {
	if err == context.DeadlineExceeded {
		return apperrors.Wrap(err, apperrors.CodeBackendTimeout, "backend call timed out")
	}
	return apperrors.Wrap(err, apperrors.CodeBackendFailure, "backend call cancelled")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
