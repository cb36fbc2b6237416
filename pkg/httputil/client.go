package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/edgeflare/pgrest/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request identifier, generated when the
// caller did not set one.
const RequestIDHeader = "X-Request-Id"

// Transport performs one HTTP exchange. The query layer depends on this
// single operation only; connection pooling, timeouts and retries are
// the implementation's concern.
type Transport interface {
	Do(ctx context.Context, method, path string, body any, params url.Values, headers http.Header) (*Response, error)
}

// Response is the raw outcome of one exchange. Any status code is a
// successful exchange here; classifying 2xx vs error payloads is left
// to the caller.
type Response struct {
	Headers    http.Header
	Body       []byte
	StatusCode int
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// RetryConfig controls retry of failed exchanges. Only transport-level
// failures (connection errors, timeouts) are retried; a response with a
// non-2xx status is still a completed exchange and is returned as-is.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client is the default Transport. It joins paths against a base URL,
// marshals JSON payloads, and optionally retries and records metrics.
type Client struct {
	baseURL *url.URL
	hc      *http.Client
	logger  *zap.Logger
	retry   *RetryConfig
	metrics bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithLogger enables debug logging of each exchange.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetry enables exponential-backoff retry of transport failures.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = &cfg }
}

// WithMetrics enables Prometheus instrumentation of exchanges.
func WithMetrics() Option {
	return func(c *Client) { c.metrics = true }
}

// NewClient creates a Transport for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: u,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do performs one HTTP exchange against baseURL joined with path.
func (c *Client) Do(ctx context.Context, method, path string, body any, params url.Values, headers http.Header) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		switch v := body.(type) {
		case []byte:
			payload = v
		case string:
			payload = []byte(v)
		default:
			payload, err = json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal payload: %w", err)
			}
		}
	}

	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	operation := func() (*Response, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		for key, values := range headers {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		if reqBody != nil && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.New().String())
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if c.metrics {
				metrics.RequestErrors.WithLabelValues(method).Inc()
			}
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		if c.metrics {
			metrics.RequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
			metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		}
		if c.logger != nil {
			c.logger.Debug("http exchange",
				zap.String("method", method),
				zap.String("url", redactQuery(u)),
				zap.Int("status", resp.StatusCode),
				zap.Duration("latency", time.Since(start)),
			)
		}

		return &Response{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Headers:    resp.Header,
		}, nil
	}

	if c.retry == nil {
		return operation()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialBackoff
	b.MaxInterval = c.retry.MaxBackoff
	b.MaxElapsedTime = time.Duration(c.retry.MaxRetries) * c.retry.MaxBackoff

	var response *Response
	err := backoff.Retry(func() error {
		var opErr error
		response, opErr = operation()
		if opErr != nil && c.logger != nil {
			c.logger.Warn("retrying request", zap.String("url", u.Path), zap.Error(opErr))
		}
		return opErr
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}
	return response, nil
}

// redactQuery renders a URL with parameter values elided, so filter
// values never reach logs.
func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return u.String()
	}
	keys := make([]string, 0)
	for key := range u.Query() {
		keys = append(keys, key)
	}
	clone := *u
	clone.RawQuery = strings.Join(keys, ",")
	return clone.String()
}
