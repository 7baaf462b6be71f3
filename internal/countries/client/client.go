// Package client fetches country payloads from the restcountries.com v3.1 API.
// It returns raw JSON bytes; decoding and validation live in the ingest
// package so payloads can be cached as received.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"worldranks/internal/countries/metrics"
	"worldranks/internal/countries/models"
	"worldranks/pkg/platform/circuit"
	"worldranks/pkg/platform/sentinel"
	pstrings "worldranks/pkg/platform/strings"
)

// DefaultBaseURL is the public restcountries v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

// Operation names used in errors, logs and metric labels.
const (
	OpList       = "list"
	OpDetail     = "detail"
	OpNeighbours = "neighbours"
)

const (
	listFields      = "flags,name,population,area,region,subregion,cca3,independent,unMember"
	neighbourFields = "name,flags,cca3"
	maxBodyBytes    = 16 << 20
)

// Client is a restcountries HTTP client guarded by a circuit breaker.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuit.Breaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: circuit.New("restcountries"),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAll fetches every country with the overview fields.
func (c *Client) ListAll(ctx context.Context) ([]byte, error) {
	return c.get(ctx, OpList, "/all?fields="+listFields)
}

// Detail fetches the full record for one country. The API answers with a
// one-element array.
func (c *Client) Detail(ctx context.Context, code models.CCA3) ([]byte, error) {
	return c.get(ctx, OpDetail, "/alpha/"+code.String())
}

// Neighbours fetches the reduced records for codes in a single request.
// Callers skip the call when there are no codes.
func (c *Client) Neighbours(ctx context.Context, codes []models.CCA3) ([]byte, error) {
	if len(codes) == 0 {
		return []byte("[]"), nil
	}
	raw := make([]string, len(codes))
	for i, code := range codes {
		raw[i] = code.String()
	}
	return c.get(ctx, OpNeighbours, "/alpha?fields="+neighbourFields+"&codes="+pstrings.JoinDistinct(raw, ","))
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	if !c.breaker.Allow() {
		c.metrics.IncrementUpstreamError(op, string(ErrorProviderOutage))
		return nil, NewUpstreamError(ErrorProviderOutage, op, "circuit open", sentinel.ErrUnavailable)
	}

	start := time.Now()
	body, err := c.do(ctx, op, path)
	c.metrics.ObserveUpstreamLatency(op, time.Since(start))

	if err != nil {
		category := CategoryOf(err)
		c.metrics.IncrementUpstreamError(op, string(category))
		if IsRetryable(err) {
			c.recordFailure(ctx, op)
		} else {
			c.recordSuccess(ctx)
		}
		c.logger.WarnContext(ctx, "country api call failed",
			"operation", op,
			"category", category,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	c.recordSuccess(ctx)
	return body, nil
}

func (c *Client) do(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, NewUpstreamError(ErrorInternal, op, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, NewUpstreamError(ErrorTimeout, op, "request timed out", err)
		}
		return nil, NewUpstreamError(ErrorProviderOutage, op, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, NewUpstreamError(ErrorTimeout, op, "reading response timed out", err)
		}
		return nil, NewUpstreamError(ErrorProviderOutage, op, "failed to read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewUpstreamError(ErrorNotFound, op, "not found", sentinel.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewUpstreamError(ErrorRateLimited, op, "rate limited", nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, NewUpstreamError(ErrorProviderOutage, op, fmt.Sprintf("status %d", resp.StatusCode), nil)
	default:
		return nil, NewUpstreamError(ErrorBadData, op, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
}

func (c *Client) recordFailure(ctx context.Context, op string) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.metrics.IncrementBreakerTransition("opened")
		c.logger.ErrorContext(ctx, "country api circuit opened", "operation", op)
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.metrics.IncrementBreakerTransition("closed")
		c.logger.InfoContext(ctx, "country api circuit closed")
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
