// Package upstream implements the HTTP client for the marketplace API
// boundary. The boundary is opaque: every response arrives in the shared
// envelope {success, message?, data, meta?} and is decoded here once, so the
// rest of the gateway only ever sees domain types and domain errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/localmart/storefront-gateway/internal/api/metrics"
	"github.com/localmart/storefront-gateway/internal/core/domain"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 2
	retryWaitMin      = 250 * time.Millisecond
	retryWaitMax      = 2 * time.Second
)

// Config captures the settings for the boundary client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client is the shared transport for all boundary gateways. GET requests
// are retried on transport errors and 5xx responses; mutations are sent
// exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// New builds a Client with a pooled transport.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// envelope is the boundary's shared response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    *meta           `json:"meta,omitempty"`
}

// meta is the boundary's pagination block.
type meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func (m *meta) toPage() domain.Page {
	if m == nil {
		return domain.Page{}
	}
	return domain.Page{Page: m.Page, Limit: m.Limit, Total: m.Total, TotalPages: m.TotalPages}
}

// get performs an authenticated-or-anonymous GET and decodes the envelope.
// Transport failures and 5xx responses are retried with capped backoff.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string) (*envelope, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := retryWaitMin << uint(attempt-1)
			if wait > retryWaitMax {
				wait = retryWaitMax
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, ctx.Err())
			}
		}

		env, err := c.roundTrip(ctx, http.MethodGet, path, query, nil, token)
		if err == nil {
			return env, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// send performs a non-idempotent request (POST/PATCH/DELETE) exactly once.
func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*envelope, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}
	return c.roundTrip(ctx, method, path, nil, payload, token)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (env *envelope, err error) {
	defer func() {
		metrics.UpstreamRequestsTotal.WithLabelValues(resourceLabel(path), resultLabel(err)).Inc()
	}()
	return c.doRoundTrip(ctx, method, path, query, body, token)
}

func (c *Client) doRoundTrip(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed envelope from an error status still maps below; only a
		// malformed success payload is fatal.
		if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil && resp.StatusCode < 400 {
			return nil, fmt.Errorf("%w: decode envelope: %v", domain.ErrUpstream, jsonErr)
		}
	}

	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, env.Message)
	}
	if !env.Success && env.Message != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, env.Message)
	}
	return &env, nil
}

// statusError maps a boundary status code to a domain sentinel, keeping the
// boundary-provided message when one exists.
func statusError(status int, message string) error {
	var base error
	switch {
	case status == http.StatusUnauthorized:
		base = domain.ErrSessionExpired
	case status == http.StatusForbidden:
		base = domain.ErrForbidden
	case status == http.StatusNotFound:
		base = domain.ErrNotFound
	case status >= 500:
		base = domain.ErrUnavailable
	default:
		base = domain.ErrUpstream
	}
	if message == "" {
		return fmt.Errorf("%w: status %d", base, status)
	}
	return fmt.Errorf("%w: %s", base, message)
}

// retryable reports whether a GET may be re-issued: transport failures and
// 5xx responses only. Auth and client errors are final.
func retryable(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}

// resourceLabel reduces a request path to its first segment, keeping the
// metric's cardinality bounded.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrForbidden):
		return "auth"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Ping hits the boundary's health endpoint anonymously. Used by the
// readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/health", nil, "")
	return err
}

// decodeData unmarshals the envelope's data field into out.
func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: empty data", domain.ErrUpstream)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", domain.ErrUpstream, err)
	}
	return nil
}

// listQuery builds the shared page/limit/search query block.
func listQuery(page, limit int, search string) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	return q
}
