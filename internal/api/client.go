// ABOUTME: HTTP client wrapper for the HelpLine REST backend
// ABOUTME: Builds JSON requests against a base URL with optional bearer auth and normalized errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outgoing requests.
// An empty token means the request is sent without Authorization.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) string {
	return f(ctx)
}

// Client performs requests against the backend and exposes the typed call groups.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	logger *slog.Logger

	Auth           *AuthAPI
	Tickets        *TicketsAPI
	TicketMessages *TicketMessagesAPI
	Articles       *ArticlesAPI
	FAQ            *FAQAPI
	Users          *UsersAPI
	AI             *AIAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for baseURL. Trailing slashes are trimmed; an empty
// base sends paths as given.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: DefaultTimeout},
		logger: slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Tickets = &TicketsAPI{c: c}
	c.TicketMessages = &TicketMessagesAPI{c: c}
	c.Articles = &ArticlesAPI{c: c}
	c.FAQ = &FAQAPI{c: c}
	c.Users = &UsersAPI{c: c}
	c.AI = &AIAPI{c: c}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.base
}

// Get issues a GET with optional query params and decodes the response into out.
// Params with empty values are dropped.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, withQuery(c.url(path), params), nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.url(path), body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, c.url(path), body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.url(path), body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, c.url(path), nil, out)
}

// url joins the base and path, adding a leading slash to path when needed.
func (c *Client) url(path string) string {
	if c.base == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

func withQuery(rawURL string, params map[string]string) string {
	if len(params) == 0 {
		return rawURL
	}
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return rawURL
	}
	// Encode sorts by key.
	return rawURL + "?" + values.Encode()
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Caller cancellation is not a connectivity problem.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		c.logger.Debug("request failed", "method", method, "url", target, "error", err)
		return networkError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody map[string]any
		if len(bytes.TrimSpace(data)) > 0 {
			// A non-JSON error body just means no server message.
			_ = json.Unmarshal(data, &errBody)
		}
		return responseError(resp.StatusCode, errBody)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, target, err)
	}
	return nil
}
