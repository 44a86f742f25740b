package client

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

	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/printmarket-dev/printmarket/internal/cli/session"
)

// protectedPrefixes lists the paths that are never sent without a token
var protectedPrefixes = []string{
	"/api/jobs",
	"/api/uploads",
	"/api/profiles",
	"/api/auth/logout",
}

// Client represents an HTTP client for the printing marketplace API
type Client struct {
	baseURL   string
	store     session.Store
	http      *resty.Client
	logger    zerolog.Logger
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent sets the User-Agent header sent on every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new API client for the backend at baseURL
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    resty.New(),
		logger:  log.Logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http.SetBaseURL(c.baseURL)
	c.http.SetLogger(restyLogger{c.logger})
	if c.userAgent != "" {
		c.http.SetHeader("User-Agent", c.userAgent)
	}

	return c
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the session store the client reads its token from
func (c *Client) Store() session.Store {
	return c.store
}

// FilePart is a file sent as the "file" field of a multipart upload
type FilePart struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Request describes a single API call
type Request struct {
	Path      string
	Method    string
	Body      any
	Query     url.Values
	Headers   map[string]string
	Multipart *FilePart
}

// Call sends req and decodes a successful JSON answer into out.
// out may be nil, and is left untouched when the answer has no body.
func (c *Client) Call(ctx context.Context, req Request, out any) error {
	resp, err := c.send(ctx, req, false)
	if err != nil {
		return err
	}

	body := resp.Body()
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{
			Kind:    KindHTTP,
			Status:  resp.StatusCode(),
			Message: "invalid response body",
			Err:     err,
		}
	}

	return nil
}

// send performs the auth check, issues the request and classifies the answer.
// With stream set the caller owns resp.RawBody() on success.
func (c *Client) send(ctx context.Context, req Request, stream bool) (*resty.Response, error) {
	// Absolute URLs outside the backend never see the token
	apiPath, sameOrigin := c.relativePath(req.Path)

	token, hasToken := c.store.Token()
	hasToken = hasToken && sameOrigin
	if !hasToken && sameOrigin && requiresAuth(apiPath) {
		return nil, &Error{Kind: KindUnauthenticated, Message: msgAuthRequired}
	}

	requestID := ulid.Make().String()

	r := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-ID", requestID)

	if hasToken {
		r.SetHeader("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	if req.Multipart != nil {
		// Content-Type is left to resty so it carries the boundary
		r.SetFileReader("file", req.Multipart.Name, req.Multipart.Reader)
	} else {
		r.SetHeader("Content-Type", "application/json")
		if req.Body != nil {
			r.SetBody(req.Body)
		}
	}

	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}

	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}

	if stream {
		r.SetDoNotParseResponse(true)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		if stream && resp != nil && resp.RawBody() != nil {
			resp.RawBody().Close()
		}
		c.logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Str("request_id", requestID).
			Msg("request failed")
		return nil, &Error{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Err:     err,
		}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return resp, nil
	}

	body := resp.Body()
	if stream {
		raw := resp.RawBody()
		body, _ = io.ReadAll(raw)
		raw.Close()
	}

	if code == http.StatusUnauthorized && sameOrigin {
		if err := session.Clear(c.store); err != nil {
			c.logger.Warn().Err(err).Msg("failed to clear session after 401")
		}
		return nil, &Error{Kind: KindAuthExpired, Status: code, Message: msgSessionExpired}
	}

	return nil, &Error{
		Kind:    KindHTTP,
		Status:  code,
		Message: errorMessage(body, code, resp.Status()),
	}
}

// relativePath strips the backend origin from absolute URLs. The second
// result is false when the URL points somewhere else.
func (c *Client) relativePath(target string) (string, bool) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return target, true
	}
	if strings.HasPrefix(target, c.baseURL+"/") {
		return strings.TrimPrefix(target, c.baseURL), true
	}
	return target, false
}

// requiresAuth reports whether path falls under a protected prefix
func requiresAuth(path string) bool {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// errorMessage extracts the backend's detail, falling back to the status text
func errorMessage(body []byte, code int, status string) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		if msg := detailMessage(payload.Detail); msg != "" {
			return msg
		}
	}

	if text := http.StatusText(code); text != "" {
		return text
	}
	if text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code))); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", code)
}

// detailMessage understands both a plain string detail and the list form
// used for request validation failures.
func detailMessage(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

// restyLogger routes resty's own diagnostics through zerolog
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error().Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug().Msgf(strings.TrimSpace(format), v...)
}
