package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/printmarket-dev/printmarket/internal/cli/session"
)

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.Call(ctx, Request{Method: http.MethodGet, Path: "/health"}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Login authenticates an existing user and stores the returned session
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return c.authenticate(ctx, "/api/auth/login", req)
}

// Signup creates a user and stores the returned session.
// Role is mandatory and CUSTOMER accounts need a company name.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return c.authenticate(ctx, "/api/auth/signup", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.Call(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		return nil, &Error{Kind: KindHTTP, Status: http.StatusOK, Message: "invalid response body: missing access_token"}
	}

	if err := c.store.SetToken(resp.AccessToken); err != nil {
		_ = session.Clear(c.store)
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}

	user := resp.User
	if err := c.store.SetUser(&user); err != nil {
		_ = session.Clear(c.store)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &resp, nil
}

// Logout tells the backend the session ends, then clears the local session.
// A failed backend call is logged and ignored; local teardown always happens.
func (c *Client) Logout(ctx context.Context) error {
	if _, ok := c.store.Token(); ok {
		var resp LogoutResponse
		req := Request{Method: http.MethodPost, Path: "/api/auth/logout", Body: map[string]any{}}
		if err := c.Call(ctx, req, &resp); err != nil {
			c.logger.Warn().Err(err).Msg("logout request failed, clearing local session anyway")
		}
	}

	if err := session.Clear(c.store); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the cached user without a network round trip
func (c *Client) CurrentUser() (*session.User, bool) {
	return c.store.User()
}

// IsAuthenticated reports whether a user session is stored
func (c *Client) IsAuthenticated() bool {
	_, ok := c.store.User()
	return ok
}
