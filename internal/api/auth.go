package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yallashop/storefront/internal/app/model"
)

// Login authenticates with the backend and returns the canonical user
// plus the session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/login", nil, req)
	if err != nil {
		return nil, "", fmt.Errorf("login request failed: %w", err)
	}

	var loginResp loginResponse
	if err := json.Unmarshal(resp, &loginResp); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	user := loginResp.User.User
	return &user, loginResp.Token, nil
}

// Register creates an account. It does not authenticate the session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/register", nil, req); err != nil {
		return fmt.Errorf("register request failed: %w", err)
	}
	return nil
}

// Logout ends the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// VerifyEmail confirms a registration token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	req := VerifyEmailRequest{Token: token}
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/verify-email", nil, req); err != nil {
		return fmt.Errorf("verify-email request failed: %w", err)
	}
	return nil
}

// CurrentUser fetches the user bound to the current session token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/me", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("current-user request failed: %w", err)
	}

	var meResp currentUserResponse
	if err := json.Unmarshal(resp, &meResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current-user response: %w", err)
	}

	user := meResp.User
	return &user, nil
}
