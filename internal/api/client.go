package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yallashop/storefront/pkg/logger"
)

// Client talks to the storefront backend. It is a thin pass-through: it
// names the remote operations, normalizes response envelopes, and converts
// failures into typed errors. It holds no cart or auth state beyond the
// bearer token of the current session.
type Client struct {
	config     Config
	httpClient *http.Client
	sessionID  string

	mu    sync.RWMutex
	token string
}

// NewClient creates a new storefront API client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		sessionID:  uuid.NewString(),
	}, nil
}

// SessionID returns the per-process client session identifier attached to
// every outbound request.
func (c *Client) SessionID() string {
	return c.sessionID
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer token, empty when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doRequest performs an HTTP request against the backend and returns the
// raw response body. Non-2xx responses are converted into *StatusError.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(reqBody)
	}

	endpoint := strings.TrimSuffix(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Session", c.sessionID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug("API request", map[string]interface{}{
		"method": method,
		"path":   path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.statusError(resp.StatusCode, respBody, path)
	}

	return respBody, nil
}

// statusError maps a non-2xx response to a typed error carrying the
// backend-provided message when one is present.
func (c *Client) statusError(status int, body []byte, path string) error {
	message := genericFailureMessage
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		message = errResp.Message
	}

	logger.Warn("API request rejected", map[string]interface{}{
		"path":    path,
		"status":  status,
		"message": message,
	})

	kind := ErrServer
	switch status {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusBadRequest:
		kind = ErrInvalidRequest
	}

	return &StatusError{Status: status, Message: message, kind: kind}
}
