package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yallashop/storefront/internal/app/model"
)

// AddCartItem adds one item to the authenticated cart. The backend
// returns the created or updated line with its server-assigned id and
// denormalized product data.
func (c *Client) AddCartItem(ctx context.Context, req CartItemRequest) (*model.CartLine, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/cart/save", nil, req)
	if err != nil {
		return nil, fmt.Errorf("add cart item request failed: %w", err)
	}

	var line model.CartLine
	if err := json.Unmarshal(resp, &line); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart item response: %w", err)
	}
	return &line, nil
}

// AddCartItems submits a batch of items in one request. Used by the
// guest cart migration.
func (c *Client) AddCartItems(ctx context.Context, req CartBatchRequest) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/api/cart/items", nil, req); err != nil {
		return fmt.Errorf("add cart items request failed: %w", err)
	}
	return nil
}

// RemoveCartItem removes one line from the authenticated cart by its
// server-assigned id.
func (c *Client) RemoveCartItem(ctx context.Context, itemID uint) error {
	path := fmt.Sprintf("/api/cart/item/%d", itemID)
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove cart item request failed: %w", err)
	}
	return nil
}

// ClearCart removes every line of the user's cart.
func (c *Client) ClearCart(ctx context.Context, userID uint) error {
	path := fmt.Sprintf("/api/cart/clear/%d", userID)
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("clear cart request failed: %w", err)
	}
	return nil
}

// UserCart fetches the authoritative cart for the user.
func (c *Client) UserCart(ctx context.Context, userID uint) ([]model.CartLine, error) {
	path := fmt.Sprintf("/api/cart/user/%d", userID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("user cart request failed: %w", err)
	}

	var lines []model.CartLine
	if err := json.Unmarshal(resp, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user cart response: %w", err)
	}
	return lines, nil
}
