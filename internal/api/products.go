package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yallashop/storefront/internal/app/model"
)

// ListParams holds pagination and filtering for product list endpoints.
type ListParams struct {
	Page  int
	Limit int
	Query string
}

func (p ListParams) values() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		values.Set("q", p.Query)
	}
	return values
}

// ListProducts fetches a page of the catalog.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/product/all", params.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("list products request failed: %w", err)
	}
	return decodeProductPage(resp)
}

// SearchProducts searches the catalog.
func (c *Client) SearchProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/product/search", params.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("search products request failed: %w", err)
	}
	return decodeProductPage(resp)
}

// ProductsByCategory fetches a page of products in one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID uint, params ListParams) (*ProductPage, error) {
	path := fmt.Sprintf("/api/product/category/%d", categoryID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, params.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("products by category request failed: %w", err)
	}
	return decodeProductPage(resp)
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id uint) (*model.Product, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/product/%d", id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("product request failed: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal(resp, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product response: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a catalog entry. Admin only.
func (c *Client) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/product/save", nil, product)
	if err != nil {
		return nil, fmt.Errorf("create product request failed: %w", err)
	}

	var created model.Product
	if err := json.Unmarshal(resp, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal create product response: %w", err)
	}
	return &created, nil
}

// UpdateProduct updates a catalog entry. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id uint, product model.Product) (*model.Product, error) {
	path := fmt.Sprintf("/api/product/update/%d", id)
	resp, err := c.doRequest(ctx, http.MethodPut, path, nil, product)
	if err != nil {
		return nil, fmt.Errorf("update product request failed: %w", err)
	}

	var updated model.Product
	if err := json.Unmarshal(resp, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update product response: %w", err)
	}
	return &updated, nil
}

// DeleteProduct removes a catalog entry. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/product/delete/%d", id)
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete product request failed: %w", err)
	}
	return nil
}
