package api

import (
	"encoding/json"
	"fmt"

	"github.com/yallashop/storefront/internal/app/model"
)

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the backend's login envelope. The user object arrives
// wrapped one level deeper than on /me: payload.user.user.
type loginResponse struct {
	User struct {
		User model.User `json:"user"`
	} `json:"user"`
	Token string `json:"token"`
}

// currentUserResponse is the backend's /me envelope: payload.user.
type currentUserResponse struct {
	User model.User `json:"user"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailRequest carries the emailed verification token.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// CartItemRequest is the payload for adding a single cart item.
type CartItemRequest struct {
	UserID    uint  `json:"user_id"`
	ProductID uint  `json:"product_id"`
	SizeID    *uint `json:"size_id"`
	ColorID   *uint `json:"color_id"`
	Quantity  int   `json:"quantity"`
}

// CartBatchRequest is the payload for adopting multiple items at once.
type CartBatchRequest struct {
	UserID uint             `json:"user_id"`
	Items  []model.CartLine `json:"items"`
}

// ProductPage is the canonical product list shape. The backend answers
// list endpoints either with {items, pagination} or with a bare array;
// both are resolved here so callers never branch on shape.
type ProductPage struct {
	Items      []model.Product
	Pagination *model.Pagination
}

func decodeProductPage(data []byte) (*ProductPage, error) {
	var envelope struct {
		Items      []model.Product   `json:"items"`
		Pagination *model.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Items != nil {
		return &ProductPage{Items: envelope.Items, Pagination: envelope.Pagination}, nil
	}

	var bare []model.Product
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product list: %w", err)
	}
	return &ProductPage{Items: bare}, nil
}
