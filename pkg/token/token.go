// Package token decodes session tokens without verifying them. The
// client treats tokens as opaque credentials owned by the backend; the
// decoded claims are only hints for deciding whether a saved session is
// worth restoring.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session hints carried by a token.
type Claims struct {
	UserID    uint
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Decode parses a token without signature verification and extracts the
// claims this client cares about.
func Decode(tokenString string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = uint(v)
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

// Expired reports whether the token was expired at the given time. A
// token without an expiry claim never expires from the client's view.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
