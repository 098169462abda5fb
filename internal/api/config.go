package api

import "time"

// Config represents the configuration for the storefront API client
type Config struct {
	// BaseURL is the backend base URL, without the /api prefix
	BaseURL string

	// Timeout bounds every request. Zero means DefaultTimeout.
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header when non-empty
	UserAgent string
}

// DefaultTimeout is applied when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
