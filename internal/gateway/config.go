package gateway

import (
	"errors"
	"strings"
	"time"
)

// Config holds connection settings for the remote commerce platform.
type Config struct {
	// BaseURL is the root of the platform's storefront API.
	BaseURL string
	// AccessToken is the storefront access token sent with every request.
	AccessToken string
	// Timeout bounds each HTTP call. Zero disables the client timeout.
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("gateway: base url required")
	}
	return nil
}
