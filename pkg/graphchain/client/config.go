package client

import (
	"fmt"
	"time"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
)

// ClientConfig holds the configuration for a Client, in the
// Config/Validate/DefaultConfig triad shape pkg/mythic/config.go uses.
type ClientConfig struct {
	// Endpoint is the GraphQL HTTP endpoint (e.g.
	// "https://api.example.com/graphql").
	Endpoint string

	// ClientName and ClientVersion are sent as request metadata (spec.md
	// 3's HTTPRequest.clientName/clientVersion).
	ClientName    string
	ClientVersion string

	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration

	// DefaultCachePolicy is carried on the config; Send and Upload do not
	// read it (Send uses its cachePolicy argument, Upload always uses
	// FetchIgnoringCacheData).
	DefaultCachePolicy graphchain.CachePolicy

	// SkipTLSVerify skips TLS certificate verification (self-signed
	// endpoints in development).
	SkipTLSVerify bool
}

// Validate checks that the configuration is usable.
func (c *ClientConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("Endpoint is required")
	}
	return nil
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ClientName:         "graphchain-go",
		Timeout:            60 * time.Second,
		DefaultCachePolicy: graphchain.FetchIgnoringCacheData,
	}
}
