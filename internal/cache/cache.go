package cache

import (
	"context"
	"time"
)

// TokenCache holds short-lived bearer tokens keyed by an opaque credential
// fingerprint.
type TokenCache interface {
	// GetToken returns the cached token, or ok=false on a miss.
	GetToken(ctx context.Context, key string) (token string, ok bool, err error)

	// SetToken stores a token with TTL.
	SetToken(ctx context.Context, key, token string, ttl time.Duration) error

	// DeleteToken evicts a token, e.g. after the endpoint rejected it.
	DeleteToken(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error
}
