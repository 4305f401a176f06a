package cache

import (
	"context"
	"time"
)

// Store is the key-value contract used for processing locks and
// short-lived status caching.
type Store interface {
	// Get retrieves a value by key, reporting whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// SetNX stores the pair only if the key does not exist yet,
	// reporting whether it was set
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}
