package ports

import (
	"context"
	"errors"
)

// Returned by RouteCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Port: a shared cache for serialized solve outcomes so identical requests
// skip recomputation.
type RouteCache interface {
	// Return the cached payload for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Store payload under key with the adapter's configured TTL.
	Set(ctx context.Context, key string, payload []byte) error
}
