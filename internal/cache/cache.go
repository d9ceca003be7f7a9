package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache: key not found")

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// SetNX stores val only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key, val string, ttl time.Duration) (bool, error)
}
