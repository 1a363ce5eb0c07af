package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache defines the key-value store interface. A ttl of zero means the value
// never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// ErrCacheMiss is returned when a key is not found
var ErrCacheMiss = fmt.Errorf("cache miss")

// SessionKey is the single slot holding the serialized current identity
const SessionKey = "medrem:session"

// UnreadCountKey builds the cache key for a user's unread notification count
func UnreadCountKey(userID string) string {
	return "medrem:unread:" + userID
}
