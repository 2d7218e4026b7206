// internal/registry/kv.go
//
// Key-value store contract shared by the memory and Redis backends.
//
// The registry needs exactly two operations: a TTL-bounded write and a
// point read.  A miss is signalled with ErrKeyNotFound so callers can
// distinguish "no such entry" from transport failures; the registry maps
// the former to a benign miss and logs the latter.

package registry

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound reports a read of an absent or expired key.
var ErrKeyNotFound = errors.New("registry: key not found")

// KV is the minimal store interface backing a Registry.
type KV interface {
	// Get returns the stored value or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetWithTTL stores value under key, expiring after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
