package blob

import (
	"context"
	"errors"
)

// ErrNotFound signals a legitimately absent key, distinct from transport failure.
var ErrNotFound = errors.New("blob: key not found")

// Store is the port onto the external flat key-blob store. Keys are
// path-like strings (gifts/1.json, cart/2/5.json); values are opaque bytes.
type Store interface {
	// Get returns the value at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes the value at key, overwriting any previous value.
	Put(ctx context.Context, key string, data []byte) error
	// PutIfAbsent writes the value only when the key does not exist yet,
	// reporting whether the claim succeeded. Used to close check-then-act
	// races (phone index claims, id collisions).
	PutIfAbsent(ctx context.Context, key string, data []byte) (bool, error)
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// ListByPrefix returns all keys under the prefix in sorted order.
	ListByPrefix(ctx context.Context, prefix string) ([]string, error)
	// Incr atomically increments the counter stored at key and returns
	// the new value. Counters back the id allocators.
	Incr(ctx context.Context, key string) (int64, error)
}
