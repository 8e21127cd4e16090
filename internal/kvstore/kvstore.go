// Package kvstore provides the two storage scopes the application uses:
// a durable store that survives restarts (file or postgres) and a
// process-lifetime store that is gone when the process exits (memory).
// All implementations are whole-value replace-on-write.
package kvstore

import "context"

type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set overwrites any previous value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
