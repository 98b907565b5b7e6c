package outbound

import "context"

// KeyValueStore is the persistence abstraction: string-keyed blobs with no
// transactions. The process is the single writer; adapters only need to be
// safe for concurrent reads.
type KeyValueStore interface {
	// Get retrieves the blob stored under key. The second return value is
	// false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
