package storage

import "context"

// Store is the durable key-value port used for the dataset cache, the roster
// and the budget. Keeping it narrow makes every consumer testable without a
// real database.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
