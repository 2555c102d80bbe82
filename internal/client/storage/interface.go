// Package storage provides the durable local key-value store backing the
// session guard: the auth token and last known email survive restarts here.
package storage

import "context"

// Repository is a small durable key-value store. Missing keys read as nil
// without error. DeleteAll removes its keys atomically: a credential pair
// is never left half-cleared.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
