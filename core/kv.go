package core

import "context"

// KVStore is a durable mapping from opaque string keys to JSON documents.
// Get returns ErrKeyNotFound for absent keys; Delete of an absent key is not an error;
// Scan returns, in key order, all values whose key starts with prefix.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context, prefix string) ([][]byte, error)
	Close() error
}
