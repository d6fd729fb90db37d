// Package kv provides the namespace-keyed byte storage underneath the record
// store. It plays the role browser local storage plays for a web client:
// one value per string key, read and written whole.
package kv

import (
	"context"
)

// Store is a flat key/value store.
//
// Get returns (nil, nil) when the key has never been written. Set replaces
// the whole value. Implementations are not required to be safe for
// concurrent read-modify-write cycles by multiple processes.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
