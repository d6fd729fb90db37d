package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// Record is a persisted value that can check its own shape after decoding.
type Record interface {
	Validate() error
}

// Collection is one namespace holding a JSON array of T.
//
// Every write rewrites the whole array. Two writers interleaving a
// read-modify-write cycle lose one update.
type Collection[T Record] struct {
	store kv.Store
	key   string
	log   logging.Logger
}

func NewCollection[T Record](store kv.Store, key string, log logging.Logger) *Collection[T] {
	return &Collection[T]{store: store, key: key, log: log}
}

// ReadAll returns records in insertion order. An absent namespace or one
// holding malformed content reads as empty.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if raw == nil {
		return []T{}, nil
	}

	recs, err := decodeAll[T](raw)
	if err != nil {
		c.log.Warn(ctx, "discarding malformed namespace", "namespace", c.key, "error", err)
		return []T{}, nil
	}
	return recs, nil
}

// AppendOne adds rec at the end of the namespace.
func (c *Collection[T]) AppendOne(ctx context.Context, rec T) error {
	recs, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}
	return c.ReplaceAll(ctx, append(recs, rec))
}

// ReplaceAll overwrites the namespace with recs. An empty slice is stored
// as [] rather than removing the key.
func (c *Collection[T]) ReplaceAll(ctx context.Context, recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

func decodeAll[T Record](raw []byte) ([]T, error) {
	var recs []T
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, errors.Join(common.ErrStorageParseFailure, err)
	}
	if recs == nil {
		// "null" decodes to a nil slice without error.
		return nil, fmt.Errorf("%w: not an array", common.ErrStorageParseFailure)
	}
	for i, r := range recs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", common.ErrStorageParseFailure, i, err)
		}
	}
	return recs, nil
}
