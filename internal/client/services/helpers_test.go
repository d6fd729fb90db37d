package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/records"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// failingStore wraps a MemoryStore and fails the chosen operations.
type failingStore struct {
	*kv.MemoryStore
	GetErr error
	SetErr error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newTestRecords(t *testing.T) (*records.Records, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	return records.New(store, logging.Discard()), store
}

func mustRegister(t *testing.T, a AuthService, name, email, password string) *models.User {
	t.Helper()
	u, err := a.Register(context.Background(), name, email, password)
	require.NoError(t, err)
	return u
}
