package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/kv"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// Session is the currentUser pointer: a copy of a user taken at login or
// at the last explicit update. It is not kept in sync with the users
// namespace.
type Session struct {
	store kv.Store
	log   logging.Logger
}

func NewSession(store kv.Store, log logging.Logger) *Session {
	return &Session{store: store, log: log}
}

// Get returns the stored snapshot, or nil when nobody is logged in.
// A malformed snapshot also reads as nil.
func (s *Session) Get(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeyCurrentUser, err)
	}
	if raw == nil {
		return nil, nil
	}

	var u *models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn(ctx, "discarding malformed session", "error", err)
		return nil, nil
	}
	if u == nil {
		return nil, nil
	}
	if err := u.Validate(); err != nil {
		s.log.Warn(ctx, "discarding malformed session", "error", err)
		return nil, nil
	}
	return u, nil
}

// Set stores a snapshot of u.
func (s *Session) Set(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", KeyCurrentUser, err)
	}
	if err := s.store.Set(ctx, KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyCurrentUser, err)
	}
	return nil
}

// Clear removes the pointer. Clearing an empty session is not an error.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear %s: %w", KeyCurrentUser, err)
	}
	return nil
}
