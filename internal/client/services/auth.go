// Package services contains the application services of the easyinvoice
// client. This file defines the identity and session manager: account
// registration, login against stored digests, and the currentUser snapshot.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/client/repositories/records"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
	"github.com/dmitrijs2005/easyinvoice/internal/cryptox"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
	"github.com/dmitrijs2005/easyinvoice/internal/validation"
)

// AuthService defines account and session operations for the CLI.
//
// Contract:
//   - Register: validate, digest the password and append a user. Does not log in.
//   - Login: match email and digest; on success store a session snapshot.
//   - Logout: drop the snapshot.
//   - CurrentUser: the snapshot, or nil when nobody is logged in.
//   - SaveEmailConfig: store sender credentials on the user and the snapshot.
//   - RefreshSession: reload the snapshot from the users namespace.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	SaveEmailConfig(ctx context.Context, cfg models.EmailConfig) (*models.User, error)
	RefreshSession(ctx context.Context) (*models.User, error)
}

type authService struct {
	recs *records.Records
	log  logging.Logger
}

// NewAuthService constructs an AuthService over the given record store.
func NewAuthService(recs *records.Records, log logging.Logger) AuthService {
	return &authService{recs: recs, log: log.With("service", "auth")}
}

// Register checks email shape first, then password strength, then
// uniqueness. Uniqueness is exact and case-sensitive.
func (a *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if !validation.ValidateEmail(email) {
		return nil, common.ErrInvalidEmail
	}
	if !validation.ValidatePassword(password) {
		return nil, common.ErrWeakPassword
	}

	users, err := a.recs.Users.ReadAll(ctx)
	if err != nil {
		a.log.Error(ctx, "reading users failed", "error", err)
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: cryptox.Digest(password),
		Name:     name,
	}
	if err := a.recs.Users.AppendOne(ctx, user); err != nil {
		a.log.Error(ctx, "saving user failed", "error", err)
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	a.log.Info(ctx, "user registered", "user_id", user.ID)
	return &user, nil
}

// Login never says which half of the credentials was wrong.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	users, err := a.recs.Users.ReadAll(ctx)
	if err != nil {
		a.log.Error(ctx, "reading users failed", "error", err)
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	digest := cryptox.Digest(password)
	for _, u := range users {
		if u.Email != email || !cryptox.DigestEqual(u.Password, digest) {
			continue
		}
		if err := a.recs.Session.Set(ctx, u); err != nil {
			a.log.Error(ctx, "saving session failed", "error", err)
			return nil, fmt.Errorf("failed to login: %w", err)
		}
		a.log.Info(ctx, "user logged in", "user_id", u.ID)
		snap := u.Snapshot()
		return &snap, nil
	}

	a.log.Debug(ctx, "login rejected")
	return nil, common.ErrInvalidCredentials
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.recs.Session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.recs.Session.Get(ctx)
}

// SaveEmailConfig writes cfg into the canonical user record and into the
// snapshot. The sender address must be a valid email and the app password
// must be set.
func (a *authService) SaveEmailConfig(ctx context.Context, cfg models.EmailConfig) (*models.User, error) {
	cur, err := a.recs.Session.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save email config: %w", err)
	}
	if cur == nil {
		return nil, common.ErrUnauthorized
	}
	if !validation.ValidateEmail(cfg.Email) {
		return nil, common.ErrInvalidEmail
	}
	if cfg.AppPassword == "" {
		return nil, common.ErrEmptyAppPassword
	}

	users, err := a.recs.Users.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save email config: %w", err)
	}

	found := false
	for i := range users {
		if users[i].ID == cur.ID {
			c := cfg
			users[i].EmailConfig = &c
			found = true
		}
	}
	if !found {
		return nil, common.ErrRecordNotFound
	}
	if err := a.recs.Users.ReplaceAll(ctx, users); err != nil {
		a.log.Error(ctx, "saving users failed", "error", err)
		return nil, fmt.Errorf("failed to save email config: %w", err)
	}

	c := cfg
	cur.EmailConfig = &c
	if err := a.recs.Session.Set(ctx, *cur); err != nil {
		return nil, fmt.Errorf("failed to save email config: %w", err)
	}

	a.log.Info(ctx, "email config saved", "user_id", cur.ID)
	return cur, nil
}

func (a *authService) RefreshSession(ctx context.Context) (*models.User, error) {
	cur, err := a.recs.Session.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	if cur == nil {
		return nil, common.ErrUnauthorized
	}

	users, err := a.recs.Users.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	for _, u := range users {
		if u.ID != cur.ID {
			continue
		}
		if err := a.recs.Session.Set(ctx, u); err != nil {
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
		snap := u.Snapshot()
		return &snap, nil
	}
	return nil, common.ErrRecordNotFound
}
