// Package models defines the persisted records of easyinvoice: users,
// customers, invoices and their items. JSON field names match the stored
// layout of every namespace.
package models

import "errors"

// EmailConfig holds the sender credentials a user sends reminders with.
type EmailConfig struct {
	Email       string `json:"email"`
	AppPassword string `json:"appPassword"`
}

// User is an account. Password always holds a digest, never plaintext.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	Name        string       `json:"name"`
	EmailConfig *EmailConfig `json:"emailConfig,omitempty"`
}

// Validate checks the shape of a decoded record.
func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user: empty id")
	}
	if u.Email == "" {
		return errors.New("user: empty email")
	}
	if u.Password == "" {
		return errors.New("user: empty password digest")
	}
	return nil
}

// Snapshot returns a deep copy of u, suitable for storing as the session
// pointer. Later edits to u do not reach the copy.
func (u User) Snapshot() User {
	if u.EmailConfig != nil {
		ec := *u.EmailConfig
		u.EmailConfig = &ec
	}
	return u
}

// HasEmailConfig reports whether the user has usable sender credentials.
func (u User) HasEmailConfig() bool {
	return u.EmailConfig != nil && u.EmailConfig.Email != "" && u.EmailConfig.AppPassword != ""
}
