// Package common defines sentinel errors shared by the storage, service and
// CLI layers of easyinvoice. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Registration errors (user-correctable).
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrDuplicateEmail = errors.New("email already exists")

	// Login errors. Intentionally does not say whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when an operation needs a current user and
	// the session pointer is empty.
	ErrUnauthorized = errors.New("please login first")

	// Repository-level errors.
	ErrRecordNotFound = errors.New("record not found")

	// ErrStorageParseFailure marks malformed persisted content. The record
	// store recovers from it locally and never returns it to callers.
	ErrStorageParseFailure = errors.New("storage parse failure")

	// Invoice errors.
	ErrInvalidItem    = errors.New("invalid invoice item")
	ErrInvalidDueDate = errors.New("invalid due date")
	ErrInvalidStatus  = errors.New("invalid invoice status")
	ErrTotalMismatch  = errors.New("invoice total does not match its items")

	// ErrEmailNotConfigured is returned when a reminder is requested without
	// sender credentials.
	ErrEmailNotConfigured = errors.New("email sending is not configured")
	ErrEmptyAppPassword   = errors.New("app password must not be empty")
)
