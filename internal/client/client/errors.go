package client

import "errors"

// ErrUnavailable is returned when a configured storage backend cannot be reached.
var ErrUnavailable = errors.New("storage backend unavailable")
