// Package docsink stores rendered documents: in a local directory or in an
// S3-compatible bucket.
package docsink

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for names that are empty or point outside
// the sink.
var ErrInvalidName = errors.New("invalid document name")

// Sink saves a document under name and reports where it ended up.
type Sink interface {
	Save(ctx context.Context, name string, r io.Reader) (location string, err error)
}

func cleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == ".." || base == "" {
		return "", ErrInvalidName
	}
	return base, nil
}
