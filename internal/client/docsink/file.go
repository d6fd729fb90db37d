package docsink

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/easyinvoice/internal/filex"
)

// FileSink writes documents into a directory, created on first use.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Save returns the absolute path of the written file. Existing files with
// the same name are replaced.
func (s *FileSink) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("failed to prepare export dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := filex.WriteAtomic(path, r); err != nil {
		return "", fmt.Errorf("failed to save document: %w", err)
	}
	return path, nil
}
