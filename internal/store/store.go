// Package store loads and saves outline documents as raw text. It never
// parses them; decoding belongs to the outline package.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is one document's text storage.
type Store interface {
	LoadText(ctx context.Context) (string, error)
	SaveText(ctx context.Context, text string) error
}

// ErrNotExist is returned by LoadText when the document does not exist.
var ErrNotExist = errors.New("document does not exist")

// FileStore keeps a document in a single file.
type FileStore struct {
	Path string

	// CreateIfMissing makes LoadText return an empty document instead of
	// ErrNotExist.
	CreateIfMissing bool
}

func (f FileStore) LoadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(f.Path) == "" {
		return "", errors.New("file store: missing path")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if f.CreateIfMissing {
				return "", nil
			}
			return "", fmt.Errorf("%s: %w", f.Path, ErrNotExist)
		}
		return "", err
	}
	return string(b), nil
}

// SaveText replaces the file atomically, creating parent directories.
func (f FileStore) SaveText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Path) == "" {
		return errors.New("file store: missing path")
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if st, err := os.Stat(f.Path); err == nil {
		perm = st.Mode().Perm()
	}
	return atomicWriteFile(dir, "."+filepath.Base(f.Path)+".*.tmp", f.Path, []byte(text), perm)
}
