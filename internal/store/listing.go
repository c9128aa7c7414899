package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DocumentExt is the extension of outline documents.
const DocumentExt = ".md"

type Entry struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	IsDir bool   `json:"isDir" yaml:"isDir"`
}

// ListDirectory returns the subdirectories and outline documents of dir.
// Hidden entries are skipped. Directories come first, then files, each
// group sorted by name without regard to case.
func ListDirectory(dir string) ([]Entry, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(ents))
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := e.IsDir()
		if !isDir && !IsDocument(name) {
			continue
		}
		out = append(out, Entry{Name: name, Path: filepath.Join(dir, name), IsDir: isDir})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func IsDocument(name string) bool {
	return strings.EqualFold(filepath.Ext(name), DocumentExt)
}

// DocumentPath adds the document extension when name has none.
func DocumentPath(dir, name string) string {
	name = strings.TrimSpace(name)
	if filepath.Ext(name) == "" {
		name += DocumentExt
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// CreateFile creates an empty document. It fails if the file exists.
func CreateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return err
	}
	return f.Close()
}

// DeleteFile removes a document. Directories are refused.
func DeleteFile(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return os.Remove(path)
}

// RenameFile renames a document without overwriting an existing one.
func RenameFile(from, to string) error {
	if _, err := os.Stat(to); err == nil {
		return fmt.Errorf("%s already exists", to)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Rename(from, to)
}
