package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

const sessionFileName = "session.json"

// maxSessionFiles bounds how many per-file view states are remembered.
const maxSessionFiles = 20

// Session stores small editor state for restoring the last document on
// relaunch. It is best effort: callers should tolerate missing/invalid data.
type Session struct {
	Version int `json:"version"`

	// LastFile is the absolute path of the most recently opened document.
	LastFile string `json:"lastFile,omitempty"`

	// Files holds per-document view state keyed by absolute path.
	Files map[string]FileView `json:"files,omitempty"`
}

type FileView struct {
	// Cursor and Collapsed are dotted node paths ("2.1").
	Cursor    string   `json:"cursor,omitempty"`
	Collapsed []string `json:"collapsed,omitempty"`
	// Seen orders entries for eviction; higher is more recent.
	Seen int64 `json:"seen,omitempty"`
}

func sessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

func LoadSession() (*Session, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Session{Version: 1}, nil
		}
		return nil, err
	}
	var st Session
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &Session{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

// Remember records file as the last opened document along with its view.
func (s *Session) Remember(file string, view FileView) {
	file = strings.TrimSpace(file)
	if file == "" {
		return
	}
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	if s.Files == nil {
		s.Files = map[string]FileView{}
	}
	var top int64
	for _, v := range s.Files {
		top = max(top, v.Seen)
	}
	view.Seen = top + 1
	s.LastFile = file
	s.Files[file] = view

	if len(s.Files) > maxSessionFiles {
		keys := make([]string, 0, len(s.Files))
		for k := range s.Files {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return s.Files[keys[i]].Seen > s.Files[keys[j]].Seen })
		for _, k := range keys[maxSessionFiles:] {
			delete(s.Files, k)
		}
	}
}

// View returns the remembered view state of file.
func (s *Session) View(file string) (FileView, bool) {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	v, ok := s.Files[file]
	return v, ok
}

func SaveSession(st *Session) error {
	if st == nil {
		return nil
	}
	path, err := sessionPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "session.json.*.tmp", path, b, 0o644)
}
