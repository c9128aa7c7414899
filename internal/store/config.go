package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the global user configuration, stored as TOML.
type Config struct {
	// Workspace is the default directory for `ls` and relative file names.
	Workspace string `toml:"workspace,omitempty" json:"workspace,omitempty" yaml:"workspace,omitempty"`

	// Backend selects where documents live: "file" (plain .md files) or
	// "sqlite" (the Database file).
	Backend  string `toml:"backend" json:"backend" yaml:"backend"`
	Database string `toml:"database,omitempty" json:"database,omitempty" yaml:"database,omitempty"`

	LogLevel string `toml:"log_level" json:"logLevel" yaml:"log_level"`

	// CopyIndent is the per-level indent used when copying nodes as text.
	CopyIndent string `toml:"copy_indent" json:"copyIndent" yaml:"copy_indent"`

	History HistoryConfig `toml:"history" json:"history" yaml:"history"`
	TUI     TUIConfig     `toml:"tui" json:"tui" yaml:"tui"`
}

type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" json:"maxEntries" yaml:"max_entries"`
	DebounceMS int `toml:"debounce_ms" json:"debounceMs" yaml:"debounce_ms"`
}

func (h HistoryConfig) Debounce() time.Duration {
	return time.Duration(h.DebounceMS) * time.Millisecond
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs  string `toml:"glyphs,omitempty" json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
	NoColor bool   `toml:"no_color,omitempty" json:"noColor,omitempty" yaml:"no_color,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:    BackendFile,
		LogLevel:   "warn",
		CopyIndent: "\t",
		History: HistoryConfig{
			MaxEntries: 50,
			DebounceMS: 500,
		},
	}
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown backend %q (want file|sqlite)", c.Backend)
	}
	if c.History.MaxEntries < 1 {
		return errors.New("config: history.max_entries must be at least 1")
	}
	if c.History.DebounceMS < 0 {
		return errors.New("config: history.debounce_ms must not be negative")
	}
	return nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.vertebra).
	if v := strings.TrimSpace(os.Getenv("VERTEBRA_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".vertebra"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file over the defaults. A missing file yields
// the defaults.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}

	// Keep the previous config around; failures here must not block saving.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.toml.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.toml.*.tmp", path, buf.Bytes(), 0o600)
}
