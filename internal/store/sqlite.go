package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// DefaultKeepRevisions is how many revisions SQLiteStore keeps per document.
const DefaultKeepRevisions = 100

// SQLiteStore keeps many named documents, plus a bounded list of earlier
// revisions of each, in one SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger

	// KeepRevisions bounds stored revisions per document; <= 0 keeps all.
	KeepRevisions int

	now func() time.Time
}

type Revision struct {
	Seq       int       `json:"seq" yaml:"seq"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Size      int       `json:"size" yaml:"size"`
}

type DocumentInfo struct {
	Name      string    `json:"name" yaml:"name"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	Size      int       `json:"size" yaml:"size"`
}

func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite store: missing path")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	s := &SQLiteStore{db: db, path: path, log: log, KeepRevisions: DefaultKeepRevisions, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	log.Debug("sqlite store opened", zap.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS revisions (
			name TEXT NOT NULL,
			seq INTEGER NOT NULL,
			body TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			PRIMARY KEY(name, seq)
		);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Document returns a Store bound to one document name.
func (s *SQLiteStore) Document(name string) Store {
	return sqliteDocument{s: s, name: strings.TrimSpace(name)}
}

type sqliteDocument struct {
	s    *SQLiteStore
	name string
}

func (d sqliteDocument) LoadText(ctx context.Context) (string, error) {
	var body string
	err := d.s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, d.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", d.name, ErrNotExist)
	}
	return body, err
}

// SaveText stores the new body and records it as a revision. Saving the body
// that is already stored does nothing.
func (d sqliteDocument) SaveText(ctx context.Context, text string) error {
	if d.name == "" {
		return errors.New("sqlite store: missing document name")
	}
	tx, err := d.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var prev string
	err = tx.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, d.name).Scan(&prev)
	switch {
	case err == nil && prev == text:
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return err
	}

	now := d.s.now().UnixMilli()
	if _, err := tx.ExecContext(ctx, `INSERT INTO documents(name, body, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at_unixms = excluded.updated_at_unixms`,
		d.name, text, now); err != nil {
		return err
	}
	var seq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM revisions WHERE name = ?`, d.name).Scan(&seq); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO revisions(name, seq, body, created_at_unixms) VALUES(?, ?, ?, ?)`,
		d.name, seq, text, now); err != nil {
		return err
	}
	if keep := d.s.KeepRevisions; keep > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE name = ? AND seq <= ?`, d.name, seq-keep); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	d.s.log.Debug("document saved", zap.String("name", d.name), zap.Int("seq", seq), zap.Int("bytes", len(text)))
	return nil
}

// Documents lists stored documents by name.
func (s *SQLiteStore) Documents(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, updated_at_unixms, length(body) FROM documents ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []DocumentInfo{}
	for rows.Next() {
		var (
			info DocumentInfo
			ms   int64
		)
		if err := rows.Scan(&info.Name, &ms, &info.Size); err != nil {
			return nil, err
		}
		info.UpdatedAt = time.UnixMilli(ms).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

// Revisions returns up to limit revisions of name, newest first. limit <= 0
// returns all of them.
func (s *SQLiteStore) Revisions(ctx context.Context, name string, limit int) ([]Revision, error) {
	q := `SELECT seq, created_at_unixms, length(body) FROM revisions WHERE name = ? ORDER BY seq DESC`
	args := []any{name}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Revision{}
	for rows.Next() {
		var (
			r  Revision
			ms int64
		)
		if err := rows.Scan(&r.Seq, &ms, &r.Size); err != nil {
			return nil, err
		}
		r.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Revision returns the body stored as revision seq of name.
func (s *SQLiteStore) Revision(ctx context.Context, name string, seq int) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM revisions WHERE name = ? AND seq = ?`, name, seq).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s revision %d: %w", name, seq, ErrNotExist)
	}
	return body, err
}

// Delete removes a document and its revisions.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}
