package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "docs.sqlite"), nil)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_SaveLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestSQLite(t)
	doc := s.Document("inbox")

	if _, err := doc.LoadText(ctx); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := doc.SaveText(ctx, "- one\n"); err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	if err := doc.SaveText(ctx, "- one\n- two\n"); err != nil {
		t.Fatalf("SaveText: %v", err)
	}
	got, err := doc.LoadText(ctx)
	if err != nil || got != "- one\n- two\n" {
		t.Fatalf("LoadText = %q, %v", got, err)
	}

	docs, err := s.Documents(ctx)
	if err != nil || len(docs) != 1 || docs[0].Name != "inbox" {
		t.Fatalf("Documents = %+v, %v", docs, err)
	}
}

func TestSQLiteStore_Revisions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestSQLite(t)
	s.KeepRevisions = 3
	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	doc := s.Document("plan")
	for _, body := range []string{"- a\n", "- b\n", "- b\n", "- c\n", "- d\n"} {
		if err := doc.SaveText(ctx, body); err != nil {
			t.Fatalf("SaveText(%q): %v", body, err)
		}
	}

	revs, err := s.Revisions(ctx, "plan", 0)
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	// The duplicate save is skipped; only the newest three are kept.
	if len(revs) != 3 || revs[0].Seq != 4 || revs[2].Seq != 2 {
		t.Fatalf("unexpected revisions %+v", revs)
	}
	if !revs[0].CreatedAt.After(revs[1].CreatedAt) {
		t.Fatalf("expected newest first: %+v", revs)
	}
	body, err := s.Revision(ctx, "plan", 2)
	if err != nil || body != "- b\n" {
		t.Fatalf("Revision(2) = %q, %v", body, err)
	}
	if _, err := s.Revision(ctx, "plan", 1); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected pruned revision to be gone, got %v", err)
	}

	limited, err := s.Revisions(ctx, "plan", 1)
	if err != nil || len(limited) != 1 || limited[0].Seq != 4 {
		t.Fatalf("limited revisions %+v, %v", limited, err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestSQLite(t)
	if err := s.Document("x").SaveText(ctx, "- x\n"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "x"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	revs, err := s.Revisions(ctx, "x", 0)
	if err != nil || len(revs) != 0 {
		t.Fatalf("expected revisions removed, got %+v %v", revs, err)
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "docs.sqlite")
	s, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Document("d").SaveText(ctx, "- kept\n"); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s2, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Document("d").LoadText(ctx)
	if err != nil || got != "- kept\n" {
		t.Fatalf("LoadText after reopen = %q, %v", got, err)
	}
}
