package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, d := range []string{"zeta", "Alpha", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"b.md", "A.MD", "notes.txt", ".hidden.md"} {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	want := []string{"Alpha", "zeta", "A.MD", "b.md"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
	if !got[0].IsDir || got[2].IsDir {
		t.Fatalf("unexpected dir flags: %+v", got)
	}
}

func TestFileCommands(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := DocumentPath(dir, "todo")
	if filepath.Base(path) != "todo.md" {
		t.Fatalf("unexpected path %s", path)
	}
	if err := CreateFile(path); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := CreateFile(path); err == nil {
		t.Fatalf("expected error creating an existing file")
	}

	renamed := filepath.Join(dir, "done.md")
	if err := RenameFile(path, renamed); err != nil {
		t.Fatalf("RenameFile: %v", err)
	}
	if err := CreateFile(path); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := RenameFile(path, renamed); err == nil {
		t.Fatalf("expected rename onto an existing file to fail")
	}

	if err := DeleteFile(dir); err == nil {
		t.Fatalf("expected DeleteFile to refuse directories")
	}
	if err := DeleteFile(renamed); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(renamed); !os.IsNotExist(err) {
		t.Fatalf("expected file to be gone, got %v", err)
	}
}
