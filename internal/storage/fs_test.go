package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testFS(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f, dir
}

func TestNewFS_MissingRoot(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestSafePath_RejectsTraversal(t *testing.T) {
	f, _ := testFS(t)
	for _, bad := range []string{"../outside.md", "a/../../outside.md", "/etc/passwd"} {
		if _, err := f.safePath(bad); err == nil {
			t.Errorf("safePath(%q) should fail", bad)
		}
	}
}

func TestList_FiltersByExtension(t *testing.T) {
	f, dir := testFS(t)
	_ = os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	_ = os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "sub", "b.md"), []byte("b"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "skip.bin"), []byte("x"), 0o644)

	metas, err := f.List("", []string{".md"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 files, got %d", len(metas))
	}

	all, err := f.List("", nil)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 files with no filter, got %d", len(all))
	}
}

func TestStat(t *testing.T) {
	f, dir := testFS(t)
	_ = os.WriteFile(filepath.Join(dir, "x.md"), []byte("hello"), 0o644)

	meta, err := f.Stat("x.md")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta.Size != 5 {
		t.Errorf("size = %d, want 5", meta.Size)
	}

	_, err = f.Stat("gone.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestAbs(t *testing.T) {
	f, dir := testFS(t)
	abs, err := f.Abs("sub/file.md")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	want := filepath.Join(dir, "sub", "file.md")
	if abs != want {
		t.Errorf("Abs = %q, want %q", abs, want)
	}
}

func TestTracked(t *testing.T) {
	if !Tracked("note.md", []string{".md", ".txt"}) {
		t.Error("note.md should be tracked")
	}
	if Tracked("img.png", []string{".md"}) {
		t.Error("img.png should not be tracked")
	}
	if !Tracked("anything", nil) {
		t.Error("empty filter tracks everything")
	}
}
