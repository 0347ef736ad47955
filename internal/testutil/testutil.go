// Package testutil provides shared test helpers for setting up workspaces
// and recents databases.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/raido/internal/recents"
	"github.com/starford/raido/internal/storage"
)

// TestRecents creates a temporary recents database that is automatically
// cleaned up.
func TestRecents(t *testing.T) *recents.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := recents.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestWorkspace creates a temporary workspace directory with a storage.Provider.
func TestWorkspace(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
