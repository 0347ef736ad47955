// Package storage defines the workspace file-system abstraction.
package storage

import "github.com/starford/raido/internal/models"

// Provider is the interface for workspace file operations. All paths are
// relative to the workspace root.
type Provider interface {
	// List walks dir and returns metadata for every tracked file.
	// exts filters by extension (e.g. ".md"); empty means every file.
	List(dir string, exts []string) ([]models.FileMeta, error)
	// Stat returns metadata for a single file; the error wraps
	// os.ErrNotExist when the file is gone.
	Stat(path string) (models.FileMeta, error)
	// Abs resolves path to an absolute location the host can open.
	Abs(path string) (string, error)
}
