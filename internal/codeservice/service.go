// Package codeservice coordinates the index, workspace storage, and
// recents history behind the operations the API, MCP, and CLI surfaces use.
package codeservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/code"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/recents"
	"github.com/starford/raido/internal/storage"
)

// Scheme is the URI scheme exposed for open-by-code links.
const Scheme = "raido"

// CodeInfo pairs a path with its code and shareable URL.
type CodeInfo struct {
	Path string `json:"path"`
	Code string `json:"code"`
	URL  string `json:"url"`
}

// Service exposes code lookup and open operations.
type Service struct {
	store   storage.Provider
	idx     *index.Index
	history *recents.Store
}

// NewService creates a new code service. history may be nil when no
// recents store is configured (e.g. the offline CLI path).
func NewService(store storage.Provider, idx *index.Index, history *recents.Store) *Service {
	return &Service{store: store, idx: idx, history: history}
}

// Search returns the formatted query and every entry whose code starts
// with it, in the index's insertion order. Recomputed fresh per call.
func (s *Service) Search(_ context.Context, query string) (string, []index.Entry) {
	return code.Format(query), s.idx.Search(query)
}

// List returns all reachable entries.
func (s *Service) List(_ context.Context) []index.Entry {
	return s.idx.Entries()
}

// Resolve formats rawCode and returns its entry, or ErrNotFound.
func (s *Service) Resolve(_ context.Context, rawCode string) (index.Entry, error) {
	p, ok := s.idx.Resolve(rawCode)
	if !ok {
		return index.Entry{}, apperr.ErrNotFound
	}
	return index.Entry{Code: code.Format(rawCode), Path: p}, nil
}

// Open resolves rawCode, verifies the file still exists, records the open
// in the recents history, and returns an openable target.
//
// When the path is tracked but the file is gone, ErrFileMissing is
// returned and the stale index entry is deliberately left in place: only
// an explicit delete event evicts it, so repeated lookups for that code
// keep reporting the same condition.
func (s *Service) Open(ctx context.Context, rawCode string) (*models.OpenTarget, error) {
	entry, err := s.Resolve(ctx, rawCode)
	if err != nil {
		return nil, err
	}

	meta, err := s.store.Stat(entry.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrFileMissing, entry.Path)
		}
		return nil, err
	}

	abs, err := s.store.Abs(entry.Path)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		// History is best-effort; the open itself already succeeded.
		_ = s.history.RecordOpen(entry.Path, entry.Code, time.Now())
	}

	return &models.OpenTarget{
		Code:    entry.Code,
		Path:    entry.Path,
		AbsPath: abs,
		Size:    meta.Size,
		ModTime: meta.UpdatedAt,
	}, nil
}

// CodeFor returns the code for a workspace path, tracking it lazily on
// first query. Unknown files yield ErrNotFound.
func (s *Service) CodeFor(_ context.Context, path string) (CodeInfo, error) {
	if _, err := s.store.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CodeInfo{}, apperr.ErrNotFound
		}
		return CodeInfo{}, err
	}
	c := s.idx.GetOrCreate(path)
	return CodeInfo{Path: path, Code: c, URL: CodeURL(c)}, nil
}

// Recents returns the most recently opened entries.
func (s *Service) Recents(_ context.Context, limit int) ([]models.RecentEntry, error) {
	if s.history == nil {
		return []models.RecentEntry{}, nil
	}
	return s.history.List(limit)
}

// Forget drops a path from the recents history.
func (s *Service) Forget(_ context.Context, path string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Forget(path)
}

// CodeURL renders the external open-by-code link for a code, e.g.
// raido://codes/open?code=AB-CD.
func CodeURL(c string) string {
	return fmt.Sprintf("%s://codes/open?code=%s", Scheme, c)
}
