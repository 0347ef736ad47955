package index

import (
	"log/slog"

	"github.com/starford/raido/internal/storage"
)

// Sync walks the workspace and brings the index up to date:
//   - files on disk are tracked (Add is idempotent for known paths)
//   - tracked paths with no file on disk are removed
//
// At startup this performs the bulk load; the watcher reuses it as the
// rename reconciliation pass.
func Sync(ix *Index, store storage.Provider, exts []string, logger *slog.Logger) error {
	metas, err := store.List("", exts)
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}
		c := ix.Add(m.Path)
		logger.Debug("sync: tracked", slog.String("path", m.Path), slog.String("code", c))
	}

	for p := range ix.Paths() {
		if _, ok := disk[p]; !ok {
			ix.Remove(p)
			logger.Debug("sync: removed stale", slog.String("path", p))
		}
	}

	return nil
}
