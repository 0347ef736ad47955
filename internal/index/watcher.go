package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/raido/internal/storage"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "created", "deleted".
type EventCallback func(kind, path, code string)

// Watch starts an fsnotify watcher on the workspace root and keeps the
// index in sync until ctx is cancelled. It calls cb (if non-nil) after
// each index mutation.
//
// Write events are ignored: a path's code depends only on the path, never
// on file content. New directories created at runtime are added to the
// watch list. Rename events fire on the old path only, so the old entry is
// removed immediately and a debounced reconciliation pass picks up the new
// path in case its Create event landed outside a watched dir.
func Watch(ctx context.Context, ix *Index, store storage.Provider, root string, exts []string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	// reconcileTimer is used to debounce rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcileAfterRename(ix, store, exts, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// --- Handle new directories: add to watcher ---
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					trackNewDir(ix, root, absPath, exts, logger, cb)
					continue
				}
			}

			if !storage.Tracked(absPath, exts) {
				continue
			}

			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&fsnotify.Create != 0:
				c := ix.Add(rel)
				logger.Debug("watcher: tracked", slog.String("path", rel), slog.String("code", c))
				if cb != nil {
					cb("created", rel, c)
				}

			case ev.Op&fsnotify.Remove != 0:
				c, known := ix.Get(rel)
				ix.Remove(rel)
				if known {
					logger.Debug("watcher: removed", slog.String("path", rel), slog.String("code", c))
					if cb != nil {
						cb("deleted", rel, c)
					}
				}

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only. The new
				// path arrives as a separate Create event (if it stays
				// within a watched dir). Remove the old entry now and
				// schedule a reconciliation pass for stragglers.
				c, known := ix.Get(rel)
				ix.Remove(rel)
				if known {
					logger.Debug("watcher: rename old removed", slog.String("path", rel), slog.String("code", c))
					if cb != nil {
						cb("deleted", rel, c)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcileAfterRename diffs the index against the disk: tracked paths
// whose files vanished are removed, files on disk that are untracked are
// added.
func reconcileAfterRename(ix *Index, store storage.Provider, exts []string, logger *slog.Logger, cb EventCallback) {
	metas, err := store.List("", exts)
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}
	}

	for p := range ix.Paths() {
		if _, ok := disk[p]; !ok {
			c, _ := ix.Get(p)
			ix.Remove(p)
			logger.Debug("reconcile: removed stale", slog.String("path", p))
			if cb != nil {
				cb("deleted", p, c)
			}
		}
	}

	tracked := ix.Paths()
	for p := range disk {
		if _, ok := tracked[p]; ok {
			continue
		}
		c := ix.Add(p)
		logger.Debug("reconcile: tracked new", slog.String("path", p), slog.String("code", c))
		if cb != nil {
			cb("created", p, c)
		}
	}
}

// trackNewDir tracks any files found in a newly created directory.
func trackNewDir(ix *Index, root, dirPath string, exts []string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !storage.Tracked(path, exts) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		c := ix.Add(rel)
		logger.Debug("watcher: tracked from new dir", slog.String("path", rel), slog.String("code", c))
		if cb != nil {
			cb("created", rel, c)
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
