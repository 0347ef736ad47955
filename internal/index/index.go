// Package index maintains the bidirectional path↔code mapping and keeps it
// in sync with the workspace through bulk loads and file-system events.
package index

import (
	"strings"
	"sync"

	"github.com/starford/raido/internal/code"
)

// Entry is one (code, path) pair currently reachable by code lookup.
type Entry struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

// Index holds the two mappings path→code and code→path. Both sides are
// mutated together under one lock, so no caller can observe one mapping
// without the matching change in the other.
//
// Codes are not unique: two paths may hash to the same code, in which case
// the most recently added path owns the code→path entry and the previous
// owner stays tracked under its own path key but becomes unreachable by
// code lookup. This last-write-wins rule is deliberate; see Add.
//
// The index is rebuilt by rehashing on every load — nothing is persisted,
// which is safe because code.Hash is pure and deterministic.
type Index struct {
	mu         sync.RWMutex
	pathToCode map[string]string
	codeToPath map[string]string
	order      []string // codes in first-insertion order
}

// New creates an empty index. The caller owns its lifecycle: populate it
// with Sync at startup, mutate it from event handlers, drop it at shutdown.
func New() *Index {
	return &Index{
		pathToCode: make(map[string]string),
		codeToPath: make(map[string]string),
	}
}

// Add tracks path under its deterministic code and returns the code.
// Idempotent: a path that is already tracked keeps its code. When the
// freshly computed code is already owned by a different path, the reverse
// mapping is silently overwritten (last write wins) while the old owner
// remains in path→code.
func (ix *Index) Add(path string) string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.addLocked(path)
}

func (ix *Index) addLocked(path string) string {
	if c, ok := ix.pathToCode[path]; ok {
		return c
	}
	c := code.Hash(path)
	if _, taken := ix.codeToPath[c]; !taken {
		ix.order = append(ix.order, c)
	}
	ix.pathToCode[path] = c
	ix.codeToPath[c] = path
	return c
}

// Remove untracks path, deleting the entry from both mappings. No-op for
// paths that were never tracked. The reverse entry for the path's code is
// removed unconditionally, matching the forward entry's lifecycle even
// after a collision overwrote ownership.
func (ix *Index) Remove(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(path)
}

func (ix *Index) removeLocked(path string) {
	c, ok := ix.pathToCode[path]
	if !ok {
		return
	}
	delete(ix.pathToCode, path)
	delete(ix.codeToPath, c)
	for i, oc := range ix.order {
		if oc == c {
			ix.order = append(ix.order[:i], ix.order[i+1:]...)
			break
		}
	}
}

// GetOrCreate returns the existing code for path, tracking it first if
// needed. This is the entry point most callers use; every queried path
// ends up tracked.
func (ix *Index) GetOrCreate(path string) string {
	return ix.Add(path)
}

// Get returns the code for a tracked path without creating one.
func (ix *Index) Get(path string) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.pathToCode[path]
	return c, ok
}

// Rename moves tracking from oldPath to newPath and returns the new code.
// The old entry is removed strictly before the new one is added so no
// stale reverse mapping lingers under the old path.
func (ix *Index) Rename(oldPath, newPath string) string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(oldPath)
	return ix.addLocked(newPath)
}

// Resolve formats rawCode and looks it up in code→path. Partial or
// incomplete codes never resolve.
func (ix *Index) Resolve(rawCode string) (string, bool) {
	c := code.Format(rawCode)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.codeToPath[c]
	return p, ok
}

// Search formats rawPrefix and returns every entry whose code starts with
// it, in insertion order. The result is a fresh slice, recomputed on every
// call — suggestion UIs re-run it per keystroke.
func (ix *Index) Search(rawPrefix string) []Entry {
	q := code.Format(rawPrefix)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []Entry
	for _, c := range ix.order {
		if strings.HasPrefix(c, q) {
			out = append(out, Entry{Code: c, Path: ix.codeToPath[c]})
		}
	}
	return out
}

// Entries returns all reachable entries in insertion order.
func (ix *Index) Entries() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Entry, 0, len(ix.order))
	for _, c := range ix.order {
		out = append(out, Entry{Code: c, Path: ix.codeToPath[c]})
	}
	return out
}

// Paths returns the set of all tracked paths, including collision losers
// that are no longer reachable by code.
func (ix *Index) Paths() map[string]struct{} {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make(map[string]struct{}, len(ix.pathToCode))
	for p := range ix.pathToCode {
		out[p] = struct{}{}
	}
	return out
}

// Len returns the number of tracked paths.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.pathToCode)
}
