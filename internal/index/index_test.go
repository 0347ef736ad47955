package index

import (
	"fmt"
	"strings"
	"testing"

	"github.com/starford/raido/internal/code"
)

func TestAdd_Idempotent(t *testing.T) {
	ix := New()
	first := ix.Add("notes/hello.md")
	second := ix.Add("notes/hello.md")
	if first != second {
		t.Errorf("Add not idempotent: %q vs %q", first, second)
	}
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
}

func TestAdd_MatchesHash(t *testing.T) {
	ix := New()
	c := ix.Add("a/b.md")
	if c != code.Hash("a/b.md") {
		t.Errorf("Add returned %q, want %q", c, code.Hash("a/b.md"))
	}
}

func TestResolve(t *testing.T) {
	ix := New()
	c := ix.Add("doc.md")

	p, ok := ix.Resolve(c)
	if !ok || p != "doc.md" {
		t.Errorf("Resolve(%q) = %q, %v; want doc.md, true", c, p, ok)
	}

	// Formatting is applied before lookup: messy input still resolves.
	messy := strings.ToLower(strings.ReplaceAll(c, "-", " "))
	if p, ok := ix.Resolve(messy); !ok || p != "doc.md" {
		t.Errorf("Resolve(%q) = %q, %v; want doc.md, true", messy, p, ok)
	}

	// A partial prefix never resolves.
	if _, ok := ix.Resolve(c[:2]); ok {
		t.Error("partial code should not resolve")
	}

	if _, ok := ix.Resolve("ZZ-ZZ"); ok && c != "ZZ-ZZ" {
		t.Error("unknown code should not resolve")
	}
}

func TestRemove(t *testing.T) {
	ix := New()
	c := ix.Add("gone.md")
	ix.Remove("gone.md")

	if _, ok := ix.Resolve(c); ok {
		t.Error("removed path should not resolve")
	}
	if ix.Len() != 0 {
		t.Errorf("Len = %d, want 0", ix.Len())
	}

	// Removing an untracked path is a no-op.
	ix.Remove("never-seen.md")
}

func TestRename(t *testing.T) {
	ix := New()
	oldCode := ix.Add("old.md")
	newCode := ix.Rename("old.md", "new.md")

	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want exactly 1 tracked path after rename", ix.Len())
	}
	if _, ok := ix.Get("old.md"); ok {
		t.Error("old path still tracked after rename")
	}
	if p, ok := ix.Resolve(newCode); !ok || p != "new.md" {
		t.Errorf("Resolve(newCode) = %q, %v", p, ok)
	}
	if oldCode != code.Hash("old.md") || newCode != code.Hash("new.md") {
		t.Error("rename must rehash, not reuse")
	}
}

func TestSearch_PrefixAndOrder(t *testing.T) {
	ix := New()
	paths := []string{"one.md", "two.md", "three.md", "four.md", "five.md"}
	codes := make([]string, len(paths))
	for i, p := range paths {
		codes[i] = ix.Add(p)
	}

	// Full code returns exactly that entry.
	got := ix.Search(codes[0])
	if len(got) != 1 || got[0].Path != paths[0] {
		t.Fatalf("Search(full code) = %v", got)
	}

	// Empty query returns everything in insertion order.
	all := ix.Search("")
	if len(all) != len(paths) {
		t.Fatalf("Search(\"\") returned %d entries, want %d", len(all), len(paths))
	}
	for i, e := range all {
		if e.Code != codes[i] || e.Path != paths[i] {
			t.Errorf("entry %d = %+v, want {%s %s}", i, e, codes[i], paths[i])
		}
	}

	// Two-symbol prefix returns every entry sharing it, nothing else.
	prefix := codes[0][:2]
	for _, e := range ix.Search(prefix) {
		if !strings.HasPrefix(e.Code, prefix) {
			t.Errorf("entry %+v does not match prefix %q", e, prefix)
		}
	}
}

func TestSearch_NoMatches(t *testing.T) {
	ix := New()
	c := ix.Add("only.md")
	// Pick a query guaranteed to differ in the first symbol.
	q := "A"
	if c[0] == 'A' {
		q = "B"
	}
	if got := ix.Search(q); len(got) != 0 {
		t.Errorf("Search(%q) = %v, want empty", q, got)
	}
}

func TestSearch_FormatsQuery(t *testing.T) {
	ix := New()
	c := ix.Add("fmt.md")
	messy := " " + strings.ToLower(c[:2]) + " "
	got := ix.Search(messy)
	if len(got) != 1 || got[0].Code != c {
		t.Errorf("Search(%q) = %v, want single entry %s", messy, got, c)
	}
}

// findCollision brute-forces two distinct paths hashing to the same code.
// The code space is 2^20, so a collision shows up after a couple of
// thousand paths in practice.
func findCollision(t *testing.T) (string, string) {
	t.Helper()
	seen := make(map[string]string)
	for i := 0; i < 1<<21; i++ {
		p := fmt.Sprintf("col/%d.md", i)
		c := code.Hash(p)
		if prev, ok := seen[c]; ok {
			return prev, p
		}
		seen[c] = p
	}
	t.Fatal("no collision found in 2^21 paths")
	return "", ""
}

func TestCollision_LastWriteWins(t *testing.T) {
	first, second := findCollision(t)

	ix := New()
	c1 := ix.Add(first)
	c2 := ix.Add(second)
	if c1 != c2 {
		t.Fatalf("expected colliding codes, got %q and %q", c1, c2)
	}

	// Both paths stay tracked under path→code.
	if got, ok := ix.Get(first); !ok || got != c1 {
		t.Errorf("first path lost its code: %q, %v", got, ok)
	}
	if got, ok := ix.Get(second); !ok || got != c1 {
		t.Errorf("second path lost its code: %q, %v", got, ok)
	}
	if ix.Len() != 2 {
		t.Errorf("Len = %d, want 2", ix.Len())
	}

	// The reverse mapping reflects only the most recent insert.
	if p, ok := ix.Resolve(c1); !ok || p != second {
		t.Errorf("Resolve(%q) = %q, want %q (last write wins)", c1, p, second)
	}
}

func TestCollision_RemoveWinnerDropsCode(t *testing.T) {
	first, second := findCollision(t)

	ix := New()
	c := ix.Add(first)
	ix.Add(second)

	// Removing the current owner removes the reverse entry; the earlier
	// path stays in path→code but is unreachable by code lookup.
	ix.Remove(second)
	if _, ok := ix.Resolve(c); ok {
		t.Error("code should not resolve after owner removed")
	}
	if _, ok := ix.Get(first); !ok {
		t.Error("collision loser should remain tracked under its path")
	}
}

func TestConsistency_RandomOps(t *testing.T) {
	ix := New()
	for i := 0; i < 300; i++ {
		ix.Add(fmt.Sprintf("f%d.md", i))
	}
	for i := 0; i < 300; i += 3 {
		ix.Remove(fmt.Sprintf("f%d.md", i))
	}
	for i := 0; i < 100; i += 7 {
		ix.Rename(fmt.Sprintf("f%d.md", i+1), fmt.Sprintf("r%d.md", i))
	}

	// Every reachable entry must agree in both directions.
	for _, e := range ix.Entries() {
		if got, ok := ix.Get(e.Path); !ok || got != e.Code {
			t.Errorf("entry %+v inconsistent with path→code (%q, %v)", e, got, ok)
		}
		if p, ok := ix.Resolve(e.Code); !ok || p != e.Path {
			t.Errorf("entry %+v inconsistent with code→path (%q, %v)", e, p, ok)
		}
	}
}
