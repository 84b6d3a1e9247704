package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rif-tools/rif/internal/store"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckLeavesIsolatedFileFresh(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	r := store.New()
	if _, err := r.AddFile(a); err != nil {
		t.Fatal(err)
	}

	c := New(r)
	if _, err := c.Check(r); err != nil {
		t.Fatal(err)
	}
	if r.Files[a].Status != store.Fresh {
		t.Fatalf("isolated file should be Fresh, got %s", r.Files[a].Status)
	}
}

func TestCheckPropagatesStaleFromNewerChild(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := store.New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}

	// b is newer than a.
	r.Files[b].Timestamp = r.Files[a].Timestamp + 100

	c := New(r)
	changes, err := c.Check(r)
	if err != nil {
		t.Fatal(err)
	}
	if r.Files[a].Status != store.Stale {
		t.Fatalf("a should become Stale since b is newer, got %s", r.Files[a].Status)
	}
	if len(changes) != 1 || changes[0].Path != a || changes[0].Status != store.Stale {
		t.Fatalf("expected a single Stale change for a, got %+v", changes)
	}
}

func TestCheckPropagatesStaleTransitively(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	c := touch(t, dir, "c.txt")
	r := store.New()
	for _, p := range []string{a, b, c} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	// a -> b -> c
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(b, []string{c}); err != nil {
		t.Fatal(err)
	}

	r.Files[c].Timestamp = r.Files[b].Timestamp + 100
	// Manually mark b Stale as a prior check would have.
	r.Files[b].Status = store.Stale

	ck := New(r)
	if _, err := ck.Check(r); err != nil {
		t.Fatal(err)
	}
	if r.Files[a].Status != store.Stale {
		t.Fatalf("a should inherit staleness through b, got %s", r.Files[a].Status)
	}
}

func TestCheckKeepsFreshWhenChildIsOlder(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := store.New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	r.Files[b].Timestamp = r.Files[a].Timestamp - 100

	c := New(r)
	if _, err := c.Check(r); err != nil {
		t.Fatal(err)
	}
	if r.Files[a].Status != store.Fresh {
		t.Fatalf("a should remain Fresh when b is older, got %s", r.Files[a].Status)
	}
}

func TestCheckReturnsNoChangesWhenStatusUnchanged(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	r := store.New()
	if _, err := r.AddFile(a); err != nil {
		t.Fatal(err)
	}

	c := New(r)
	changes, err := c.Check(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes for an already-Fresh isolated file, got %+v", changes)
	}
}

// A chain's staleness surfaces one hop per Check call: a single sweep
// compares each node only against its children's currently-stored
// status, so a three-deep chain needs two successive checks (as `rif
// check` run on two successive invocations, persisting the store
// between them) to propagate fully.
func TestCheckPropagatesOneHopPerCall(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	c := touch(t, dir, "c.txt")
	r := store.New()
	for _, p := range []string{a, b, c} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	// a -> b -> c, with c newer than everything else.
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(b, []string{c}); err != nil {
		t.Fatal(err)
	}
	r.Files[c].Timestamp = r.Files[a].Timestamp + 100

	if _, err := New(r).Check(r); err != nil {
		t.Fatal(err)
	}
	if r.Files[b].Status != store.Stale {
		t.Fatalf("first check should mark b Stale from newer c, got %s", r.Files[b].Status)
	}
	if r.Files[a].Status != store.Fresh {
		t.Fatalf("first check should not yet reach a, got %s", r.Files[a].Status)
	}

	if _, err := New(r).Check(r); err != nil {
		t.Fatal(err)
	}
	if r.Files[a].Status != store.Stale {
		t.Fatalf("second check should propagate b's staleness to a, got %s", r.Files[a].Status)
	}
}
