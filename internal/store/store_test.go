package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddFileRejectsMissingPath(t *testing.T) {
	dir := t.TempDir()
	r := New()
	_, err := r.AddFile(filepath.Join(dir, "missing.txt"))
	if err == nil {
		t.Fatal("expected error adding nonexistent file")
	}
}

func TestAddFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "a.txt")
	r := New()

	ok, err := r.AddFile(path)
	if err != nil || !ok {
		t.Fatalf("first add: ok=%v err=%v", ok, err)
	}
	ok, err = r.AddFile(path)
	if err != nil || ok {
		t.Fatalf("second add should be a no-op: ok=%v err=%v", ok, err)
	}
}

func TestAddFileSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	r := New()
	ok, err := r.AddFile(dir)
	if err != nil || ok {
		t.Fatalf("adding a directory should be a silent no-op: ok=%v err=%v", ok, err)
	}
}

func TestSelfReferenceRejected(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "a.txt")
	r := New()
	if _, err := r.AddFile(path); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(path, []string{path}); err == nil {
		t.Fatal("expected self-reference to be rejected")
	}
}

func TestCycleRejected(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	if _, err := r.AddFile(a); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddFile(b); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(b, []string{a}); err == nil {
		t.Fatal("expected cycle a->b->a to be rejected")
	}
}

func TestRenameMovesReferencesAndResetsLastModified(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	c := touch(t, dir, "c.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	r.Files[b].LastModified = 0

	// c.txt stands in for b.txt renamed on disk
	if err := r.RenameFile(b, c); err != nil {
		t.Fatal(err)
	}
	if r.Files[c].LastModified == 0 {
		t.Fatal("rename should reset last-modified to now")
	}

	if _, ok := r.Files[b]; ok {
		t.Fatal("old path should no longer be tracked")
	}
	if _, ok := r.Files[c]; !ok {
		t.Fatal("new path should be tracked")
	}
	if _, ok := r.Files[a].References[c]; !ok {
		t.Fatal("reference should have followed the rename")
	}
	if _, ok := r.Files[a].References[b]; ok {
		t.Fatal("old reference should be gone")
	}
}

func TestRenameRejectsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.RenameFile(a, b); err == nil {
		t.Fatal("expected rename onto an already-tracked target to fail")
	}
}

func TestUpdateFilestampRequiresModification(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	r := New()
	if _, err := r.AddFile(a); err != nil {
		t.Fatal(err)
	}
	if err := r.UpdateFilestamp(a); err == nil {
		t.Fatal("expected update without modification to fail")
	}

	// Advance mtime.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(a, future, future); err != nil {
		t.Fatal(err)
	}
	if err := r.UpdateFilestamp(a); err != nil {
		t.Fatalf("update after modification should succeed: %v", err)
	}
}

func TestTrackModifiedFilesExcludesSkipSet(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}

	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(a, future, future); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(b, future, future); err != nil {
		t.Fatal(err)
	}

	modified, err := r.TrackModifiedFiles(map[string]bool{b: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(modified) != 1 || modified[0] != a {
		t.Fatalf("expected only a to be reported modified, got %v", modified)
	}
}

func TestSanityFixRemovesSelfReference(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	r := New()
	if _, err := r.AddFile(a); err != nil {
		t.Fatal(err)
	}
	// Bypass AddReference's own sanity guard to construct a broken store.
	r.Files[a].References[a] = struct{}{}

	if err := r.SanityFix(); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Files[a]; ok {
		t.Fatal("self-referencing entry should have been removed")
	}
}

func TestSanityFixDropsDanglingReference(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	r.Files[a].References[b] = struct{}{}
	// Remove b's store entry and its file but keep a's reference to it,
	// leaving a dangling edge that AddReference itself would never
	// create.
	delete(r.Files, b)
	if err := os.Remove(b); err != nil {
		t.Fatal(err)
	}

	if err := r.SanityFix(); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Files[a].References[b]; ok {
		t.Fatal("dangling reference should have been removed")
	}
}

func TestSaveAndReadFromFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}

	storePath := filepath.Join(dir, "rel")
	if err := r.SaveToFile(storePath); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadFromFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(loaded.Files))
	}
	if _, ok := loaded.Files[a].References[b]; !ok {
		t.Fatal("reference should survive round trip")
	}
}

func TestGetModifiedFilesConcurrentStat(t *testing.T) {
	dir := t.TempDir()
	r := New()
	var paths []string
	for i := 0; i < statConcurrency*3; i++ {
		p := touch(t, dir, fmt.Sprintf("f%d.txt", i))
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	future := time.Now().Add(2 * time.Second)
	for i, p := range paths {
		if i%2 == 0 {
			if err := os.Chtimes(p, future, future); err != nil {
				t.Fatal(err)
			}
		}
	}

	modified, err := r.GetModifiedFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(modified) != (len(paths)+1)/2 {
		t.Fatalf("expected %d modified files, got %d: %v", (len(paths)+1)/2, len(modified), modified)
	}
}

func TestRowsReflectsStatus(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	r := New()
	for _, p := range []string{a, b} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	r.Files[a].Status = Stale

	columns, rows := r.Rows(false)
	if len(columns) == 0 {
		t.Fatal("expected non-empty columns")
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	_, staleRows := r.Rows(true)
	if len(staleRows) != 1 || staleRows[0][0] != a {
		t.Fatalf("expected only %s in stale-only rows, got %v", a, staleRows)
	}
}

func TestFindDepends(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.txt")
	b := touch(t, dir, "b.txt")
	c := touch(t, dir, "c.txt")
	r := New()
	for _, p := range []string{a, b, c} {
		if _, err := r.AddFile(p); err != nil {
			t.Fatal(err)
		}
	}
	// a -> b -> c: both a and b depend on c.
	if err := r.AddReference(a, []string{b}); err != nil {
		t.Fatal(err)
	}
	if err := r.AddReference(b, []string{c}); err != nil {
		t.Fatal(err)
	}

	depends := r.FindDepends(c)
	if len(depends) != 2 {
		t.Fatalf("expected 2 dependents of c, got %v", depends)
	}
}
