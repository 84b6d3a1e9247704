package history

import (
	"path/filepath"
	"testing"
)

func TestAddHistoryAppends(t *testing.T) {
	h := New()
	h.AddHistory("a.txt", "first")
	h.AddHistory("a.txt", "second")

	if len(h.Entries["a.txt"]) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(h.Entries["a.txt"]))
	}
	if h.Entries["a.txt"][0].Text != "first" || h.Entries["a.txt"][1].Text != "second" {
		t.Fatal("notes should be stored in append order")
	}
}

func TestAddHistoryAssignsDistinctIDs(t *testing.T) {
	h := New()
	h.AddHistory("a.txt", "first")
	h.AddHistory("a.txt", "second")

	ids := h.Entries["a.txt"]
	if ids[0].ID == "" || ids[1].ID == "" {
		t.Fatal("every note should have a non-empty ID")
	}
	if ids[0].ID == ids[1].ID {
		t.Fatal("notes should have distinct IDs")
	}
}

func TestNotesReturnsNewestFirst(t *testing.T) {
	h := New()
	h.AddHistory("a.txt", "oldest")
	h.AddHistory("a.txt", "newest")

	notes := h.Notes("a.txt")
	if len(notes) != 2 || notes[0].Text != "newest" || notes[1].Text != "oldest" {
		t.Fatalf("expected newest-first order, got %+v", notes)
	}
}

func TestNotesForUnknownPathIsEmpty(t *testing.T) {
	h := New()
	if len(h.Notes("missing.txt")) != 0 {
		t.Fatal("expected no notes for an untracked path")
	}
}

func TestRemoveFileDropsEntries(t *testing.T) {
	h := New()
	h.AddHistory("a.txt", "msg")
	h.RemoveFile("a.txt")
	if _, ok := h.Entries["a.txt"]; ok {
		t.Fatal("expected entries removed")
	}
}

func TestRenameMovesEntries(t *testing.T) {
	h := New()
	h.AddHistory("a.txt", "msg")
	h.Rename("a.txt", "b.txt")

	if _, ok := h.Entries["a.txt"]; ok {
		t.Fatal("old path should no longer have entries")
	}
	if len(h.Entries["b.txt"]) != 1 {
		t.Fatal("new path should carry the old notes")
	}
}

func TestSaveAndReadFromFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	h := New()
	h.AddHistory("a.txt", "msg one")
	h.AddHistory("a.txt", "msg two")

	path := filepath.Join(dir, "history")
	if err := h.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Entries["a.txt"]) != 2 {
		t.Fatalf("expected 2 notes after round trip, got %d", len(loaded.Entries["a.txt"]))
	}
	if loaded.Entries["a.txt"][0].ID == "" {
		t.Fatal("ID should survive gob round trip")
	}
}
