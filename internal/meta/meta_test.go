package meta

import (
	"os"
	"path/filepath"
	"testing"
)

func TestQueueAddedChoosesBucketByForce(t *testing.T) {
	m := New()
	m.QueueAdded("a.txt", false)
	m.QueueAdded("b.txt", true)

	if _, ok := m.ToAdd["a.txt"]; !ok {
		t.Fatal("plain queue should land in ToAdd")
	}
	if _, ok := m.ToForce["b.txt"]; !ok {
		t.Fatal("forced queue should land in ToForce")
	}
}

func TestQueueAddedDoesNotMoveAlreadyStagedFile(t *testing.T) {
	m := New()
	m.QueueAdded("a.txt", false)
	m.QueueAdded("a.txt", true) // should be ignored, already in ToAdd

	if _, ok := m.ToForce["a.txt"]; ok {
		t.Fatal("already-staged file should not move buckets")
	}
	if _, ok := m.ToAdd["a.txt"]; !ok {
		t.Fatal("file should remain in its original bucket")
	}
}

func TestRemoveAddQueueClearsAllBuckets(t *testing.T) {
	m := New()
	m.QueueRegister("a.txt")
	m.QueueAdded("b.txt", false)
	m.QueueAdded("c.txt", true)

	m.RemoveAddQueue("a.txt")
	m.RemoveAddQueue("b.txt")
	m.RemoveAddQueue("c.txt")

	if !m.IsEmpty() {
		t.Fatalf("expected all addition buckets cleared, got %+v", m)
	}
}

func TestRemoveNonExistentPrunesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(present, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")

	m := New()
	m.QueueAdded(present, false)
	m.QueueAdded(missing, false)

	m.RemoveNonExistent()

	if _, ok := m.ToAdd[present]; !ok {
		t.Fatal("present file should survive the prune")
	}
	if _, ok := m.ToAdd[missing]; ok {
		t.Fatal("missing file should be pruned")
	}
}

func TestQueueDeletedEvictsAddAndForceBuckets(t *testing.T) {
	m := New()
	m.QueueAdded("a.txt", false)
	m.QueueAdded("b.txt", true)

	m.QueueDeleted("a.txt")
	m.QueueDeleted("b.txt")

	if _, ok := m.ToAdd["a.txt"]; ok {
		t.Fatal("deleting a file should evict it from ToAdd")
	}
	if _, ok := m.ToForce["b.txt"]; ok {
		t.Fatal("deleting a file should evict it from ToForce")
	}
	if _, ok := m.ToDelete["a.txt"]; !ok {
		t.Fatal("a.txt should be staged for deletion")
	}
	if _, ok := m.ToDelete["b.txt"]; !ok {
		t.Fatal("b.txt should be staged for deletion")
	}
}

func TestClearEmptiesEveryBucket(t *testing.T) {
	m := New()
	m.QueueRegister("a.txt")
	m.QueueAdded("b.txt", false)
	m.QueueAdded("c.txt", true)
	m.QueueDeleted("d.txt")

	m.Clear()

	if !m.IsEmpty() {
		t.Fatalf("expected empty buffer after Clear, got %+v", m)
	}
}

func TestToBeAddedLaterUnionsThreeBuckets(t *testing.T) {
	m := New()
	m.QueueRegister("a.txt")
	m.QueueAdded("b.txt", false)
	m.QueueAdded("c.txt", true)
	m.QueueDeleted("d.txt") // not part of the addition union

	got := map[string]bool{}
	for _, p := range m.ToBeAddedLater() {
		got[p] = true
	}
	if len(got) != 3 || !got["a.txt"] || !got["b.txt"] || !got["c.txt"] {
		t.Fatalf("unexpected union: %v", got)
	}
	if got["d.txt"] {
		t.Fatal("to-be-deleted should not appear in the addition union")
	}
}

func TestSaveAndReadFromFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New()
	m.QueueRegister("a.txt")
	m.QueueAdded("b.txt", false)
	m.QueueDeleted("c.txt")

	path := filepath.Join(dir, "meta")
	if err := m.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := loaded.ToRegister["a.txt"]; !ok {
		t.Fatal("ToRegister should survive round trip")
	}
	if _, ok := loaded.ToAdd["b.txt"]; !ok {
		t.Fatal("ToAdd should survive round trip")
	}
	if _, ok := loaded.ToDelete["c.txt"]; !ok {
		t.Fatal("ToDelete should survive round trip")
	}
}
