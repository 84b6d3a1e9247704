package util

import (
	"os"
	"testing"
	"time"
)

func TestTryLockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(RifPath(dir), 0755); err != nil {
		t.Fatal(err)
	}

	if ok := TryLock(dir); !ok {
		t.Fatal("first TryLock should succeed")
	}
	if ok := TryLock(dir); ok {
		t.Fatal("second TryLock should fail while the lock is held")
	}

	Unlock(dir)
	if ok := TryLock(dir); !ok {
		t.Fatal("TryLock should succeed again after Unlock")
	}
	Unlock(dir)
}

func TestTryLockReclaimsStaleLock(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(RifPath(dir), 0755); err != nil {
		t.Fatal(err)
	}

	if ok := TryLock(dir); !ok {
		t.Fatal("initial TryLock should succeed")
	}

	// Simulate a lock left behind by a crashed process.
	stale := time.Now().Add(-2 * lockStaleAfter)
	if err := os.Chtimes(LockPath(dir), stale, stale); err != nil {
		t.Fatal(err)
	}

	if ok := TryLock(dir); !ok {
		t.Fatal("TryLock should reclaim a stale lock file")
	}
	Unlock(dir)
}
