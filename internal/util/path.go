package util

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rif-tools/rif/internal/rerr"
)

const (
	RifDir      = ".rif"
	RelFile     = "rel"
	HistoryFile = "history"
	ConfigFile  = "config"
	MetaFile    = "meta"
	LockFile    = "lock"
)

// FindRepoRoot walks up from the current directory to find a .rif directory.
func FindRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRepoRootFrom(dir)
}

// FindRepoRootFrom walks up from the given directory to find a .rif directory.
func FindRepoRootFrom(start string) (string, error) {
	dir := start
	for {
		rifPath := filepath.Join(dir, RifDir)
		if info, err := os.Stat(rifPath); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", rerr.ErrNotARepository
		}
		dir = parent
	}
}

// RifPath returns the path to the .rif directory.
func RifPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir)
}

// RelPath returns the path to the relations store file.
func RelPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir, RelFile)
}

// HistoryPath returns the path to the history file.
func HistoryPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir, HistoryFile)
}

// ConfigPath returns the path to the per-repository config file.
func ConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir, ConfigFile)
}

// MetaPath returns the path to the staging metadata file.
func MetaPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir, MetaFile)
}

// LockPath returns the path to the advisory lock file.
func LockPath(repoRoot string) string {
	return filepath.Join(repoRoot, RifDir, LockFile)
}

// lockStaleAfter bounds how long a lock file may sit before TryLock
// treats it as abandoned by a crashed process rather than held by a
// live one, and removes it before retrying acquisition once.
const lockStaleAfter = 30 * time.Second

// TryLock best-effort-acquires the advisory lock at LockPath(repoRoot)
// via exclusive file creation. It never blocks: if the lock file
// already exists and is fresh, TryLock returns ok=false and the caller
// proceeds without it (no file lock is a documented limitation, not a
// correctness requirement). A lock file older than lockStaleAfter is
// assumed abandoned and cleared before one retry. On success, call
// Unlock to release it.
func TryLock(repoRoot string) (ok bool) {
	path := LockPath(repoRoot)
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644); err == nil {
		f.Close()
		return true
	}

	if info, err := os.Stat(path); err == nil && time.Since(info.ModTime()) > lockStaleAfter {
		os.Remove(path)
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644); err == nil {
			f.Close()
			return true
		}
	}
	return false
}

// Unlock releases a lock previously acquired with TryLock.
func Unlock(repoRoot string) {
	os.Remove(LockPath(repoRoot))
}

// RelativePath converts an absolute path to a slash-normalized path relative
// to the repo root. This is the canonical form stored in the relations store:
// always forward-slashed regardless of host OS.
func RelativePath(repoRoot, absPath string) (string, error) {
	rel, err := filepath.Rel(repoRoot, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// AbsolutePath converts a stored slash-normalized path back to an absolute,
// OS-native path under repoRoot.
func AbsolutePath(repoRoot, relPath string) string {
	return filepath.Join(repoRoot, filepath.FromSlash(relPath))
}

// IsInsideRepo reports whether path lies inside repoRoot and outside .rif.
func IsInsideRepo(repoRoot, path string) bool {
	rel, err := filepath.Rel(repoRoot, path)
	if err != nil {
		return false
	}
	if strings.HasPrefix(rel, "..") || rel == RifDir || strings.HasPrefix(rel, RifDir+string(filepath.Separator)) {
		return false
	}
	return true
}

// FileExists reports whether path exists on disk (file or directory).
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ModTimeUnix returns a file's modification time as Unix seconds.
func ModTimeUnix(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}
