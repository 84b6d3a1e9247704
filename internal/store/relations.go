package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/walk"
	"golang.org/x/sync/errgroup"
)

// AddFile tracks a new path. It fails when the path doesn't exist on
// disk; it is a no-op (returns false, nil) when the path is already
// tracked or is a directory. Sanity is checked (direct only) after
// insertion.
func (r *Relations) AddFile(path string) (bool, error) {
	abs := path
	if info, err := os.Stat(abs); err != nil {
		return false, rerr.New(rerr.TagAddFail, "invalid file path: path doesn't exist").Wrap(err)
	} else if info.IsDir() {
		return false, nil
	}

	if _, exists := r.Files[path]; exists {
		return false, nil
	}

	r.Files[path] = newTrackedFile(filepath.Base(path), time.Now().Unix())

	if err := r.SanityCheckFile(path, SanityDirect); err != nil {
		delete(r.Files, path)
		return false, err
	}

	return true, nil
}

// RemoveFile untracks path and strips it from every other file's
// reference set. Path need not exist on disk.
func (r *Relations) RemoveFile(path string) bool {
	if _, ok := r.Files[path]; !ok {
		return false
	}
	delete(r.Files, path)

	for _, f := range r.Files {
		delete(f.References, path)
	}
	return true
}

// RenameFile moves a tracked entry from oldPath to newPath. newPath must
// exist on disk and must not already be tracked; oldPath's on-disk
// existence is not checked (the caller may have already performed the
// filesystem rename). last_modified is reset to now to suppress a
// spurious modification detection on the next status/check; this reset
// is deliberate, not an oversight.
func (r *Relations) RenameFile(oldPath, newPath string) error {
	if !fileExists(newPath) {
		return rerr.New(rerr.TagRifIoError, fmt.Sprintf("%q doesn't exist", newPath))
	}
	if _, exists := r.Files[newPath]; exists {
		return rerr.New(rerr.TagRenameFail, fmt.Sprintf("rename target %q already exists", newPath))
	}

	tf, ok := r.Files[oldPath]
	if !ok {
		return rerr.New(rerr.TagRifIoError, "no file to rename")
	}
	delete(r.Files, oldPath)
	tf.Name = filepath.Base(newPath)
	tf.LastModified = time.Now().Unix()
	r.Files[newPath] = tf

	for _, f := range r.Files {
		if _, ok := f.References[oldPath]; ok {
			delete(f.References, oldPath)
			f.References[newPath] = struct{}{}
		}
	}
	return nil
}

// UpdateFilestamp advances a tracked file's timestamp and last-modified
// clock to the filesystem's current mtime. It fails when the path is
// unmodified since the stored last-modified time, unless the caller uses
// UpdateFilestampForce instead.
func (r *Relations) UpdateFilestamp(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return rerr.New(rerr.TagGetFail, "file doesn't exist").Wrap(err)
	}

	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to get file from relations store")
	}

	systemTime := info.ModTime().Unix()
	if f.LastModified >= systemTime {
		return rerr.New(rerr.TagUpdateError, "file is not modified, use --force to force update a file")
	}

	f.Timestamp = systemTime
	f.LastModified = systemTime
	return nil
}

// UpdateFilestampForce sets a tracked file's timestamp and last-modified
// clock to the current time regardless of whether it was modified.
func (r *Relations) UpdateFilestampForce(path string) error {
	if !fileExists(path) {
		return rerr.New(rerr.TagGetFail, "file doesn't exist")
	}
	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to get file from relations store")
	}
	now := time.Now().Unix()
	f.Timestamp = now
	f.LastModified = now
	return nil
}

// DiscardChange advances only last_modified, retaining the file's
// existing timestamp. Used to silence a detected modification without
// treating it as a real update.
func (r *Relations) DiscardChange(path string) error {
	if !fileExists(path) {
		return rerr.New(rerr.TagGetFail, "file doesn't exist")
	}
	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to get file from relations store")
	}
	f.LastModified = time.Now().Unix()
	return nil
}

// AddReference unions refs into path's reference set. Every ref must
// already be a tracked, existing file. A full indirect sanity check runs
// afterward so a newly-introduced cycle is rejected.
func (r *Relations) AddReference(path string, refs []string) error {
	for _, ref := range refs {
		if !fileExists(ref) {
			return rerr.New(rerr.TagAddFail, fmt.Sprintf("no such reference file exists: %s", ref))
		}
		if _, ok := r.Files[ref]; !ok {
			return rerr.New(rerr.TagAddFail, fmt.Sprintf("no such reference file exists in rif: %s", ref))
		}
	}

	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to set status of a file: non existent")
	}

	for _, ref := range refs {
		f.References[ref] = struct{}{}
	}

	return r.SanityCheck()
}

// RemoveReference subtracts refs from path's reference set. Unlike
// AddReference this does not validate that refs exist — removal must
// always be possible to recover from a bad state.
func (r *Relations) RemoveReference(path string, refs []string) error {
	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to set status of a file: non existent")
	}
	for _, ref := range refs {
		delete(f.References, ref)
	}
	return r.SanityCheck()
}

// SetFileStatus assigns a status directly, bypassing the checker. Used
// by the propagator when writing its sweep results back into the store.
func (r *Relations) SetFileStatus(path string, status Status) error {
	f, ok := r.Files[path]
	if !ok {
		return rerr.New(rerr.TagGetFail, "failed to set status of a file: non existent")
	}
	f.Status = status
	return nil
}

// GetDeletedFiles returns tracked paths that no longer exist on disk.
func (r *Relations) GetDeletedFiles() []string {
	var deleted []string
	for path := range r.Files {
		if !fileExists(path) {
			deleted = append(deleted, path)
		}
	}
	sort.Strings(deleted)
	return deleted
}

// GetModifiedFiles returns tracked paths whose filesystem mtime is newer
// than the stored last-modified time. Stats run concurrently, bounded
// to a small worker count, since each tracked path's stat is
// independent and a large tree otherwise pays the full syscall latency
// serially.
func (r *Relations) GetModifiedFiles() ([]string, error) {
	paths := make([]string, 0, len(r.Files))
	for path := range r.Files {
		paths = append(paths, path)
	}

	results := make([]bool, len(paths))
	var g errgroup.Group
	g.SetLimit(statConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				return nil // deleted files are reported separately
			}
			results[i] = r.Files[path].LastModified < info.ModTime().Unix()
			return nil
		})
	}
	_ = g.Wait() // stat errors are swallowed per-path above; Wait never returns one

	var modified []string
	for i, path := range paths {
		if results[i] {
			modified = append(modified, path)
		}
	}
	sort.Strings(modified)
	return modified, nil
}

// statConcurrency bounds the number of in-flight stat(2) calls
// GetModifiedFiles issues at once.
const statConcurrency = 16

// TrackModifiedFiles returns modified tracked paths that are not
// already present in skip, so a file pending commit isn't also
// reported as an unstaged change.
func (r *Relations) TrackModifiedFiles(skip map[string]bool) ([]string, error) {
	modified, err := r.GetModifiedFiles()
	if err != nil {
		return nil, err
	}
	out := modified[:0]
	for _, p := range modified {
		if !skip[p] {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindDepends returns every tracked path that transitively depends on
// (directly or indirectly references) target, excluding target itself.
func (r *Relations) FindDepends(target string) []string {
	seen := map[string]bool{}
	var depends []string
	next := []string{target}

	for len(next) > 0 {
		path := next[len(next)-1]
		next = next[:len(next)-1]
		if seen[path] {
			continue
		}
		seen[path] = true
		depends = append(depends, path)

		for parent, f := range r.Files {
			if _, ok := f.References[path]; ok {
				next = append(next, parent)
			}
		}
	}

	result := depends[:0]
	for _, p := range depends {
		if p != target {
			result = append(result, p)
		}
	}
	sort.Strings(result)
	return result
}

// TrackUnregisteredFiles walks root (normally the repo root) and calls
// report for every on-disk file that is neither tracked, blacklisted,
// nor already queued for registration.
func (r *Relations) TrackUnregisteredFiles(root string, isBlacklisted func(relPath string, isDir bool) bool, queuedForRegister map[string]bool, report func(relPath string)) error {
	return walk.Walk(root, func(full string, isDir bool) (walk.Branch, error) {
		rel, err := filepath.Rel(root, full)
		if err != nil {
			return walk.Exit, err
		}
		rel = filepath.ToSlash(rel)

		if isBlacklisted(rel, isDir) {
			if isDir {
				return walk.Exit, nil
			}
			return walk.Continue, nil
		}

		if !isDir {
			if queuedForRegister[rel] {
				return walk.Continue, nil
			}
			if _, tracked := r.Files[rel]; !tracked {
				report(rel)
			}
		}
		return walk.Continue, nil
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
