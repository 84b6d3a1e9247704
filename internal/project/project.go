// Package project implements rif's project controller (C4): the
// top-level orchestration of the relations store, propagator, staging
// buffer, history and hook for a single repository.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rif-tools/rif/internal/checker"
	"github.com/rif-tools/rif/internal/config"
	"github.com/rif-tools/rif/internal/history"
	"github.com/rif-tools/rif/internal/hook"
	"github.com/rif-tools/rif/internal/ignore"
	"github.com/rif-tools/rif/internal/meta"
	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/store"
	"github.com/rif-tools/rif/internal/util"
	"github.com/rif-tools/rif/internal/walk"
)

// Project holds every loaded sub-store for one repository, constructed
// once per command invocation: the relations store, history, staging
// buffer and config each persist to their own file under .rif/.
type Project struct {
	Root      string
	Config    *config.Config
	History   *history.History
	Relations *store.Relations
	Meta      *meta.Meta
	Ignore    *ignore.Patterns
}

// Init creates a new .rif directory at path (the current directory if
// path is empty).
func Init(path string, createRifIgnore bool) (*Project, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to resolve current directory")
		}
		path = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to resolve %s", path)
	}

	rifPath := util.RifPath(abs)
	if util.FileExists(rifPath) {
		return nil, rerr.ErrAlreadyInitialized
	}
	if err := os.MkdirAll(rifPath, 0755); err != nil {
		return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to create %s", rifPath)
	}

	rel := store.New()
	hist := history.New()
	cfg := config.Default()
	mt := meta.New()

	if err := rel.SaveToFile(util.RelPath(abs)); err != nil {
		return nil, err
	}
	if err := hist.SaveToFile(util.HistoryPath(abs)); err != nil {
		return nil, err
	}
	if err := cfg.SaveToFile(util.ConfigPath(abs)); err != nil {
		return nil, err
	}
	if err := mt.SaveToFile(util.MetaPath(abs)); err != nil {
		return nil, err
	}

	if createRifIgnore {
		if err := os.WriteFile(filepath.Join(abs, ".rifignore"), []byte(".git\n"), 0644); err != nil {
			return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to write .rifignore")
		}
	}

	ig, err := ignore.Load(abs, cfg.UseGitignore)
	if err != nil {
		return nil, err
	}

	return &Project{Root: abs, Config: cfg, History: hist, Relations: rel, Meta: mt, Ignore: ig}, nil
}

// Open loads an existing repository, walking up from path (the current
// directory if path is empty) to find .rif, and changes the process's
// working directory to the repository root so every store operation's
// direct os.Stat/os.Remove on a stored relative path resolves correctly.
func Open(path string) (*Project, error) {
	return open(path, false)
}

// OpenUnchecked is like Open but loads the relations store without
// running its full indirect sanity check, used by `rif sanity --fix`
// to load a store an external edit may have already left invalid,
// grounded on store's ReadAsRaw (see its doc comment).
func OpenUnchecked(path string) (*Project, error) {
	return open(path, true)
}

func open(path string, skipSanity bool) (*Project, error) {
	var root string
	var err error
	if path == "" {
		root, err = util.FindRepoRoot()
	} else {
		root, err = util.FindRepoRootFrom(path)
	}
	if err != nil {
		return nil, err
	}

	if err := os.Chdir(root); err != nil {
		return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to enter repository root %s", root)
	}

	cfg, err := config.ReadFromFile(util.ConfigPath(root))
	if err != nil {
		return nil, err
	}
	hist, err := history.ReadFromFile(util.HistoryPath(root))
	if err != nil {
		return nil, err
	}

	var rel *store.Relations
	if skipSanity {
		rel, err = store.ReadAsRaw(util.RelPath(root))
	} else {
		rel, err = store.ReadFromFile(util.RelPath(root))
	}
	if err != nil {
		return nil, err
	}

	mt, err := meta.ReadFromFile(util.MetaPath(root))
	if err != nil {
		return nil, err
	}
	ig, err := ignore.Load(root, cfg.UseGitignore)
	if err != nil {
		return nil, err
	}

	return &Project{Root: root, Config: cfg, History: hist, Relations: rel, Meta: mt, Ignore: ig}, nil
}

func (p *Project) saveRelations() error { return p.Relations.SaveToFile(util.RelPath(p.Root)) }
func (p *Project) saveHistory() error   { return p.History.SaveToFile(util.HistoryPath(p.Root)) }
func (p *Project) saveMeta() error      { return p.Meta.SaveToFile(util.MetaPath(p.Root)) }
func (p *Project) saveConfig() error    { return p.Config.SaveToFile(util.ConfigPath(p.Root)) }

func (p *Project) isBlacklisted(relPath string, isDir bool) bool {
	return p.Ignore.IsIgnored(relPath, isDir)
}

// withLock brackets a store-mutating operation with the best-effort
// advisory lock on .rif/lock. Acquisition never blocks: a contended
// lock is simply skipped, so a losing concurrent writer still runs
// (last writer wins), matching the documented concurrency model.
func (p *Project) withLock(fn func() error) error {
	held := util.TryLock(p.Root)
	if held {
		defer util.Unlock(p.Root)
	}
	return fn()
}

// Add stages files for the next commit: a directory argument recurses
// (addDirectory), "." expands to the current directory, a nonexistent
// path is silently skipped, an already-tracked path is queued via
// addOldFile, and everything else is queued via addNewFile.
func (p *Project) Add(paths []string, force bool) error {
	return p.withLock(func() error {
		for _, raw := range paths {
			path := raw
			if path == "." {
				wd, err := os.Getwd()
				if err != nil {
					return rerr.Wrapf(rerr.TagRifIoError, err, "failed to resolve current directory")
				}
				path = wd
			}

			info, err := os.Stat(path)
			if err != nil {
				continue // nonexistent paths are silently ignored
			}
			if info.IsDir() {
				if err := p.addDirectory(path, force); err != nil {
					return err
				}
				continue
			}

			rel, err := util.RelativePath(p.Root, absPath(path))
			if err != nil {
				return rerr.Wrapf(rerr.TagAddFail, err, "failed to relativize %s", path)
			}
			if p.isBlacklisted(rel, false) {
				continue
			}

			if _, tracked := p.Relations.Files[rel]; tracked {
				p.addOldFile(rel, force)
			} else {
				p.addNewFile(rel)
			}
		}

		if err := p.saveRelations(); err != nil {
			return err
		}
		return p.saveMeta()
	})
}

func absPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func (p *Project) addNewFile(rel string) {
	p.Meta.QueueRegister(rel)
}

func (p *Project) addOldFile(rel string, force bool) {
	if util.FileExists(util.AbsolutePath(p.Root, rel)) {
		p.Meta.QueueAdded(rel, force)
	} else {
		p.Meta.QueueDeleted(rel)
	}
}

// addDirectory walks dir, classifying every file it finds as a new
// registration, a modified-file update, or (for files under a
// now-removed subtree previously tracked) a staged deletion.
func (p *Project) addDirectory(dir string, force bool) error {
	modified, err := p.Relations.GetModifiedFiles()
	if err != nil {
		return err
	}
	modifiedSet := map[string]bool{}
	for _, m := range modified {
		modifiedSet[m] = true
	}

	dirRel, err := util.RelativePath(p.Root, absPath(dir))
	if err != nil {
		return rerr.Wrapf(rerr.TagAddFail, err, "failed to relativize %s", dir)
	}
	for _, d := range p.Relations.GetDeletedFiles() {
		if dirRel == "." || strings.HasPrefix(d, dirRel+"/") {
			p.Meta.QueueDeleted(d)
		}
	}

	return walk.Walk(dir, func(full string, isDir bool) (walk.Branch, error) {
		rel, err := util.RelativePath(p.Root, absPath(full))
		if err != nil {
			return walk.Exit, err
		}

		if p.isBlacklisted(rel, isDir) {
			if isDir {
				return walk.Exit, nil
			}
			return walk.Continue, nil
		}
		if isDir {
			return walk.Continue, nil
		}

		if modifiedSet[rel] {
			p.Meta.QueueAdded(rel, force)
		} else if _, tracked := p.Relations.Files[rel]; !tracked {
			p.Meta.QueueRegister(rel)
		}
		return walk.Continue, nil
	})
}

// Revert un-stages files (or everything, when paths is empty).
func (p *Project) Revert(paths []string) error {
	return p.withLock(func() error {
		if len(paths) == 0 {
			p.Meta.Clear()
		} else {
			for _, raw := range paths {
				rel, err := util.RelativePath(p.Root, absPath(raw))
				if err != nil {
					return rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", raw)
				}
				p.Meta.RemoveAddQueue(rel)
			}
		}
		return p.saveMeta()
	})
}

// Commit applies every staged change: deletions, new registrations,
// forced updates and plain updates, then runs the propagator and
// clears the staging buffer.
func (p *Project) Commit(message string) error {
	return p.withLock(func() error {
		if len(p.Relations.GetDeletedFiles()) != len(p.Meta.ToDelete) {
			return rerr.New(rerr.TagCommitFail, "commit without deleted files staged is rejected")
		}

		for path := range p.Meta.ToDelete {
			p.removeFile(path)
		}
		for path := range p.Meta.ToRegister {
			if err := p.registerNewFile(path, message); err != nil {
				return err
			}
		}
		for path := range p.Meta.ToForce {
			if err := p.Relations.UpdateFilestampForce(path); err != nil {
				return err
			}
		}
		for path := range p.Meta.ToAdd {
			if err := p.Relations.UpdateFilestamp(path); err != nil {
				return err
			}
			if message != "" {
				p.History.AddHistory(path, message)
			}
		}

		if len(p.Meta.ToBeAddedLater()) != 0 {
			if err := p.checkExec(); err != nil {
				return err
			}
		}

		p.Meta.Clear()

		if err := p.saveMeta(); err != nil {
			return err
		}
		if err := p.saveRelations(); err != nil {
			return err
		}
		return p.saveHistory()
	})
}

func (p *Project) removeFile(path string) {
	p.Relations.RemoveFile(path)
	p.History.RemoveFile(path)
}

// registerNewFile adds path (recursing through a directory) into the
// relations store.
func (p *Project) registerNewFile(path, message string) error {
	abs := util.AbsolutePath(p.Root, path)
	info, err := os.Stat(abs)
	if err != nil {
		return nil // already gone by commit time; nothing to register
	}

	if info.IsDir() {
		return walk.Walk(abs, func(full string, isDir bool) (walk.Branch, error) {
			rel, err := util.RelativePath(p.Root, absPath(full))
			if err != nil {
				return walk.Exit, err
			}
			if p.isBlacklisted(rel, isDir) {
				if isDir {
					return walk.Exit, nil
				}
				return walk.Continue, nil
			}
			if isDir {
				return walk.Continue, nil
			}
			if _, err := p.Relations.AddFile(rel); err != nil {
				return walk.Exit, err
			}
			return walk.Continue, nil
		})
	}

	if _, err := p.Relations.AddFile(path); err != nil {
		return err
	}
	p.History.AddHistory(path, message)
	return nil
}

// Discard silences a detected modification without treating it as a
// real update.
func (p *Project) Discard(path string) error {
	return p.withLock(func() error {
		rel, err := util.RelativePath(p.Root, absPath(path))
		if err != nil {
			return rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", path)
		}
		if err := p.Relations.DiscardChange(rel); err != nil {
			return err
		}
		return p.saveRelations()
	})
}

// Rename moves a tracked file on disk (if it exists) and in the
// relations store.
func (p *Project) Rename(sourceName, newName string) error {
	return p.withLock(func() error {
		sourceRel, err := util.RelativePath(p.Root, absPath(sourceName))
		if err != nil {
			return rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", sourceName)
		}
		newRel, err := util.RelativePath(p.Root, absPath(newName))
		if err != nil {
			return rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", newName)
		}

		if _, exists := p.Relations.Files[newRel]; exists {
			return rerr.New(rerr.TagRenameFail, fmt.Sprintf("rename target %q already exists", newRel))
		}

		sourceAbs := util.AbsolutePath(p.Root, sourceRel)
		newAbs := util.AbsolutePath(p.Root, newRel)
		if _, tracked := p.Relations.Files[sourceRel]; tracked && util.FileExists(sourceAbs) {
			if util.FileExists(newAbs) {
				return rerr.New(rerr.TagRenameFail, "new name already exists")
			}
			if err := os.Rename(sourceAbs, newAbs); err != nil {
				return rerr.Wrapf(rerr.TagRenameFail, err, "failed to rename %s to %s", sourceAbs, newAbs)
			}
		}

		if err := p.Relations.RenameFile(sourceRel, newRel); err != nil {
			return err
		}
		p.History.Rename(sourceRel, newRel)
		if err := p.saveRelations(); err != nil {
			return err
		}
		return p.saveHistory()
	})
}

// Remove untracks files.
func (p *Project) Remove(paths []string) error {
	return p.withLock(func() error {
		for _, raw := range paths {
			rel, err := util.RelativePath(p.Root, absPath(raw))
			if err != nil {
				return rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", raw)
			}
			p.removeFile(rel)
		}
		if err := p.saveRelations(); err != nil {
			return err
		}
		return p.saveHistory()
	})
}

// Set adds references from file to refs.
func (p *Project) Set(file string, refs []string) error {
	return p.withLock(func() error {
		rel, refRels, err := p.relativizeFileAndRefs(file, refs)
		if err != nil {
			return err
		}
		if err := p.Relations.AddReference(rel, refRels); err != nil {
			return err
		}
		return p.saveRelations()
	})
}

// Unset removes references from file.
func (p *Project) Unset(file string, refs []string) error {
	return p.withLock(func() error {
		rel, refRels, err := p.relativizeFileAndRefs(file, refs)
		if err != nil {
			return err
		}
		if err := p.Relations.RemoveReference(rel, refRels); err != nil {
			return err
		}
		return p.saveRelations()
	})
}

func (p *Project) relativizeFileAndRefs(file string, refs []string) (string, []string, error) {
	rel, err := util.RelativePath(p.Root, absPath(file))
	if err != nil {
		return "", nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", file)
	}
	refRels := make([]string, len(refs))
	for i, ref := range refs {
		r, err := util.RelativePath(p.Root, absPath(ref))
		if err != nil {
			return "", nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", ref)
		}
		refRels[i] = r
	}
	return rel, refRels, nil
}

// Check runs the propagator, rejecting the run outright while any
// tracked file no longer exists on disk, whether or not its deletion
// is staged.
func (p *Project) Check() error {
	if len(p.Relations.GetDeletedFiles()) != 0 {
		return rerr.New(rerr.TagCheckerError, "check with deleted files pending is rejected, commit the staged deletion or rm the file first")
	}
	return p.checkExec()
}

func (p *Project) checkExec() error {
	return p.withLock(func() error {
		c := checker.New(p.Relations)
		changes, err := c.Check(p.Relations)
		if err != nil {
			return err
		}

		if len(changes) != 0 && p.Config.Hook.Trigger {
			files := make([]hook.File, len(changes))
			for i, ch := range changes {
				files[i] = hook.File{Path: ch.Path, Status: ch.Status}
			}
			h := &hook.Hook{Trigger: p.Config.Hook.Trigger, Command: p.Config.Hook.Command, ArgType: p.Config.Hook.ArgType}
			if err := h.Execute(files); err != nil {
				return err
			}
		}

		return p.saveRelations()
	})
}

// Sanity runs (or fixes) the store's invariant check.
func (p *Project) Sanity(fix bool) error {
	if !fix {
		return p.Relations.SanityCheck()
	}
	return p.withLock(func() error {
		if err := p.Relations.SanityFix(); err != nil {
			return err
		}
		return p.saveRelations()
	})
}

// Depend returns every tracked path that transitively depends on file.
func (p *Project) Depend(file string) ([]string, error) {
	rel, err := util.RelativePath(p.Root, absPath(file))
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", file)
	}
	return p.Relations.FindDepends(rel), nil
}
