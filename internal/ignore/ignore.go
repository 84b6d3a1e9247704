// Package ignore implements rif's blacklist: the set of paths that add and
// the unregistered-file scan must skip. Patterns come from .gitignore and
// .rifignore, plus the always-blacklisted .rif directory and .rifignore
// file itself.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rif-tools/rif/internal/util"
)

// Patterns holds the ignore patterns loaded for a repository.
type Patterns struct {
	patterns []pattern
}

type pattern struct {
	pattern  string
	negation bool // pattern starts with !
	dirOnly  bool // pattern ends with /
}

// Load reads .gitignore and .rifignore from repoRoot. useGitignore controls
// whether .gitignore is consulted at all; .rifignore is always read and
// always takes precedence over .gitignore.
func Load(repoRoot string, useGitignore bool) (*Patterns, error) {
	p := &Patterns{}

	// The .rif directory and .rifignore file are never addable.
	p.patterns = append(p.patterns, pattern{pattern: util.RifDir, dirOnly: true})
	p.patterns = append(p.patterns, pattern{pattern: ".rifignore"})

	if useGitignore {
		if err := p.loadFile(filepath.Join(repoRoot, ".gitignore")); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := p.loadFile(filepath.Join(repoRoot, ".rifignore")); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return p, nil
}

func (p *Patterns) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p.addPattern(scanner.Text())
	}
	return scanner.Err()
}

func (p *Patterns) addPattern(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	np := pattern{}
	if strings.HasPrefix(line, "!") {
		np.negation = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		np.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	np.pattern = line
	p.patterns = append(p.patterns, np)
}

// IsIgnored reports whether path (slash-normalized, relative to repo root)
// should be ignored.
func (p *Patterns) IsIgnored(path string, isDir bool) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for _, pat := range p.patterns {
		if pat.dirOnly && !isDir {
			continue
		}
		if matches(pat.pattern, path) {
			ignored = !pat.negation
		}
	}
	return ignored
}

func matches(pattern, path string) bool {
	if !strings.Contains(pattern, "/") {
		return matchGlob(pattern, filepath.Base(path))
	}
	pattern = strings.TrimPrefix(pattern, "/")
	return matchGlob(pattern, path)
}

func matchGlob(pattern, name string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoublestar(pattern, name)
	}
	matched, _ := filepath.Match(pattern, name)
	return matched
}

func matchDoublestar(pattern, name string) bool {
	if pattern == "**" {
		return true
	}

	if strings.HasPrefix(pattern, "**/") {
		suffix := pattern[3:]
		return matchGlob(suffix, name) || matchGlob(suffix, filepath.Base(name))
	}

	if strings.HasSuffix(pattern, "/**") {
		prefix := pattern[:len(pattern)-3]
		return strings.HasPrefix(name, prefix+"/") || name == prefix
	}

	parts := strings.SplitN(pattern, "**", 2)
	prefix, suffix := parts[0], parts[1]
	if prefix != "" && !strings.HasPrefix(name, prefix) {
		return false
	}
	if suffix != "" && !strings.HasSuffix(name, suffix) {
		return false
	}
	return true
}
