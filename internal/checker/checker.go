// Package checker implements rif's propagator (C2): it assigns each
// tracked path a level so that every reference points to a
// lower-or-equal level than its referrer, then sweeps paths in
// descending-level order to recompute Fresh/Stale status.
package checker

import (
	"sort"

	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/store"
)

const defaultLevel = 0

type node struct {
	path     string
	level    int
	parent   string
	hasParent bool
	children map[string]struct{}
}

// Checker holds the level-assignment graph built from a Relations store.
type Checker struct {
	nodes map[string]*node
}

// New builds a Checker from every tracked file in r.
func New(r *store.Relations) *Checker {
	c := &Checker{nodes: make(map[string]*node)}

	paths := make([]string, 0, len(r.Files))
	for p := range r.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		c.addNode(path, r.Files[path].References)
	}
	return c
}

func (c *Checker) addNode(path string, children map[string]struct{}) {
	existing := map[string]struct{}{}
	nonExisting := map[string]struct{}{}

	for child := range children {
		if _, ok := c.nodes[child]; ok {
			existing[child] = struct{}{}
		} else {
			nonExisting[child] = struct{}{}
		}
	}

	highest := c.highestLevel(existing)

	target := &node{path: path, level: highest + 1, children: cloneSet(nonExisting)}
	c.nodes[path] = target

	switch {
	case len(existing) == len(children):
		// All references already have nodes; nothing further to link.
	case len(nonExisting) == len(children):
		for child := range children {
			c.nodes[child] = &node{path: child, parent: path, hasParent: true, level: highest, children: map[string]struct{}{}}
		}
	default:
		for child := range nonExisting {
			c.nodes[child] = &node{path: child, parent: path, hasParent: true, level: highest, children: map[string]struct{}{}}
		}
		c.recursiveIncrease(path)
	}
}

func (c *Checker) highestLevel(children map[string]struct{}) int {
	if len(children) == 0 {
		return defaultLevel
	}
	highest := defaultLevel
	first := true
	for child := range children {
		n := c.nodes[child]
		if first {
			highest = n.level
			first = false
			continue
		}
		if n.level > highest {
			highest = n.level
		}
	}
	return highest
}

func (c *Checker) recursiveIncrease(path string) {
	c.nodes[path].level++
	target := path
	for {
		n := c.nodes[target]
		if !n.hasParent {
			return
		}
		c.nodes[n.parent].level++
		target = n.parent
	}
}

// Check sweeps nodes in descending-level order, recomputing Fresh/Stale
// status for every tracked path in r and writing the result back. It
// returns the (path, status) pairs whose status actually changed, in
// sweep order, for the caller to forward to a hook.
func (c *Checker) Check(r *store.Relations) ([]Change, error) {
	sorted := c.sortedByLevelDesc()
	var changes []Change

	for _, path := range sorted {
		if _, ok := c.nodes[path]; !ok {
			return nil, rerr.New(rerr.TagCheckerError, "failed to find item from key")
		}

		status := store.Fresh
		target, ok := r.Files[path]
		if !ok {
			// Node exists only as a placeholder for a non-existing
			// reference; nothing to sweep.
			continue
		}

		for child := range target.References {
			childFile, ok := r.Files[child]
			if !ok {
				continue
			}
			if childFile.Status == store.Stale {
				status = store.Stale
				break
			}
			if childFile.Timestamp > target.Timestamp {
				status = store.Stale
				break
			}
		}

		if target.Status != status {
			changes = append(changes, Change{Path: path, Status: status})
		}
		if err := r.SetFileStatus(path, status); err != nil {
			return nil, rerr.New(rerr.TagCheckerError, "failed to find item from relations store").Wrap(err)
		}
	}

	return changes, nil
}

// Change is a single path whose status the sweep updated.
type Change struct {
	Path   string
	Status store.Status
}

func (c *Checker) sortedByLevelDesc() []string {
	paths := make([]string, 0, len(c.nodes))
	for p := range c.nodes {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		li, lj := c.nodes[paths[i]].level, c.nodes[paths[j]].level
		if li != lj {
			return li > lj
		}
		return paths[i] < paths[j]
	})
	return paths
}

func cloneSet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
