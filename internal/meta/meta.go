// Package meta implements rif's staging buffer (C3): the set of paths
// queued for registration, update, forced update or deletion ahead of
// the next commit.
package meta

import (
	"os"
)

// Meta holds the four staging sets that a commit drains atomically.
type Meta struct {
	ToRegister map[string]struct{} // brand new files discovered by add
	ToAdd      map[string]struct{} // tracked files staged for a plain update
	ToForce    map[string]struct{} // tracked files staged for a forced update
	ToDelete   map[string]struct{} // tracked files staged for removal
}

// New returns an empty staging buffer.
func New() *Meta {
	return &Meta{
		ToRegister: make(map[string]struct{}),
		ToAdd:      make(map[string]struct{}),
		ToForce:    make(map[string]struct{}),
		ToDelete:   make(map[string]struct{}),
	}
}

// QueueAdded stages an already-tracked file for update. A path already
// staged in either the plain or forced bucket is left alone rather
// than moved.
func (m *Meta) QueueAdded(path string, force bool) {
	if _, inAdd := m.ToAdd[path]; inAdd {
		return
	}
	if _, inForce := m.ToForce[path]; inForce {
		return
	}
	if force {
		m.ToForce[path] = struct{}{}
	} else {
		m.ToAdd[path] = struct{}{}
	}
}

// QueueDeleted stages a tracked file whose path no longer exists on
// disk for removal on the next commit. Any pending plain or forced
// update for path is dropped first, so delete wins over a stale
// add/force queued before the file vanished.
func (m *Meta) QueueDeleted(path string) {
	delete(m.ToAdd, path)
	delete(m.ToForce, path)
	m.ToDelete[path] = struct{}{}
}

// QueueRegister stages a brand new, untracked file for registration.
func (m *Meta) QueueRegister(path string) {
	m.ToRegister[path] = struct{}{}
}

// RemoveAddQueue un-stages path from every addition bucket (register,
// add, force), used by revert to undo a staged add regardless of which
// bucket it landed in.
func (m *Meta) RemoveAddQueue(path string) {
	delete(m.ToRegister, path)
	delete(m.ToAdd, path)
	delete(m.ToForce, path)
}

// RemoveNonExistent drops staged addition entries whose path no longer
// exists on disk. Called by status before reporting so a file deleted
// after being staged doesn't linger in the add queue.
func (m *Meta) RemoveNonExistent() {
	for _, set := range []map[string]struct{}{m.ToRegister, m.ToAdd, m.ToForce} {
		for path := range set {
			if _, err := os.Stat(path); err != nil {
				delete(set, path)
			}
		}
	}
}

// Clear empties every staging bucket, used by revert (no arguments) and
// by commit once a commit has fully applied.
func (m *Meta) Clear() {
	m.ToRegister = make(map[string]struct{})
	m.ToAdd = make(map[string]struct{})
	m.ToForce = make(map[string]struct{})
	m.ToDelete = make(map[string]struct{})
}

// ToBeAddedLater returns the union of every addition bucket (register,
// add, force) as a sorted-free slice.
func (m *Meta) ToBeAddedLater() []string {
	out := make([]string, 0, len(m.ToRegister)+len(m.ToAdd)+len(m.ToForce))
	for p := range m.ToRegister {
		out = append(out, p)
	}
	for p := range m.ToAdd {
		out = append(out, p)
	}
	for p := range m.ToForce {
		out = append(out, p)
	}
	return out
}

// IsEmpty reports whether nothing at all is staged.
func (m *Meta) IsEmpty() bool {
	return len(m.ToRegister) == 0 && len(m.ToAdd) == 0 && len(m.ToForce) == 0 && len(m.ToDelete) == 0
}
