// Package history implements rif's per-file commit-message log: an
// append-only list of notes recorded each time a file is registered or
// committed with a message.
package history

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rif-tools/rif/internal/util"
)

// Note is a single history entry: a plain message string plus a stable
// ULID identity so entries are individually addressable.
type Note struct {
	Text string
	At   int64
	ID   string
}

// History maps a tracked path to its ordered, oldest-first list of
// notes.
type History struct {
	Entries map[string][]Note
}

// New returns an empty history.
func New() *History {
	return &History{Entries: make(map[string][]Note)}
}

// AddHistory appends a note for path. msg is coerced to valid UTF-8
// first, since commit/register messages can come from a hook's
// argument or an editor running under a legacy locale.
func (h *History) AddHistory(path, msg string) {
	note := Note{Text: util.ToValidUTF8(msg), At: time.Now().Unix(), ID: ulid.Make().String()}
	h.Entries[path] = append(h.Entries[path], note)
}

// RemoveFile drops every note recorded for path.
func (h *History) RemoveFile(path string) {
	delete(h.Entries, path)
}

// Notes returns path's notes, newest first.
func (h *History) Notes(path string) []Note {
	src := h.Entries[path]
	out := make([]Note, len(src))
	for i, n := range src {
		out[len(src)-1-i] = n
	}
	return out
}

// Rename moves path's notes to newPath, following the reference/name
// migration RenameFile performs in the relations store.
func (h *History) Rename(oldPath, newPath string) {
	if notes, ok := h.Entries[oldPath]; ok {
		delete(h.Entries, oldPath)
		h.Entries[newPath] = notes
	}
}
