package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rif-tools/rif/internal/ui/styles"
	"github.com/rif-tools/rif/internal/util"
)

// DisplayFile renders a single tracked file and its direct references,
// one line each, marking a reference "(u)" when it is newer than the
// parent's timestamp while the parent itself is Stale.
func (r *Relations) DisplayFile(path string) string {
	tf := r.Files[path]
	var sb strings.Builder
	fmt.Fprintf(&sb, "> %s %s", styles.Green(path), styles.Status(string(tf.Status)))

	refs := sortedKeys(tf.References)
	for _, ref := range refs {
		child := r.Files[ref]
		fmt.Fprintf(&sb, "\n  - > %s %s", ref, styles.Status(string(child.Status)))
		if tf.Status == Stale && tf.Timestamp < child.Timestamp {
			sb.WriteString(styles.Yellow("(u)"))
		}
	}
	return sb.String()
}

// DisplayDepth prints every tracked file's tree to at most depth levels
// (0 means unlimited), sorted by path.
func (r *Relations) DisplayDepth(depth int) string {
	var sb strings.Builder
	for _, path := range sortedKeys(r.filesAsSet()) {
		tf := r.Files[path]
		fmt.Fprintf(&sb, "> %s %s\n", styles.Green(path), styles.Status(string(tf.Status)))
		if len(tf.References) != 0 && depth != 1 {
			r.displayRecursive(&sb, path, maxInt(1, depth)-1, 1)
		}
	}
	return sb.String()
}

// DisplayFileDepth prints a single file's tree to the given depth.
func (r *Relations) DisplayFileDepth(path string, depth int) (string, error) {
	tf, ok := r.Files[path]
	if !ok {
		return "", fmt.Errorf("failed to get file with given path: %s", path)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "> %s %s\n", styles.Green(path), styles.Status(string(tf.Status)))
	if len(tf.References) != 0 && depth != 1 {
		r.displayRecursive(&sb, path, maxInt(1, depth)-1, 1)
	}
	return sb.String(), nil
}

// DisplayStaleFiles prints only the Stale-rooted trees, to depth.
func (r *Relations) DisplayStaleFiles(depth int) string {
	var sb strings.Builder
	for _, path := range sortedKeys(r.filesAsSet()) {
		tf := r.Files[path]
		if tf.Status != Stale {
			continue
		}
		fmt.Fprintf(&sb, "> %s %s\n", styles.Green(path), styles.Status(string(tf.Status)))
		if len(tf.References) != 0 && depth != 1 {
			r.displayRecursive(&sb, path, maxInt(1, depth)-1, 1)
		}
	}
	return sb.String()
}

func (r *Relations) displayRecursive(sb *strings.Builder, path string, remainingDepth, indent int) {
	parent := r.Files[path]
	for _, refKey := range sortedKeys(parent.References) {
		ref := r.Files[refKey]
		sb.WriteString(strings.Repeat("  ", indent))
		fmt.Fprintf(sb, "- > %s %s", refKey, styles.Status(string(ref.Status)))
		if parent.Status == Stale && parent.Timestamp < ref.Timestamp {
			sb.WriteString(" " + styles.Yellow("Updated"))
		}
		sb.WriteString("\n")
		if len(ref.References) != 0 && remainingDepth != 1 {
			r.displayRecursive(sb, refKey, maxInt(1, remainingDepth)-1, indent+1)
		}
	}
}

// String renders the whole store, sorted by path, one DisplayFile block
// per tracked file.
func (r *Relations) String() string {
	var sb strings.Builder
	for _, path := range sortedKeys(r.filesAsSet()) {
		sb.WriteString(r.DisplayFile(path))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Rows renders every tracked file (or, if onlyStale, only Stale ones) as
// a table row: path, status, timestamp, last-modified, reference count.
// Used by the `--interactive` table view of `ls` and `status`.
func (r *Relations) Rows(onlyStale bool) (columns []string, rows [][]string) {
	columns = []string{"Path", "Status", "Timestamp", "Last Modified", "References"}
	for _, path := range sortedKeys(r.filesAsSet()) {
		tf := r.Files[path]
		if onlyStale && tf.Status != Stale {
			continue
		}
		rows = append(rows, []string{
			path,
			string(tf.Status),
			util.RelativeTime(time.Unix(tf.Timestamp, 0)),
			util.RelativeTime(time.Unix(tf.LastModified, 0)),
			fmt.Sprintf("%d", len(tf.References)),
		})
	}
	return columns, rows
}

func (r *Relations) filesAsSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Files))
	for k := range r.Files {
		set[k] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
