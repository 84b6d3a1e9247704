package project

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rif-tools/rif/internal/history"
	"github.com/rif-tools/rif/internal/meta"
	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/util"
)

// StatusReport is Status's structured result; internal/cli formats it
// for the terminal.
type StatusReport struct {
	ToRegister []string
	ToAdd      []string
	ToForce    []string
	ToDelete   []string
	Changed    []string // modified + deleted, excluding already-staged paths
	Untracked  []string // nil when ignoreUntracked was requested
	Dump       string   // non-empty when verbose was requested
}

// Status reports staged intents, unstaged changes and (optionally)
// untracked files. Meta is pruned of entries whose path vanished since
// staging before anything is reported.
func (p *Project) Status(ignoreUntracked, verbose bool) (*StatusReport, error) {
	p.Meta.RemoveNonExistent()

	staged := map[string]bool{}
	for path := range p.Meta.ToAdd {
		staged[path] = true
	}
	for path := range p.Meta.ToForce {
		staged[path] = true
	}
	for path := range p.Meta.ToDelete {
		staged[path] = true
	}

	modified, err := p.Relations.TrackModifiedFiles(staged)
	if err != nil {
		return nil, err
	}
	var changed []string
	changed = append(changed, modified...)
	for _, d := range p.Relations.GetDeletedFiles() {
		if !staged[d] {
			changed = append(changed, d)
		}
	}
	sort.Strings(changed)

	report := &StatusReport{
		ToRegister: sortedSet(p.Meta.ToRegister),
		ToAdd:      sortedSet(p.Meta.ToAdd),
		ToForce:    sortedSet(p.Meta.ToForce),
		ToDelete:   sortedSet(p.Meta.ToDelete),
		Changed:    changed,
	}

	if !ignoreUntracked {
		queued := map[string]bool{}
		for path := range p.Meta.ToRegister {
			queued[path] = true
		}
		var untracked []string
		err := p.Relations.TrackUnregisteredFiles(p.Root, p.isBlacklisted, queued, func(relPath string) {
			untracked = append(untracked, relPath)
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(untracked)
		report.Untracked = untracked
	}

	if verbose {
		report.Dump = p.Relations.String()
	}

	if err := p.saveMeta(); err != nil {
		return nil, err
	}
	return report, nil
}

// List renders a tree view: a single path renders just its own
// subtree, otherwise every tracked file renders (or only the
// Stale-rooted ones, for listType "stale").
func (p *Project) List(path, listType string, depth int) (string, error) {
	if path != "" {
		rel, err := util.RelativePath(p.Root, absPath(path))
		if err != nil {
			return "", rerr.Wrapf(rerr.TagRifIoError, err, "failed to relativize %s", path)
		}
		return p.Relations.DisplayFileDepth(rel, depth)
	}

	if listType == "stale" {
		return p.Relations.DisplayStaleFiles(depth), nil
	}
	return p.Relations.DisplayDepth(depth), nil
}

// Data dumps one of the persisted stores for debugging.
func (p *Project) Data(dataType string, compact bool) (string, error) {
	switch dataType {
	case "history":
		return formatHistory(p.History, compact), nil
	case "meta":
		return formatMeta(p.Meta, compact), nil
	case "":
		if compact {
			return fmt.Sprintf("%d tracked files", len(p.Relations.Files)), nil
		}
		return p.Relations.String(), nil
	default:
		return "", rerr.New(rerr.TagCliError, fmt.Sprintf("unknown data type %q, expected history or meta", dataType))
	}
}

func formatHistory(h *history.History, compact bool) string {
	if compact {
		return fmt.Sprintf("%d files with history", len(h.Entries))
	}
	paths := make([]string, 0, len(h.Entries))
	for p := range h.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sb strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&sb, "%s:\n", path)
		for _, note := range h.Notes(path) {
			when := util.RelativeTimeShort(time.Unix(note.At, 0))
			fmt.Fprintf(&sb, "  [%s] %s (%s)\n", note.ID, note.Text, when)
		}
	}
	return sb.String()
}

func formatMeta(m *meta.Meta, compact bool) string {
	if compact {
		return fmt.Sprintf("register=%d add=%d force=%d delete=%d",
			len(m.ToRegister), len(m.ToAdd), len(m.ToForce), len(m.ToDelete))
	}
	var sb strings.Builder
	writeBucket(&sb, "to_register", m.ToRegister)
	writeBucket(&sb, "to_add", m.ToAdd)
	writeBucket(&sb, "to_force", m.ToForce)
	writeBucket(&sb, "to_delete", m.ToDelete)
	return sb.String()
}

func writeBucket(sb *strings.Builder, label string, set map[string]struct{}) {
	fmt.Fprintf(sb, "%s:\n", label)
	for _, p := range sortedSet(set) {
		fmt.Fprintf(sb, "  %s\n", p)
	}
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
