// Package hook runs the user-configured post-check command.
package hook

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/rif-tools/rif/internal/rerr"
	"github.com/rif-tools/rif/internal/store"
)

// Argument selects which checked files are passed to the hook command.
type Argument string

const (
	ArgumentStale Argument = "stale"
	ArgumentFresh Argument = "fresh"
	ArgumentAll   Argument = "all"
	ArgumentNone  Argument = "none"
)

// Hook is the post-check command rif invokes after `check`.
type Hook struct {
	Trigger bool
	Command string
	ArgType Argument
}

// File pairs a checked path with its resulting status, the argument the
// checker hands the hook.
type File struct {
	Path   string
	Status store.Status
}

// Execute runs the hook command with files filtered by ArgType: a
// no-op when Trigger is false, and a config error when Trigger is true
// but Command is empty.
func (h *Hook) Execute(files []File) error {
	if !h.Trigger {
		return nil
	}
	if h.Command == "" {
		return rerr.New(rerr.TagConfigError, "hook trigger is true but its command is empty")
	}

	var args []string
	switch h.ArgType {
	case ArgumentFresh:
		for _, f := range files {
			if f.Status == store.Fresh {
				args = append(args, f.Path)
			}
		}
	case ArgumentStale:
		for _, f := range files {
			if f.Status == store.Stale {
				args = append(args, f.Path)
			}
		}
	case ArgumentAll:
		for _, f := range files {
			args = append(args, f.Path)
		}
	case ArgumentNone:
		// No arguments passed to the command.
	}

	cmd := exec.Command(h.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	os.Stdout.Write(stdout.Bytes())
	os.Stderr.Write(stderr.Bytes())
	if err != nil {
		return rerr.Wrapf(rerr.TagConfigError, err, "hook command %q failed", h.Command)
	}
	return nil
}
