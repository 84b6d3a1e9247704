package hook

import (
	"io"
	"os"
	"testing"

	"github.com/rif-tools/rif/internal/store"
)

func TestExecuteSkipsWhenTriggerDisabled(t *testing.T) {
	h := &Hook{Trigger: false, Command: "", ArgType: ArgumentAll}
	if err := h.Execute(nil); err != nil {
		t.Fatalf("disabled hook should never error: %v", err)
	}
}

func TestExecuteRejectsEmptyCommandWhenTriggered(t *testing.T) {
	h := &Hook{Trigger: true, Command: "", ArgType: ArgumentAll}
	if err := h.Execute(nil); err == nil {
		t.Fatal("expected config error for a triggered hook with no command")
	}
}

func TestExecuteRunsCommandWithFilteredArgs(t *testing.T) {
	files := []File{
		{Path: "a.txt", Status: store.Fresh},
		{Path: "b.txt", Status: store.Stale},
	}

	h := &Hook{Trigger: true, Command: "echo", ArgType: ArgumentStale}
	if err := h.Execute(files); err != nil {
		t.Fatalf("echo hook should succeed: %v", err)
	}
}

func TestArgumentNonePassesNoArgs(t *testing.T) {
	files := []File{{Path: "a.txt", Status: store.Fresh}}
	h := &Hook{Trigger: true, Command: "true", ArgType: ArgumentNone}
	if err := h.Execute(files); err != nil {
		t.Fatalf("true hook should succeed regardless of args: %v", err)
	}
}

func TestExecuteForwardsStderrOnSuccess(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	origStderr := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = origStderr }()

	h := &Hook{Trigger: true, Command: "sh", ArgType: ArgumentAll}
	files := []File{{Path: "-c", Status: store.Fresh}, {Path: "echo oops 1>&2", Status: store.Fresh}}
	if err := h.Execute(files); err != nil {
		t.Fatalf("successful command writing to stderr should not itself error: %v", err)
	}

	w.Close()
	os.Stderr = origStderr
	captured, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(captured) != "oops\n" {
		t.Fatalf("expected stderr from a zero-exit command to be forwarded, got %q", captured)
	}
}
