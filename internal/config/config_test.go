package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	c := Default()
	if c.Hook.Trigger {
		t.Fatal("hooks should be disabled by default")
	}
	if !c.UseGitignore {
		t.Fatal("gitignore should be consulted by default")
	}
}

func TestGetSetValueRoundTrip(t *testing.T) {
	c := Default()
	if err := c.SetValue("hook.trigger", "true"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetValue("hook.command", "./notify.sh"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetValue("use_gitignore", "false"); err != nil {
		t.Fatal(err)
	}

	if v, ok := c.GetValue("hook.trigger"); !ok || v != "true" {
		t.Fatalf("expected hook.trigger=true, got %q ok=%v", v, ok)
	}
	if v, ok := c.GetValue("hook.command"); !ok || v != "./notify.sh" {
		t.Fatalf("expected hook.command=./notify.sh, got %q", v)
	}
	if v, ok := c.GetValue("use_gitignore"); !ok || v != "false" {
		t.Fatalf("expected use_gitignore=false, got %q", v)
	}
	if c.UseGitignore {
		t.Fatal("struct field should reflect the set value")
	}
}

func TestSetValueRejectsUnknownKey(t *testing.T) {
	c := Default()
	if err := c.SetValue("nonexistent.key", "x"); err == nil {
		t.Fatal("expected error for unknown config key")
	}
}

func TestSaveAndReadFromFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := Default()
	c.Hook.Trigger = true
	c.Hook.Command = "./hook.sh"

	path := filepath.Join(dir, "config")
	if err := c.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Hook.Trigger || loaded.Hook.Command != "./hook.sh" {
		t.Fatalf("config should survive round trip, got %+v", loaded.Hook)
	}
}

func TestListKeysIncludesEveryField(t *testing.T) {
	keys := ListKeys(Default())
	want := map[string]bool{"hook.trigger": true, "hook.command": true, "hook.arg_type": true, "use_gitignore": true}
	got := map[string]bool{}
	for _, k := range keys {
		got[k] = true
	}
	for k := range want {
		if !got[k] {
			t.Fatalf("expected key %s in ListKeys, got %v", k, keys)
		}
	}
}
