package config

import "testing"

func TestDefaultGlobalConfigValues(t *testing.T) {
	c := DefaultGlobalConfig()
	if !c.DefaultUseGitignore {
		t.Fatal("expected default_use_gitignore=true")
	}
	if c.ColorMode != "auto" {
		t.Fatalf("expected color_mode=auto, got %s", c.ColorMode)
	}
}

func TestGlobalGetSetValueRoundTrip(t *testing.T) {
	c := DefaultGlobalConfig()
	if err := c.SetValue("color_mode", "never"); err != nil {
		t.Fatal(err)
	}
	if v, ok := c.GetValue("color_mode"); !ok || v != "never" {
		t.Fatalf("expected color_mode=never, got %q", v)
	}
}

func TestGlobalConfigPathUsesXDGWhenSet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	path := GlobalConfigPath()
	if path != "/tmp/xdgtest/rif/config.toml" {
		t.Fatalf("expected XDG-rooted path, got %s", path)
	}
}
