// Package config implements rif's per-repository settings plus an
// additive user-level global config, gob- and TOML-encoded
// respectively.
package config

import (
	"encoding/gob"
	"os"

	"github.com/rif-tools/rif/internal/hook"
	"github.com/rif-tools/rif/internal/rerr"
)

// HookConfig describes the post-check hook: whether to run it, which
// command to run, and which changed paths to pass as arguments.
type HookConfig struct {
	Trigger bool           `config:"hook.trigger" desc:"run the hook command after a propagation pass"`
	Command string         `config:"hook.command" desc:"command to run; required when trigger is true"`
	ArgType hook.Argument  `config:"hook.arg_type" desc:"which changed paths to pass: stale, fresh, all, none"`
}

// Config is the per-repository settings stored at .rif/config.
type Config struct {
	Hook         HookConfig `config:"hook"`
	UseGitignore bool       `config:"use_gitignore" desc:"also consult .gitignore alongside .rifignore"`
}

// Default returns a new Config with rif's baseline defaults: hooks
// disabled, gitignore consulted.
func Default() *Config {
	return &Config{
		Hook:         HookConfig{Trigger: false, Command: "", ArgType: hook.ArgumentNone},
		UseGitignore: true,
	}
}

// SaveToFile gob-encodes the config to path.
func (c *Config) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrapf(rerr.TagIoError, err, "failed to create %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(c); err != nil {
		return rerr.Wrapf(rerr.TagSerdeError, err, "failed to encode config")
	}
	return nil
}

// ReadFromFile decodes the config from path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagIoError, err, "failed to open %s", path)
	}
	defer f.Close()

	c := &Config{}
	if err := gob.NewDecoder(f).Decode(c); err != nil {
		return nil, rerr.Wrapf(rerr.TagSerdeError, err, "failed to decode config")
	}
	return c, nil
}

// GetValue reads a field by its dotted config key (e.g. "hook.trigger",
// "use_gitignore") via the shared reflection engine.
func (c *Config) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue assigns a field by its dotted config key.
func (c *Config) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
