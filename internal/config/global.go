package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// GlobalConfig holds user-level defaults, TOML-encoded. This is
// separate from, and has no bearing on, the per-repository .rif/config
// format. `rif init` does not read it: a new repository always starts
// from Default().
type GlobalConfig struct {
	DefaultUseGitignore bool   `toml:"default_use_gitignore" config:"default.use_gitignore" desc:"default for new repositories' use_gitignore"`
	DefaultHookCommand  string `toml:"default_hook_command" config:"default.hook_command" desc:"hook command template applied to new repositories, empty disables"`
	DefaultHookArgType  string `toml:"default_hook_arg_type" config:"default.hook_arg_type" desc:"stale, fresh, all or none"`
	ColorMode           string `toml:"color_mode" config:"color_mode" desc:"auto, always or never"`
}

// DefaultGlobalConfig returns rif's baseline user-level defaults.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		DefaultUseGitignore: true,
		DefaultHookCommand:  "",
		DefaultHookArgType:  "none",
		ColorMode:           "auto",
	}
}

// GlobalConfigPath returns the path to rif's global config file,
// following the XDG Base Directory convention on Linux and platform
// conventions elsewhere.
func GlobalConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "rif")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "rif")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "rif")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "rif")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// LoadGlobal reads the global config file, falling back to defaults
// for any value it doesn't set and when the file doesn't exist at all.
func LoadGlobal() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	cfg := DefaultGlobalConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save writes the global config file, creating its parent directory if
// needed.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// GetValue reads a global config field by its dotted key.
func (c *GlobalConfig) GetValue(key string) (string, bool) {
	return getFieldValue(c, key)
}

// SetValue assigns a global config field by its dotted key.
func (c *GlobalConfig) SetValue(key, value string) error {
	return setFieldValue(c, key, value)
}
