// Package config loads tada settings from defaults, YAML files and
// TADA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Makepad-fr/tada/internal/store"
)

const (
	// AppName is the configuration directory name.
	AppName = "tada"

	// ProjectFile is read from the working directory and overrides the
	// global file.
	ProjectFile = ".tada.yaml"

	envPrefix = "TADA"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the merged configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Verbose bool          `yaml:"verbose" mapstructure:"verbose"`
}

// StorageConfig selects where the task list lives.
type StorageConfig struct {
	// Backend is one of file, sqlite, memory.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Dir holds <key>.json for the file backend. Empty means the working
	// directory.
	Dir string `yaml:"dir" mapstructure:"dir"`
	// Path is the SQLite database file.
	Path string `yaml:"path" mapstructure:"path"`
	// Key is the slot name.
	Key string `yaml:"key" mapstructure:"key"`
	// OnCorrupt is fail or reset.
	OnCorrupt string `yaml:"on_corrupt" mapstructure:"on_corrupt"`
}

// UIConfig tunes presentation.
type UIConfig struct {
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:   BackendFile,
			Path:      "tada.db",
			Key:       "todos",
			OnCorrupt: "fail",
		},
		UI: UIConfig{Theme: "classic"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.on_corrupt", d.Storage.OnCorrupt)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("verbose", d.Verbose)
}

// Load merges defaults, the global config file, the project file and the
// environment, in that order. When file is set it replaces both config
// files and must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		for _, p := range []string{GlobalConfigPath(), ProjectConfigPath()} {
			if err := mergeFile(v, p); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Validate checks enumerated values and the storage key.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}
	switch c.Storage.OnCorrupt {
	case "fail", "reset":
	default:
		return fmt.Errorf("unknown on_corrupt %q (want fail or reset)", c.Storage.OnCorrupt)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
		return errors.New("storage.path is required for the sqlite backend")
	}
	if err := store.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("storage.key: %w", err)
	}
	return nil
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ProjectFile)
}
