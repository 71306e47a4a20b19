package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the only persisted config file schema.
type Config struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Display DisplayConfig `toml:"display"`
	Log     LogConfig     `toml:"log"`
	Source  string        `toml:"-"`
}

// RuntimeConfig mirrors the kernel-facing user options.
type RuntimeConfig struct {
	// AutoInstantiate controls whether cells run on notebook open.
	// A freshly registered cell starts stale when this is off.
	AutoInstantiate bool `toml:"auto_instantiate"`
}

// DisplayConfig holds presentation options for the notebook view.
type DisplayConfig struct {
	// CollapsedHeight is the visible line cap of a collapsed output pane.
	CollapsedHeight int `toml:"collapsed_height"`
	// Theme names the markdown/term style set, empty means auto.
	Theme string `toml:"theme"`
}

// LogConfig controls file logging.
type LogConfig struct {
	Path string `toml:"path"`
}

func Default() Config {
	return Config{
		Runtime: RuntimeConfig{AutoInstantiate: true},
		Display: DisplayConfig{CollapsedHeight: 12},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nbterm", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("NBTERM_LOG_PATH")); env != "" {
		cfg.Log.Path = env
	}
	if env := strings.TrimSpace(os.Getenv("NBTERM_THEME")); env != "" {
		cfg.Display.Theme = env
	}
	return cfg
}
