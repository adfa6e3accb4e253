package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// TileHeight is the height of one tile in terminal rows.
	TileHeight int `mapstructure:"tile_height"`
	// NumCols is the number of tiles per row.
	NumCols int `mapstructure:"num_cols"`
	// BufferSize is how many extra tiles are kept materialized on each side
	// of the viewport.
	BufferSize int `mapstructure:"buffer_size"`
	// EmptyTileClass tags the filler tiles drawn past either end of the data.
	EmptyTileClass string `mapstructure:"empty_tile_class"`
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// Watch reloads the collection when its source changes on disk.
	Watch bool `mapstructure:"watch"`
	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// LogFile receives JSON logs. Empty disables logging.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// MetricsAddr serves Prometheus metrics when set (e.g. ":9108").
	MetricsAddr string `mapstructure:"metrics_addr"`
	// GitLogLimit caps the commits loaded by --git.
	GitLogLimit int `mapstructure:"git_log_limit"`
}

// Load reads configuration from ~/.config/lzs/config.yaml (or TOML/JSON),
// then LZS_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(configDirectory())
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("LZS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the scroller cannot work with. The engine checks
// them again; this catches them before the terminal is taken over.
func (c *Config) Validate() error {
	if c.TileHeight <= 0 {
		return fmt.Errorf("tile_height must be positive, got %d", c.TileHeight)
	}
	if c.NumCols <= 0 {
		return fmt.Errorf("num_cols must be positive, got %d", c.NumCols)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tile_height", 3)
	v.SetDefault("num_cols", 1)
	v.SetDefault("buffer_size", 8)
	v.SetDefault("empty_tile_class", "empty")
	v.SetDefault("theme", "dark")
	v.SetDefault("watch", true)
	v.SetDefault("watch_debounce", 300*time.Millisecond)
	v.SetDefault("log_file", defaultLogFile())
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("git_log_limit", 5000)
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lzs")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lzs")
}

func defaultLogFile() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "lzs", "lzs.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "lzs", "lzs.log")
}
