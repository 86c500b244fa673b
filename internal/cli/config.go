package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/oyalabs/flowcanvas/pkg/pipeline"
)

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the user configuration, read from
// ~/.config/flowcanvas/config.toml (or $XDG_CONFIG_HOME/flowcanvas/config.toml).
//
// Example:
//
//	layer_spacing = 140.0
//	node_spacing = 60.0
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
type Config struct {
	// LayerSpacing and NodeSpacing override the layout defaults.
	LayerSpacing float64 `toml:"layer_spacing"`
	NodeSpacing  float64 `toml:"node_spacing"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		LayerSpacing: pipeline.DefaultLayerSpacing,
		NodeSpacing:  pipeline.DefaultNodeSpacing,
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
	}
}

// LoadConfig reads the config file at path, filling unset fields with
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadConfigOrDefault loads the user's config file, returning defaults when
// the file is missing or unreadable. Config problems never block the CLI.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// applyDefaults fills zero-valued fields after decoding a partial file.
func (c *Config) applyDefaults() {
	if c.LayerSpacing == 0 {
		c.LayerSpacing = pipeline.DefaultLayerSpacing
	}
	if c.NodeSpacing == 0 {
		c.NodeSpacing = pipeline.DefaultNodeSpacing
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendFile
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
}

// configPath returns the config file location using XDG conventions.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
