package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML configuration loaded from --config or from
// the XDG config location. The render section supplies defaults that
// explicit flags override.
//
// Example:
//
//	[render]
//	formats = ["tiff", "png"]
//	full_scale = true
//	preview = false
//
//	[server]
//	addr = ":8080"
//	overlay_dir = "/srv/tpat/overlays"
//	max_request_bytes = 1048576
//
//	[cache]
//	backend = "redis" # file (default), redis, none
//	namespace = "v1"
//
//	[cache.redis]
//	addr = "localhost:6379"
//	db = 0
type Config struct {
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig overrides the built-in defaults of the render command.
// Pointer fields distinguish "absent" from an explicit false.
type RenderConfig struct {
	Formats   []string `toml:"formats"`
	FullScale *bool    `toml:"full_scale"`
	Preview   *bool    `toml:"preview"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	OverlayDir      string `toml:"overlay_dir"`
	MaxRequestBytes int64  `toml:"max_request_bytes"`
}

// CacheConfig selects the artifact cache backend. Namespace prefixes
// every cache key, which keeps deployments sharing one Redis instance
// from reading each other's artifacts.
type CacheConfig struct {
	Backend   string      `toml:"backend"`
	Dir       string      `toml:"dir"`
	Namespace string      `toml:"namespace"`
	Redis     RedisConfig `toml:"redis"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// loadConfig reads the TOML config at path. When path is empty the default
// location is tried, and a missing file yields a zero config. An explicit
// path that cannot be read is an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// defaultConfigPath returns the config location using XDG standard
// (~/.config/tpat/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
