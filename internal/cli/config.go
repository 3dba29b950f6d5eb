package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the user configuration, loaded from
// ~/.config/planark/config.toml. All fields are optional; zero values fall
// back to built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	// Dir overrides the file cache directory (default ~/.cache/planark).
	Dir string `toml:"dir"`

	// Redis is the address of a Redis server (e.g. "localhost:6379"). When
	// set, serve uses Redis instead of the file cache.
	Redis string `toml:"redis"`
}

// StoreConfig selects the embedding store used by serve.
type StoreConfig struct {
	// MongoURI is the MongoDB connection string. When empty, serve keeps
	// records in memory.
	MongoURI string `toml:"mongo_uri"`

	// Database is the MongoDB database name (default "planark").
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr"`
}

// configPath returns the configuration file path, honoring XDG_CONFIG_HOME.
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

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadConfigOrDefault loads the user's configuration file, falling back to
// defaults when the file is absent or unreadable.
func LoadConfigOrDefault() Config {
	var cfg Config
	path, err := configPath()
	if err == nil {
		if loaded, err := LoadConfig(path); err == nil {
			return loaded
		}
	}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Store.Database == "" {
		cfg.Store.Database = appName
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
