package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/neurotopo/trisect/pkg/errors"
)

// configEnv names an explicit config file, checked when --config is unset.
const configEnv = "TRISECT_CONFIG"

// Config holds settings loaded from an optional TOML profile.
//
// Example:
//
//	[search]
//	criterion = "size"
//	workers = 4
//
//	[cache]
//	backend = "redis"
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8632"
//	mongo = "mongodb://localhost:27017"
type Config struct {
	Search SearchConfig `toml:"search"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig carries default search options. Flags override these.
type SearchConfig struct {
	Criterion    string `toml:"criterion"`
	Parameter    string `toml:"parameter"`
	ExcludeInter bool   `toml:"exclude_inter"`
	Workers      int    `toml:"workers"`
}

// CacheConfig selects the cache backend: "file" (default), "redis", or "none".
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig carries defaults for the serve command.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Mongo string `toml:"mongo"`
}

// loadConfig resolves and parses the TOML profile.
//
// Resolution order: the explicit path (from --config), then $TRISECT_CONFIG,
// then ~/.config/trisect/trisect.toml. A missing default file yields a zero
// Config; a missing explicit path is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(configEnv); env != "" {
			path = env
			explicit = true
		}
	}
	if !explicit {
		p, ok := defaultConfigPath()
		if !ok {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "load config %s", path)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location (~/.config/trisect/trisect.toml).
func defaultConfigPath() (string, bool) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, appName+".toml"), true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appName, appName+".toml"), true
}
