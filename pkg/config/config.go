// Package config loads the spiderweb configuration file.
//
// The file lives at $XDG_CONFIG_HOME/spiderweb/config.toml (falling back to
// ~/.config). A missing file is not an error: [Load] returns [Default].
// Keys absent from the file keep their default values, and command-line
// flags override both.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/sim"
)

// Config is the whole configuration file.
type Config struct {
	Server     ServerConfig `toml:"server"`
	View       ViewConfig   `toml:"view"`
	Simulation sim.Config   `toml:"simulation"`
	Cache      CacheConfig  `toml:"cache"`
	Store      StoreConfig  `toml:"store"`
}

// ServerConfig covers both ends of the graph API.
type ServerConfig struct {
	BaseURL     string `toml:"base_url"`     // where the viewer fetches graphs
	Listen      string `toml:"listen"`       // where `spiderweb serve` listens
	Graph       string `toml:"graph"`        // graph served by default
	OpenCommand string `toml:"open_command"` // run on node open; {name} is replaced
}

// ViewConfig controls the interactive view.
type ViewConfig struct {
	FPS            int     `toml:"fps"`
	Theme          string  `toml:"theme"` // auto, dark, light
	Magnify        float64 `toml:"magnify"`
	FontSize       float64 `toml:"font_size"`
	LabelThreshold float64 `toml:"label_threshold"`
}

// CacheConfig selects the graph response cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"` // file, redis, none
	TTL       time.Duration `toml:"ttl"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisPass string        `toml:"redis_password"`
	RedisDB   int           `toml:"redis_db"`
}

// StoreConfig selects where the server keeps graphs.
type StoreConfig struct {
	Backend         string `toml:"backend"` // file, mongo
	Path            string `toml:"path"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:7462/v1",
			Listen:  "127.0.0.1:7462",
			Graph:   "default",
		},
		View: ViewConfig{
			FPS:            60,
			Theme:          "auto",
			Magnify:        2,
			FontSize:       18,
			LabelThreshold: 5,
		},
		Simulation: sim.DefaultConfig(),
		Cache: CacheConfig{
			Backend:   "file",
			TTL:       5 * time.Minute,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:         "file",
			MongoDatabase:   "spiderweb",
			MongoCollection: "graphs",
		},
	}
}

// Dir returns the spiderweb config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "spiderweb")
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file yields the defaults; a malformed one is an INVALID_CONFIG error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path (DefaultPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.View.Theme {
	case "auto", "dark", "light":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "view.theme must be auto, dark or light, got %q", c.View.Theme)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "file", "mongo":
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "store.backend must be file or mongo, got %q", c.Store.Backend)
	}
	if err := errs.ValidateURL(c.Server.BaseURL); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "server.base_url")
	}
	if c.View.FPS <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "view.fps must be positive")
	}
	return nil
}
