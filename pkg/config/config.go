// Package config loads the chromatic configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/chromatic/config.toml
// (~/.config/chromatic/config.toml when the variable is unset):
//
//	basis = "elementary"
//	workers = 4
//
//	[cache]
//	dir = "/var/cache/chromatic"
//	redis_addr = "localhost:6379"
//	ttl = "720h"
//
//	[catalog]
//	backend = "badger"
//	path = "/var/lib/chromatic/catalog"
//
//	[server]
//	addr = ":8080"
//	max_edges = 30
//	max_vertices = 64
//	timeout = "30s"
//
// A missing file is not an error; [Load] then returns [Default]. Command-line
// flags override file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chromatic/pkg/cache"
	"github.com/matzehuels/chromatic/pkg/catalog"
	"github.com/matzehuels/chromatic/pkg/csf"
	cerrors "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/graph"
	"github.com/matzehuels/chromatic/pkg/symfunc"
)

// AppName names the XDG subdirectories.
const AppName = "chromatic"

// Config is the decoded configuration file.
type Config struct {
	// Basis is the default output basis name.
	Basis string `toml:"basis"`
	// Workers is the default parallelism for the subset enumeration; 0 or
	// 1 computes sequentially.
	Workers int            `toml:"workers"`
	Cache   CacheConfig    `toml:"cache"`
	Catalog catalog.Config `toml:"catalog"`
	Server  ServerConfig   `toml:"server"`
}

// CacheConfig configures the table and plot cache.
type CacheConfig struct {
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
	Disabled  bool          `toml:"disabled"`
}

// ServerConfig configures `chromatic serve`.
type ServerConfig struct {
	Addr        string        `toml:"addr"`
	MaxEdges    int           `toml:"max_edges"`
	MaxVertices int           `toml:"max_vertices"`
	Timeout     time.Duration `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Basis: symfunc.Power.String(),
		Cache: CacheConfig{
			Dir: defaultDir("XDG_CACHE_HOME", ".cache"),
			TTL: cache.TTLTable,
		},
		Catalog: catalog.Config{
			Backend: catalog.BackendBadger,
			Path:    filepath.Join(defaultDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "catalog"),
		},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxEdges:    30,
			MaxVertices: 64,
			Timeout:     30 * time.Second,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(defaultDir("XDG_CONFIG_HOME", ".config"), "config.toml")
}

// defaultDir resolves $env/chromatic, falling back to ~/fallback/chromatic
// and finally to a relative directory when no home is known.
func defaultDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, fallback, AppName)
}

// Load reads path over the defaults. An empty path means [Path]. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base, which is modified and returned.
func Parse(data []byte, base *Config) (*Config, error) {
	if base == nil {
		base = Default()
	}
	md, err := toml.Decode(string(data), base)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Basis != "" && symfunc.ParseBasis(c.Basis) == symfunc.Unknown {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown basis %q", c.Basis)
	}
	if c.Workers < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "workers must be non-negative, got %d", c.Workers)
	}
	if c.Cache.TTL < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "cache ttl must be non-negative")
	}
	switch c.Catalog.Backend {
	case "", catalog.BackendMemory, catalog.BackendBadger:
	case catalog.BackendMongo:
		if c.Catalog.MongoURI == "" {
			return cerrors.New(cerrors.ErrCodeInvalidConfig, "catalog backend mongo requires mongo_uri")
		}
	default:
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "unknown catalog backend %q", c.Catalog.Backend)
	}
	if c.Server.MaxEdges < 0 || c.Server.MaxEdges > csf.MaxEdges {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "server max_edges must be in [0, %d]", csf.MaxEdges)
	}
	if c.Server.MaxVertices < 0 || c.Server.MaxVertices > graph.MaxOrder {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "server max_vertices must be in [0, %d]", graph.MaxOrder)
	}
	return nil
}

// Save writes c to path as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
