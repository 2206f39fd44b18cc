// Package config loads the TOML configuration file shared by the CLI and
// the server. Every field has a working default; a missing file is not an
// error, and a partial file overrides only what it names.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ionutms/schemascope/pkg/cache"
	"github.com/ionutms/schemascope/pkg/docs"
	"github.com/ionutms/schemascope/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Duration is a time.Duration that unmarshals from TOML strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the full configuration tree.
type Config struct {
	Server ServerConfig `toml:"server"`
	Docs   DocsConfig   `toml:"docs"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// DocsConfig configures documentation link resolution and checking.
type DocsConfig struct {
	// BaseURL is the documentation root.
	BaseURL string `toml:"base_url"`

	// Timeout bounds each existence-check fetch.
	Timeout Duration `toml:"timeout"`

	// CacheTTL is how long a check result stays valid.
	CacheTTL Duration `toml:"cache_ttl"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", "mongo", "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty selects a per-user
	// default under the OS cache directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `toml:"level"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Docs: DocsConfig{
			BaseURL:  docs.DefaultBaseURL,
			Timeout:  Duration{5 * time.Second},
			CacheTTL: Duration{24 * time.Hour},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "schemascope",
				Collection: "cache",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing
// file yields the defaults; a malformed or invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum fields.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (valid: file, redis, mongo, none)", c.Cache.Backend)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown log level %q (valid: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// OpenCache constructs the configured cache backend. Redis and MongoDB
// backends dial their server here; the context bounds that handshake.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendFile:
		dir := c.Cache.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache directory")
			}
			dir = filepath.Join(base, "schemascope")
		}
		return cache.NewFileCache(dir)
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.Cache.Redis.Addr, c.Cache.Redis.Password, c.Cache.Redis.DB)
	case BackendMongo:
		return cache.NewMongoCache(ctx, c.Cache.Mongo.URI, c.Cache.Mongo.Database, c.Cache.Mongo.Collection)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache backend %q", c.Cache.Backend)
}
