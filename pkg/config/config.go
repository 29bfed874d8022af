// Package config loads runtime configuration for the CLI and the API server.
//
// Settings come from the environment (ORGCHART_* variables, optionally
// seeded from .env and .env.local) and from an optional TOML layout file
// holding chart geometry and the rank scale. Command-line flags override
// both; that merge happens in the CLI.
//
//	cfg, err := config.Load()
//	layout, err := config.LoadLayoutFile(cfg.LayoutFile)
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by [Parse].
const EnvPrefix = "ORGCHART_"

// DefaultEnvFiles are loaded by [Load] when present. Variables already
// set in the environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Source kinds.
const (
	SourceFile     = "file"
	SourceANET     = "anet"
	SourceMongo    = "mongo"
	SourcePostgres = "postgres"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// SourceOptions selects where organization trees come from.
type SourceOptions struct {
	Kind          string `env:"SOURCE" envDefault:"file"`
	TreeFile      string `env:"TREE_FILE"`
	ANETURL       string `env:"ANET_URL"`
	ANETToken     string `env:"ANET_TOKEN"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"anet"`
	PostgresDSN   string `env:"POSTGRES_DSN"`
}

// CacheOptions configures the fetched-tree cache.
type CacheOptions struct {
	Backend  string        `env:"CACHE" envDefault:"file"`
	Dir      string        `env:"CACHE_DIR"`
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// Namespace prefixes cache keys so deployments sharing a Redis server
	// stay apart.
	Namespace string `env:"CACHE_NAMESPACE"`
}

// ServerOptions configures the HTTP API.
type ServerOptions struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
}

// Config is the full runtime configuration.
type Config struct {
	Source SourceOptions
	Cache  CacheOptions
	Server ServerOptions

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LayoutFile string `env:"LAYOUT_CONFIG"`
	Locale     string `env:"LOCALE" envDefault:"en"`
	Filter     string `env:"FILTER" envDefault:"ALL"`
	Depth      int    `env:"DEPTH" envDefault:"3"`
	Symbols    bool   `env:"SYMBOLS" envDefault:"false"`
}

// LoadEnv loads the given dotenv files that exist and returns how many
// were loaded.
func LoadEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "load env files")
	}
	return len(existing), nil
}

// Load reads [DefaultEnvFiles] and then parses the environment.
func Load() (*Config, error) {
	if _, err := LoadEnv(DefaultEnvFiles...); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse reads the configuration from ORGCHART_* environment variables.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse environment")
	}
	return cfg, nil
}

// Validate checks that the selected source and cache have the settings
// they need.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile:
	case SourceANET:
		if err := errors.ValidateURL(c.Source.ANETURL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSource, err, "%sANET_URL", EnvPrefix)
		}
	case SourceMongo:
		if c.Source.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidSource, "mongo source requires %sMONGO_URI", EnvPrefix)
		}
	case SourcePostgres:
		if c.Source.PostgresDSN == "" {
			return errors.New(errors.ErrCodeInvalidSource, "postgres source requires %sPOSTGRES_DSN", EnvPrefix)
		}
	default:
		return errors.New(errors.ErrCodeInvalidSource, "unknown source %q (want file, anet, mongo or postgres)", c.Source.Kind)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis cache requires %sREDIS_URL", EnvPrefix)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}

	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}
