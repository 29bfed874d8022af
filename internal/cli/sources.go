package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/NCI-Agency/anet-orgchart/pkg/cache"
	"github.com/NCI-Agency/anet-orgchart/pkg/config"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/pipeline"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
	"github.com/NCI-Agency/anet-orgchart/pkg/source/anet"
	"github.com/NCI-Agency/anet-orgchart/pkg/source/mongo"
	"github.com/NCI-Agency/anet-orgchart/pkg/source/postgres"
)

// =============================================================================
// Source Factory
// =============================================================================

// openSource opens the source selected by cfg. The returned func releases
// its connections.
func openSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	noop := func() {}

	switch cfg.Source.Kind {
	case config.SourceFile:
		if cfg.Source.TreeFile == "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidSource,
				"file source requires a tree file argument or %sTREE_FILE", config.EnvPrefix)
		}
		src, err := source.NewFile(cfg.Source.TreeFile)
		return src, noop, err

	case config.SourceANET:
		var opts []anet.Option
		if cfg.Source.ANETToken != "" {
			opts = append(opts, anet.WithToken(cfg.Source.ANETToken))
		}
		src, err := anet.NewClient(cfg.Source.ANETURL, opts...)
		return src, noop, err

	case config.SourceMongo:
		store, err := mongo.Open(ctx, cfg.Source.MongoURI, cfg.Source.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close(context.Background()) }, nil

	case config.SourcePostgres:
		store, err := postgres.Open(ctx, cfg.Source.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidSource, "unknown source %q", cfg.Source.Kind)
}

// =============================================================================
// Cache Factory
// =============================================================================

// openCache opens the cache backend selected by cfg. File sources are
// never cached since reading the file is as cheap as reading the cache.
func openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Source.Kind == config.SourceFile {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

func newKeyer(cfg *config.Config) cache.Keyer {
	if cfg.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Namespace+":")
}

// cacheDir returns the configured cache directory, falling back to the XDG
// location (~/.cache/orgchart/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured source and cache. treeFile, when set,
// switches the source to that file for this run. The returned func closes
// both.
func (c *CLI) newRunner(ctx context.Context, treeFile string, noCache bool) (*pipeline.Runner, func(), error) {
	base, err := c.config()
	if err != nil {
		return nil, nil, err
	}
	cfg := *base
	if treeFile != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.TreeFile = treeFile
	}

	src, closeSource, err := openSource(ctx, &cfg)
	if err != nil {
		return nil, nil, err
	}
	cc, err := openCache(ctx, &cfg, noCache)
	if err != nil {
		closeSource()
		return nil, nil, err
	}

	runner := pipeline.NewRunner(src, cc, newKeyer(&cfg), c.Logger)
	if cfg.Cache.TTL > 0 {
		runner.TTL = cfg.Cache.TTL
	}
	return runner, func() {
		_ = runner.Close()
		closeSource()
	}, nil
}
