package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NCI-Agency/anet-orgchart/pkg/cache"
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/observability"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its source, cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Source source.Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner fetching from src.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(src source.Source, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source: src,
		Cache:  c,
		Keyer:  keyer,
		TTL:    cache.TTLTree,
		Logger: logger,
	}
}

// Execute runs the complete fetch → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	tree, hit, err := r.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Tree = tree
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.OrgCount = tree.Size()
	result.CacheInfo.FetchHit = hit

	r.Logger.Info("fetched organizations",
		"root", tree.Root.DisplayName(),
		"orgs", tree.Size(),
		"cached", hit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, err := r.ComputeLayout(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(layout.Nodes)
	result.Stats.EdgeCount = len(layout.Edges)

	r.Logger.Info("computed layout",
		"nodes", len(layout.Nodes),
		"depth", layout.DepthLimit,
		"zoom", layout.Viewport.Zoom,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo loads the tree through the cache and reports whether
// it was a cache hit. Refresh skips the cache read but still stores the
// fresh tree.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (*org.Tree, bool, error) {
	if r.Source == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidSource, "no organization source configured")
	}
	r.applyLogger(&opts)

	// trees requested without a UUID (whole-file loads) are not cached
	var cacheKey string
	if opts.OrgUUID != "" {
		if err := source.ValidateOrgUUID(opts.OrgUUID); err != nil {
			return nil, false, err
		}
		cacheKey = r.Keyer.TreeKey(r.Source.Name(), opts.OrgUUID)
	}

	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if tree, err := graph.UnmarshalTree(data); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeTree)
				return tree, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeTree)
	}

	tree, err := r.fetch(ctx, opts.OrgUUID)
	if err != nil {
		return nil, false, err
	}

	if cacheKey != "" {
		if data, err := graph.MarshalTree(tree); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.TTL); err != nil {
				opts.Logger.Warn("cache write failed", "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, cache.KeyTypeTree, len(data))
			}
		}
	}
	return tree, false, nil
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*org.Tree, error) {
	tree, _, err := r.FetchWithCacheInfo(ctx, opts)
	return tree, err
}

func (r *Runner) fetch(ctx context.Context, orgUUID string) (*org.Tree, error) {
	hooks := observability.Pipeline()
	name := r.Source.Name()

	hooks.OnFetchStart(ctx, name, orgUUID)
	start := time.Now()
	tree, err := r.Source.Fetch(ctx, orgUUID)
	hooks.OnFetchComplete(ctx, name, orgUUID, tree.Size(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// ComputeLayout runs [ComputeLayout] and reports it to the pipeline hooks.
func (r *Runner) ComputeLayout(ctx context.Context, tree *org.Tree, opts Options) (graph.Layout, error) {
	hooks := observability.Pipeline()
	var rootID string
	if tree != nil {
		rootID = tree.Root.UUID
	}

	hooks.OnLayoutStart(ctx, rootID, opts.DepthLimit)
	start := time.Now()
	layout, err := ComputeLayout(tree, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	hooks.OnLayoutComplete(ctx, rootID, len(layout.Nodes), time.Since(start))
	return layout, nil
}

// Render runs [Render] and reports it to the pipeline hooks.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	hooks := observability.Pipeline()

	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Invalidate drops the cached tree for orgUUID.
func (r *Runner) Invalidate(ctx context.Context, orgUUID string) error {
	if r.Source == nil {
		return nil
	}
	return r.Cache.Delete(ctx, r.Keyer.TreeKey(r.Source.Name(), orgUUID))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
