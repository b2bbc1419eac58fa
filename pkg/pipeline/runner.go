package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neurotopo/trisect/pkg/cache"
	"github.com/neurotopo/trisect/pkg/cluster"
	"github.com/neurotopo/trisect/pkg/graph"
	"github.com/neurotopo/trisect/pkg/observability"
	"github.com/neurotopo/trisect/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete validate → search → record pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *graph.Dense, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		GraphHash: g.Fingerprint(),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	observability.Search().OnSearchStart(ctx, g.NodeCount(), opts.Criterion, opts.Parameter)

	searchStart := time.Now()
	res, searchHit, err := r.SearchWithCacheInfo(ctx, g, opts)
	elapsed := time.Since(searchStart)
	if err != nil {
		observability.Search().OnSearchComplete(ctx, opts.Criterion, opts.Parameter, 0, elapsed, err)
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Stats.SearchTime = elapsed
	result.Stats.CandidateCount = res.Candidates
	result.CacheInfo.SearchHit = searchHit
	result.Run = store.New(result.GraphHash, g.NodeCount(), g.EdgeCount(), opts.RunOptions(), res)

	observability.Search().OnSearchComplete(ctx, opts.Criterion, opts.Parameter, len(res.R)+len(res.B), elapsed, nil)

	r.Logger.Info("search finished",
		"nodes", g.NodeCount(),
		"candidates", res.Candidates,
		"cached", searchHit,
		"duration", result.Stats.SearchTime)

	return result, nil
}

// SearchWithCacheInfo runs the search stage with caching and returns cache hit info.
func (r *Runner) SearchWithCacheInfo(ctx context.Context, g *graph.Dense, opts Options) (*cluster.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SearchKey(g.Fingerprint(), opts.SearchKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cluster.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "search")
				return &cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "search")
	}

	opts.Logger.Debug("running search", "key", cacheKey, "refresh", opts.Refresh)

	res, err := cluster.Search(ctx, g, opts.ClusterOptions())
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSearch)
		observability.Cache().OnCacheSet(ctx, "search", len(data))
	}

	return res, false, nil // Cache miss
}

// Search is a convenience wrapper that calls SearchWithCacheInfo and discards the cache hit info.
func (r *Runner) Search(ctx context.Context, g *graph.Dense, opts Options) (*cluster.Result, error) {
	res, _, err := r.SearchWithCacheInfo(ctx, g, opts)
	return res, err
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
