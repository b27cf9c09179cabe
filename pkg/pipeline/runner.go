package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/embed"
	"github.com/matzehuels/ribbonpack/pkg/observability"
	"github.com/matzehuels/ribbonpack/pkg/packing"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
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

// Execute runs the complete build → pack → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Build
	buildStart := time.Now()
	source := opts.Source()
	observability.Pipeline().OnBuildStart(ctx, source)
	s, hash, err := r.build(ctx, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	darts := 0
	if s != nil {
		darts = s.Map().Len()
	}
	observability.Pipeline().OnBuildComplete(ctx, source, darts, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Surface = s
	result.Name = s.Name()
	result.MapHash = hash
	result.Stats.Darts = darts
	result.Stats.Circles = len(s.Circles())
	result.Stats.Triangles = len(s.Triangles())

	logger.Info("built surface",
		"name", s.Name(),
		"darts", darts,
		"circles", result.Stats.Circles,
		"triangles", result.Stats.Triangles,
		"duration", result.Stats.BuildTime)

	if opts.IsNodelink() {
		return r.executeNodelink(ctx, result, opts, logger)
	}

	if s.HasTadpole() {
		return nil, fmt.Errorf("%w: a face contains both sides of an edge", diagram.ErrDegenerate)
	}

	// Stage 2: Pack
	packStart := time.Now()
	p, packKey, hit, err := r.PackWithCacheInfo(ctx, s, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	l, err := embed.Embed(s, p)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	result.Packing = p
	result.Layout = l
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.Iterations = p.Iterations
	result.Stats.Error = p.Error
	result.CacheInfo.PackHit = hit

	logger.Info("packed circles",
		"scheme", p.Scheme,
		"iterations", p.Iterations,
		"error", p.Error,
		"cached", hit,
		"duration", result.Stats.PackTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, l, packKey, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"layers", opts.Layers.Layers(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) build(ctx context.Context, opts Options) (*surface.Surface, string, error) {
	doc, err := Build(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	hash, err := MapHash(doc)
	if err != nil {
		return nil, "", err
	}
	s, err := NewSurface(doc, opts)
	if err != nil {
		return nil, "", err
	}
	return s, hash, nil
}

// PackWithCacheInfo solves the packing of s with caching. mapHash is the
// hash returned by [MapHash]. It returns the packing, its cache key and
// whether it came from the cache.
func (r *Runner) PackWithCacheInfo(ctx context.Context, s *surface.Surface, mapHash string, opts Options) (*packing.Packing, string, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.PackingKey(mapHash, opts.PackingKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var p packing.Packing
			if err := json.Unmarshal(data, &p); err == nil && len(p.Radii) == len(s.Circles()) {
				observability.Cache().OnCacheHit(ctx, "packing")
				return &p, key, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "packing")
	}

	cfg := opts.Packing
	if cfg.Progress == nil {
		cfg.Progress = func(it int, e float64) {
			opts.Logger.Debug("packing", "iteration", it, "error", e)
		}
	}

	start := time.Now()
	observability.Pipeline().OnPackStart(ctx, string(cfg.Scheme), len(s.Circles()))
	p, err := packing.Solve(ctx, s, cfg)
	iterations := 0
	if p != nil {
		iterations = p.Iterations
	}
	observability.Pipeline().OnPackComplete(ctx, string(cfg.Scheme), iterations, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "packing", len(data))
		}
	}
	return p, key, false, nil
}

// Pack is a convenience wrapper that calls PackWithCacheInfo and discards the cache info.
func (r *Runner) Pack(ctx context.Context, s *surface.Surface, mapHash string, opts Options) (*packing.Packing, error) {
	p, _, _, err := r.PackWithCacheInfo(ctx, s, mapHash, opts)
	return p, err
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
