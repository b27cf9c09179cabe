package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ribbonpack/pkg/cache"
	"github.com/matzehuels/ribbonpack/pkg/embed"
	"github.com/matzehuels/ribbonpack/pkg/observability"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram"
	"github.com/matzehuels/ribbonpack/pkg/render/diagram/sink"
	"github.com/matzehuels/ribbonpack/pkg/render/nodelink"
	"github.com/matzehuels/ribbonpack/pkg/surface"
)

// nodelinkPNGScale is the pixel density of nodelink PNG output.
const nodelinkPNGScale = 2.0

// RenderWithCacheInfo draws the layers of opts in every requested format.
// packingKey scopes the artifact cache keys. The returned bool is true
// only when every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *surface.Surface, l *embed.Layout, packingKey string, opts Options) (map[string][]byte, bool, error) {
	return r.renderFormats(ctx, s.Name(), packingKey, opts, func(f sink.Format) ([]byte, error) {
		out, err := sink.New(ctx, f, s.Name(), opts.Layers)
		if err != nil {
			return nil, err
		}
		if err := diagram.Draw(s, l, out, opts.Layers); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	})
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache info.
func (r *Runner) Render(ctx context.Context, s *surface.Surface, l *embed.Layout, packingKey string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, l, packingKey, opts)
	return artifacts, err
}

type nodelinkDoc struct {
	Name string `json:"name"`
	DOT  string `json:"dot"`
}

// executeNodelink renders the map as a Graphviz graph. No packing is
// solved, so maps the packer rejects can still be inspected.
func (r *Runner) executeNodelink(ctx context.Context, result *Result, opts Options, logger *log.Logger) (*Result, error) {
	s := result.Surface
	dot := nodelink.ToDOT(s.Map(), nodelink.Options{Detailed: opts.Detailed, Outer: s.Outer()})

	renderStart := time.Now()
	artifacts, hit, err := r.renderFormats(ctx, s.Name(), result.MapHash, opts, func(f sink.Format) ([]byte, error) {
		if f == sink.FormatJSON {
			return json.MarshalIndent(nodelinkDoc{Name: s.Name(), DOT: dot}, "", "  ")
		}
		return nodelink.Render(ctx, dot, string(f), nodelinkPNGScale)
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered node-link diagram",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderFormats(ctx context.Context, name, scope string, opts Options, draw func(sink.Format) ([]byte, error)) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	var err error
	for _, format := range opts.Formats {
		var data []byte
		var hit bool
		data, hit, err = r.renderOne(ctx, name, scope, format, opts, draw)
		if err != nil {
			break
		}
		allHit = allHit && hit
		artifacts[format] = data
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	return artifacts, allHit, nil
}

func (r *Runner) renderOne(ctx context.Context, name, scope, format string, opts Options, draw func(sink.Format) ([]byte, error)) ([]byte, bool, error) {
	f, err := sink.ParseFormat(format)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(scope, opts.ArtifactKeyOpts(format, name))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	} else if err != nil {
		opts.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := draw(f)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", format, err)
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		opts.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}
