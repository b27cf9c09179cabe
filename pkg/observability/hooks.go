// Package observability lets callers watch the pipeline without the
// pipeline depending on any metrics backend.
//
// Three hook interfaces cover the events: [PipelineHooks] for the build,
// pack and render stages, [CacheHooks] for cache lookups, and [HTTPHooks]
// for the API server. Each has a no-op default. Binaries register their
// own implementations at startup, before any pipeline runs:
//
//	counters := observability.NewCounters()
//	counters.Register()
//
// [Counters] is the implementation shipped here; the API server reports
// it at /api/stats. Libraries emit events through the registry:
//
//	observability.Pipeline().OnPackStart(ctx, scheme, circles)
//	observability.Pipeline().OnPackComplete(ctx, scheme, iterations, time.Since(start), err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks observes the build, pack and render stages. source is
// "expr", "example", "file" or "map"; scheme is the packing scheme name.
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, darts int, duration time.Duration, err error)
	OnPackStart(ctx context.Context, scheme string, circles int)
	OnPackComplete(ctx context.Context, scheme string, iterations int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache traffic; keyType is the key kind ("packing",
// "artifact").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes the API server, once per request and once per
// response.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

type (
	NoopPipelineHooks struct{}
	NoopCacheHooks    struct{}
	NoopHTTPHooks     struct{}
)

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnPackStart(context.Context, string, int)                           {}
func (NoopPipelineHooks) OnPackComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry is replaced wholesale on every change; readers load it without
// locking.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset puts the no-op hooks back.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
