package observability

import (
	"context"
	"sync"
	"time"
)

// Counters implements every hook interface by counting events in memory.
// The API server registers one and reports it at /api/stats.
type Counters struct {
	mu       sync.Mutex
	started  time.Time
	builds   int
	packs    int
	failures map[string]int // stage -> count
	sweeps   int
	packTime time.Duration
	cache    map[string]*CacheCounts
	requests map[int]int // status class (2, 4, 5) -> count
}

// CacheCounts are the events of one cache key type.
type CacheCounts struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Sets   int `json:"sets"`
	Bytes  int `json:"bytes"`
}

// Snapshot is a point-in-time copy of [Counters].
type Snapshot struct {
	Uptime       string                 `json:"uptime"`
	Builds       int                    `json:"builds"`
	Packs        int                    `json:"packs"`
	Failures     map[string]int         `json:"failures"`
	Sweeps       int                    `json:"sweeps"`
	MeanPackTime string                 `json:"mean_pack_time"`
	Cache        map[string]CacheCounts `json:"cache"`
	Requests     map[string]int         `json:"requests"`
}

// NewCounters returns zeroed counters; uptime starts now.
func NewCounters() *Counters {
	return &Counters{
		started:  time.Now(),
		failures: make(map[string]int),
		cache:    make(map[string]*CacheCounts),
		requests: make(map[int]int),
	}
}

// Register installs c as the pipeline, cache and HTTP hooks.
func (c *Counters) Register() {
	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
}

func (c *Counters) count(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

func (c *Counters) OnBuildStart(context.Context, string) {}

func (c *Counters) OnBuildComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.count(func() {
		c.builds++
		if err != nil {
			c.failures["build"]++
		}
	})
}

func (c *Counters) OnPackStart(context.Context, string, int) {}

func (c *Counters) OnPackComplete(_ context.Context, _ string, iterations int, d time.Duration, err error) {
	c.count(func() {
		c.packs++
		c.sweeps += iterations
		c.packTime += d
		if err != nil {
			c.failures["pack"]++
		}
	})
}

func (c *Counters) OnRenderStart(context.Context, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err != nil {
		c.count(func() { c.failures["render"]++ })
	}
}

func (c *Counters) cacheCounts(keyType string) *CacheCounts {
	cc, ok := c.cache[keyType]
	if !ok {
		cc = &CacheCounts{}
		c.cache[keyType] = cc
	}
	return cc
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string) {
	c.count(func() { c.cacheCounts(keyType).Hits++ })
}

func (c *Counters) OnCacheMiss(_ context.Context, keyType string) {
	c.count(func() { c.cacheCounts(keyType).Misses++ })
}

func (c *Counters) OnCacheSet(_ context.Context, keyType string, size int) {
	c.count(func() {
		cc := c.cacheCounts(keyType)
		cc.Sets++
		cc.Bytes += size
	})
}

func (c *Counters) OnRequest(context.Context, string, string) {}

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	c.count(func() { c.requests[status/100]++ })
}

// Snapshot copies the current counts.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Uptime:   time.Since(c.started).Truncate(time.Second).String(),
		Builds:   c.builds,
		Packs:    c.packs,
		Failures: make(map[string]int, len(c.failures)),
		Sweeps:   c.sweeps,
		Cache:    make(map[string]CacheCounts, len(c.cache)),
		Requests: make(map[string]int, len(c.requests)),
	}
	if c.packs > 0 {
		s.MeanPackTime = (c.packTime / time.Duration(c.packs)).String()
	}
	for k, v := range c.failures {
		s.Failures[k] = v
	}
	for k, v := range c.cache {
		s.Cache[k] = *v
	}
	for class, n := range c.requests {
		s.Requests[string(rune('0'+class))+"xx"] = n
	}
	return s
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
