// Package observability carries optional instrumentation hooks.
//
// The view, the graph client and the cache report what they do through
// three small interfaces. Nothing is recorded unless main registers an
// implementation; [Logging] is the one spiderweb ships, used by --verbose.
//
//	observability.SetRenderHooks(observability.NewLogging(logger))
//
// Call sites fetch the current hooks on every event:
//
//	start := time.Now()
//	stats := renderer.DrawFrame(surface, data, transform, snapshot, palette)
//	observability.Render().OnFrame(ctx, stats.Nodes, stats.Links, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the interactive view.
type RenderHooks interface {
	OnFrame(ctx context.Context, nodes, links int, duration time.Duration)
	// OnSettled fires once per layout, when alpha drops below alphaMin.
	OnSettled(ctx context.Context, ticks int)
	// OnOpen fires after a clicked node was handed to the graph server.
	OnOpen(ctx context.Context, id int, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives graph response cache events. keyType names the
// kind of entry ("graph").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives graph client requests. Every attempt is reported,
// so a retried request produces several OnRequest calls.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError reports transport failures; HTTP error statuses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Defaults
// =============================================================================

type NoopRenderHooks struct{}

func (NoopRenderHooks) OnFrame(context.Context, int, int, time.Duration) {}
func (NoopRenderHooks) OnSettled(context.Context, int)                   {}
func (NoopRenderHooks) OnOpen(context.Context, int, error)               {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

type registry struct {
	mu     sync.RWMutex
	render RenderHooks
	cache  CacheHooks
	http   HTTPHooks
}

var hooks = &registry{
	render: NoopRenderHooks{},
	cache:  NoopCacheHooks{},
	http:   NoopHTTPHooks{},
}

// SetRenderHooks installs h. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.render = h
	hooks.mu.Unlock()
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// SetAll installs one value for every hook kind it implements.
func SetAll(h any) {
	if r, ok := h.(RenderHooks); ok {
		SetRenderHooks(r)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if t, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(t)
	}
}

func Render() RenderHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.render
}

func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op defaults.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.render = NoopRenderHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.http = NoopHTTPHooks{}
}
