// Package observability provides hooks for metrics and tracing.
//
// The core packages stay free of observability frameworks; instead they
// emit events through hook interfaces with no-op defaults. An
// application registers real implementations once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnResolveStart(ctx, sceneName, elementCount)
//	// ... resolve ...
//	observability.Pipeline().OnResolveComplete(ctx, sceneName, stats, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Collect events
	OnCollectStart(ctx context.Context, sceneName string)
	OnCollectComplete(ctx context.Context, sceneName string, elementCount int, duration time.Duration)

	// Route events
	OnRouteStart(ctx context.Context, sceneName string, arrowCount int)
	OnRouteComplete(ctx context.Context, sceneName string, forced int, duration time.Duration)

	// Resolve events
	OnResolveStart(ctx context.Context, sceneName string, elementCount int)
	OnResolveComplete(ctx context.Context, sceneName string, placed, forced, suppressed int, duration time.Duration)
}

// CacheHooks receives events from layout cache lookups.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServiceHooks receives events from the HTTP service.
type ServiceHooks interface {
	// OnRequest records a completed request.
	OnRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCollectStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnCollectComplete(context.Context, string, int, time.Duration)   {}
func (NoopPipelineHooks) OnRouteStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnRouteComplete(context.Context, string, int, time.Duration)     {}
func (NoopPipelineHooks) OnResolveStart(context.Context, string, int)                     {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, string, int, int, int, time.Duration) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServiceHooks is a no-op implementation of ServiceHooks.
type NoopServiceHooks struct{}

func (NoopServiceHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	serviceHooks  ServiceHooks  = NoopServiceHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// Call once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServiceHooks registers custom service hooks.
// Call once at application startup before serving requests.
func SetServiceHooks(h ServiceHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serviceHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Service returns the registered service hooks.
func Service() ServiceHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serviceHooks
}

// Reset restores all hooks to their no-op defaults.
// Primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	serviceHooks = NoopServiceHooks{}
}
