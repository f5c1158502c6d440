// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages emit events through the registered hooks; by default the
// hooks do nothing. Applications register implementations once at startup,
// so the libraries stay free of any particular metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.SetHTTPHooks(&myHTTPHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Libraries call hooks to emit events:
//
//	observability.Listing().OnNormalizeStart(ctx, len(ids))
//	// ... look up metadata and statistics ...
//	observability.Listing().OnNormalizeComplete(ctx, len(ids), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Listing Hooks
// =============================================================================

// ListingHooks receives events from record normalization.
type ListingHooks interface {
	OnNormalizeStart(ctx context.Context, count int)
	OnNormalizeComplete(ctx context.Context, count int, duration time.Duration, err error)

	// OnFallback records a pinned release replaced by the latest one.
	OnFallback(ctx context.Context, name, requested, latest string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the HTTP response cache.
// namespace is the remote service ("pypi", "pypistats").
type CacheHooks interface {
	OnCacheHit(ctx context.Context, namespace string)
	OnCacheMiss(ctx context.Context, namespace string)
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (connection refused, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopListingHooks is a no-op implementation of ListingHooks.
type NoopListingHooks struct{}

func (NoopListingHooks) OnNormalizeStart(context.Context, int)                          {}
func (NoopListingHooks) OnNormalizeComplete(context.Context, int, time.Duration, error) {}
func (NoopListingHooks) OnFallback(context.Context, string, string, string)             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	listingHooks ListingHooks = NoopListingHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetListingHooks registers custom listing hooks. A nil h is ignored.
func SetListingHooks(h ListingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		listingHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Listing returns the registered listing hooks.
func Listing() ListingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return listingHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	listingHooks = NoopListingHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
