// Package observability provides hooks for metrics and logging around the
// audit pipeline.
//
// The core stays dependency-free from observability frameworks: hook
// interfaces have no-op defaults, and consumers register implementations
// at startup (from main, never from libraries, which avoids import
// cycles). Different backends (OpenTelemetry, Prometheus, plain logging)
// can be attached without touching pipeline code.
//
// # Usage
//
//	func main() {
//	    observability.SetScanHooks(&myScanHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnExtractStart(ctx, eco)
//	// ... extract ...
//	observability.Scan().OnExtractComplete(ctx, eco, n, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ScanHooks receives events from the extract/aggregate/report pipeline.
type ScanHooks interface {
	// OnExtractStart fires when an ecosystem extractor begins.
	OnExtractStart(ctx context.Context, ecosystem string)

	// OnExtractComplete fires when an extractor finishes, with the record
	// count it produced and its error, if any.
	OnExtractComplete(ctx context.Context, ecosystem string, records int, duration time.Duration, err error)

	// OnReportWritten fires after the report has been renamed into place.
	OnReportWritten(ctx context.Context, path string, dependencies int)
}

// CacheHooks receives events from extraction snapshot caching.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, ecosystem string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, ecosystem string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, ecosystem string, size int)
}

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnExtractStart(context.Context, string)                               {}
func (NoopScanHooks) OnExtractComplete(context.Context, string, int, time.Duration, error) {}
func (NoopScanHooks) OnReportWritten(context.Context, string, int)                         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	scanHooks  ScanHooks  = NoopScanHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetScanHooks registers custom scan hooks.
// This should be called once at application startup before any scans.
func SetScanHooks(h ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scanHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any scans.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	cacheHooks = NoopCacheHooks{}
}
