// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about pipeline execution.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for each event category
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, "clusters", len(entities))
//	// ... compute layout ...
//	observability.Pipeline().OnLayoutComplete(ctx, "clusters", len(nodes), duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the roster pipeline.
type PipelineHooks interface {
	// OnLoad records a roster file being read and normalized.
	OnLoad(ctx context.Context, path string, entities int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, kind string, entities int)
	OnLayoutComplete(ctx context.Context, kind string, nodes int, duration time.Duration)

	// Link selection events
	OnSelectStart(ctx context.Context, mode string, topN int)
	OnSelectComplete(ctx context.Context, mode string, links int, duration time.Duration)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoad(context.Context, string, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                   {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration) {}
func (NoopPipelineHooks) OnSelectStart(context.Context, string, int)                   {}
func (NoopPipelineHooks) OnSelectComplete(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
