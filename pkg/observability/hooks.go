// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about drags and API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDragHooks(&myDragHooks{})
//	    // ... run application
//	}
//
// The drag engine calls hooks to emit events:
//
//	observability.Drag().OnDragStart(blockID)
//	// ... pointer moves ...
//	observability.Drag().OnCommit(blockID, targetID, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Drag Hooks
// =============================================================================

// DragHooks receives events from drag sessions.
type DragHooks interface {
	// OnDragStart records the start of a drag of the stack rooted at blockID.
	OnDragStart(blockID string)

	// OnPreviewShown records a preview of the given mode for the candidate
	// connection named target.
	OnPreviewShown(mode, target string)

	// OnPreviewHidden records that the active preview was removed.
	OnPreviewHidden()

	// OnCommit records a drop that connected blockID to targetID.
	OnCommit(blockID, targetID string, elapsed time.Duration)

	// OnDelete records a drop that deleted the stack rooted at blockID.
	OnDelete(blockID string)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP drag API.
type APIHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response to a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDragHooks is a no-op implementation of DragHooks.
type NoopDragHooks struct{}

func (NoopDragHooks) OnDragStart(string)                     {}
func (NoopDragHooks) OnPreviewShown(string, string)          {}
func (NoopDragHooks) OnPreviewHidden()                       {}
func (NoopDragHooks) OnCommit(string, string, time.Duration) {}
func (NoopDragHooks) OnDelete(string)                        {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dragHooks DragHooks = NoopDragHooks{}
	apiHooks  APIHooks  = NoopAPIHooks{}
	hooksMu   sync.RWMutex
)

// SetDragHooks registers custom drag hooks.
// This should be called once at application startup before any drag starts.
func SetDragHooks(h DragHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dragHooks = h
	}
}

// SetAPIHooks registers custom API hooks.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Drag returns the registered drag hooks.
func Drag() DragHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dragHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dragHooks = NoopDragHooks{}
	apiHooks = NoopAPIHooks{}
}
