package hxasset

import (
	"context"
	"sync/atomic"
)

// Predicate decides at dispatch time whether an entry is enqueued.
//
// It receives the request context, so it can inspect the current user,
// route, or feature flags:
//
//	reg.Add(ctx, editor, hxasset.LocationBackend, hxasset.EnabledIf(func(ctx context.Context) bool {
//	    return auth.UserFrom(ctx).CanEdit()
//	}))
type Predicate func(ctx context.Context) bool

// Entry wraps an asset with the dispatch metadata the asset does not own.
// Entries are created by Registry.Add and are read-only afterwards.
type Entry struct {
	asset        Asset
	location     Location
	enabled      Predicate
	registerOnly bool

	handle     string
	seq        uint64
	registered atomic.Bool
}

// AddOption configures an entry created by Registry.Add.
type AddOption func(*Entry)

// EnabledIf attaches a predicate evaluated on every dispatch.
func EnabledIf(p Predicate) AddOption {
	return func(e *Entry) {
		e.enabled = p
	}
}

// RegisterOnly registers the asset with the host immediately and keeps it
// out of location dispatch. Other assets may still depend on it.
func RegisterOnly() AddOption {
	return func(e *Entry) {
		e.registerOnly = true
	}
}

// Asset returns the wrapped script or stylesheet.
func (e *Entry) Asset() Asset { return e.asset }

// Location returns the page context the entry is dispatched for.
func (e *Entry) Location() Location { return e.location }

// Predicate returns the entry's enable check, or nil when it is always enabled.
func (e *Entry) Predicate() Predicate { return e.enabled }

// RegisterOnly reports whether the entry is kept out of location dispatch.
func (e *Entry) RegisterOnly() bool { return e.registerOnly }

// Handle returns the handle the entry is stored under.
func (e *Entry) Handle() string { return e.handle }

// Kind returns the kind of the wrapped asset.
func (e *Entry) Kind() Kind { return e.asset.Kind() }

// Registered reports whether the asset was successfully registered with the
// host while this entry was stored.
func (e *Entry) Registered() bool { return e.registered.Load() }

// isEnabled evaluates the predicate; entries without one are always enabled.
func (e *Entry) isEnabled(ctx context.Context) bool {
	return e.enabled == nil || e.enabled(ctx)
}
