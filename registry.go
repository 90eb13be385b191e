package hxasset

import (
	"cmp"
	"context"
	"iter"
	"log/slog"
	"slices"
	"sync"
)

// Registry stores asset entries per kind and handle and dispatches them to a
// host platform.
//
// A registry is meant to live for one page render: build it, populate it
// with Add, then call DispatchForContext once for the page's location. The
// page middleware does exactly that per request. All methods are safe for
// concurrent use.
//
// Every Add is retained. When a handle is added more than once for the same
// kind and location, only the most recent entry is considered by Latest,
// Enumerate and dispatch; Get still returns the full history.
type Registry struct {
	mu      sync.Mutex
	cycleMu sync.Mutex // serializes DispatchForContext
	host    Host
	logger  *slog.Logger
	entries map[Kind]map[string][]*Entry
	seq     uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for dispatch diagnostics.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry dispatching to host.
func NewRegistry(host Host, opts ...Option) *Registry {
	r := &Registry{
		host:   host,
		logger: slog.Default(),
		entries: map[Kind]map[string][]*Entry{
			KindScript: make(map[string][]*Entry),
			KindStyle:  make(map[string][]*Entry),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host the registry dispatches to.
func (r *Registry) Host() Host {
	return r.host
}

// Add stores asset for location.
//
// With RegisterOnly, the asset is registered with the host right away.
// Registration failures (unbound primitives, host rejection, provider
// errors) are logged and otherwise ignored; Add never fails.
//
//	reg.Add(ctx, hxasset.NewScript("app-js", hxasset.Literal("/app.js"), nil, "1.0"), hxasset.LocationFrontend)
//	reg.Add(ctx, vendor, hxasset.LocationBackend, hxasset.RegisterOnly())
func (r *Registry) Add(ctx context.Context, asset Asset, location Location, opts ...AddOption) {
	if isNil(asset) {
		r.logger.WarnContext(ctx, "hxasset: ignoring nil asset", "location", location)
		return
	}
	if !location.Valid() {
		r.logger.WarnContext(ctx, "hxasset: entry has unknown location and will never dispatch",
			"asset", asset, "location", location)
	}

	e := &Entry{
		asset:    asset,
		location: location,
		handle:   asset.Handle(),
	}
	for _, opt := range opts {
		opt(e)
	}

	r.mu.Lock()
	r.seq++
	e.seq = r.seq
	byHandle := r.entries[asset.Kind()]
	byHandle[e.handle] = append(byHandle[e.handle], e)
	r.mu.Unlock()

	if !e.registerOnly {
		return
	}

	ok, err := r.Register(ctx, asset)
	switch {
	case err != nil:
		r.logger.ErrorContext(ctx, "hxasset: registration at add failed", "asset", asset, "error", err)
	case !ok && r.host.CanRegister(asset.Kind()):
		r.logger.WarnContext(ctx, "hxasset: registration at add failed", "asset", asset, "error", ErrRegisterFailed)
	}
}

// Remove deletes every entry for handle, in both the script and style namespaces.
// Unknown handles are ignored.
func (r *Registry) Remove(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byHandle := range r.entries {
		delete(byHandle, handle)
	}
}

// RemoveKind deletes every entry for handle within one kind.
func (r *Registry) RemoveKind(kind Kind, handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if byHandle, ok := r.entries[kind]; ok {
		delete(byHandle, handle)
	}
}

// RemoveAsset deletes, within the asset's own kind, every entry stored under
// a handle the asset was added with, even if the asset has been renamed since.
// An asset that was never added removes its current handle. A style sharing
// the handle of a removed script survives.
func (r *Registry) RemoveAsset(a Asset) {
	if isNil(a) {
		return
	}
	handle := a.Handle()

	r.mu.Lock()
	defer r.mu.Unlock()
	byHandle := r.entries[a.Kind()]
	found := false
	for h, list := range byHandle {
		if slices.ContainsFunc(list, func(e *Entry) bool { return e.asset == a }) {
			delete(byHandle, h)
			found = true
		}
	}
	if !found {
		delete(byHandle, handle)
	}
}

// RemoveEntry deletes every entry stored under e's handle within e's kind.
func (r *Registry) RemoveEntry(e *Entry) {
	if e == nil || isNil(e.asset) {
		return
	}
	r.RemoveKind(e.Kind(), e.handle)
}

// Get returns all entries for handle within kind, oldest first.
// The result is empty for unknown handles.
func (r *Registry) Get(handle string, kind Kind) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries[kind][handle])
}

// Latest returns the most recently added entry for handle within kind at location.
func (r *Registry) Latest(handle string, kind Kind, location Location) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := latestAt(r.entries[kind][handle], location)
	return e, e != nil
}

// Enumerate yields the active entries of kind for location, in insertion
// order, skipping register-only entries.
//
// Only the latest entry per handle at location is active. If that entry is
// register-only, the handle is not yielded even when older entries were
// enqueueable. The sequence iterates a snapshot taken when iteration starts.
func (r *Registry) Enumerate(kind Kind, location Location) iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range r.active(kind, location) {
			if !yield(e) {
				return
			}
		}
	}
}

// Entries returns every retained entry across both kinds in insertion order.
func (r *Registry) Entries() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*Entry
	for _, byHandle := range r.entries {
		for _, list := range byHandle {
			all = append(all, list...)
		}
	}
	sortBySeq(all)
	return all
}

// Len returns the number of retained entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, byHandle := range r.entries {
		for _, list := range byHandle {
			n += len(list)
		}
	}
	return n
}

// active computes the dispatchable entries of kind at location.
func (r *Registry) active(kind Kind, location Location) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Entry
	for _, list := range r.entries[kind] {
		e := latestAt(list, location)
		if e == nil || e.registerOnly {
			continue
		}
		out = append(out, e)
	}
	sortBySeq(out)
	return out
}

// markRegistered flags the stored entries that wrap a.
func (r *Registry) markRegistered(a Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries[a.Kind()][a.Handle()] {
		if e.asset == a {
			e.registered.Store(true)
		}
	}
}

// latestAt returns the last entry in list (insertion order) at location.
func latestAt(list []*Entry, location Location) *Entry {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].location == location {
			return list[i]
		}
	}
	return nil
}

// isNil reports whether a is nil or a nil *Script or *Style.
func isNil(a Asset) bool {
	switch a := a.(type) {
	case nil:
		return true
	case *Script:
		return a == nil
	case *Style:
		return a == nil
	}
	return false
}

func sortBySeq(entries []*Entry) {
	slices.SortFunc(entries, func(a, b *Entry) int {
		return cmp.Compare(a.seq, b.seq)
	})
}
