package hxasset

import "context"

type registryKey struct{}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// FromContext returns the registry stored by WithRegistry, or nil.
//
// Handlers running behind page.Middleware use this to add late assets
// before the page is rendered:
//
//	if reg := hxasset.FromContext(r.Context()); reg != nil {
//	    reg.Add(ctx, chart, hxasset.LocationFrontend)
//	}
func FromContext(ctx context.Context) *Registry {
	r, _ := ctx.Value(registryKey{}).(*Registry)
	return r
}
