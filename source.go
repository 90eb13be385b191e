package hxasset

import (
	"context"
	"fmt"
)

// ProviderFunc computes an asset's source at dispatch time.
//
// The provider receives the asset being dispatched, so a single function can
// serve many assets:
//
//	cdn := func(ctx context.Context, a hxasset.Asset) (string, error) {
//	    return "https://cdn.example.com/" + a.Handle() + ".js", nil
//	}
//	hxasset.NewScript("app-js", hxasset.Provide(cdn), nil, "1.0")
//
// A returned error is a caller bug, not an expected runtime condition. It is
// propagated to whoever called Register or Enqueue.
type ProviderFunc func(ctx context.Context, a Asset) (string, error)

// Source is either a literal path/URL or a provider evaluated lazily.
//
// The zero Source is the empty literal.
type Source struct {
	literal  string
	provider ProviderFunc
}

// Literal returns a Source that always resolves to src.
func Literal(src string) Source {
	return Source{literal: src}
}

// Provide returns a Source resolved by calling fn at dispatch time.
// A nil fn behaves like the empty literal.
func Provide(fn ProviderFunc) Source {
	return Source{provider: fn}
}

// IsProvider reports whether the source is computed by a provider.
func (s Source) IsProvider() bool {
	return s.provider != nil
}

// String returns the literal value, or "<provider>" for computed sources.
func (s Source) String() string {
	if s.provider != nil {
		return "<provider>"
	}
	return s.literal
}

// Resolve returns the concrete source for a. Providers are invoked exactly
// once per call; their errors are wrapped with ErrSourceProvider.
func (s Source) Resolve(ctx context.Context, a Asset) (string, error) {
	if s.provider == nil {
		return s.literal, nil
	}
	src, err := s.provider(ctx, a)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q: %w", ErrSourceProvider, a.Kind(), a.Handle(), err)
	}
	return src, nil
}
