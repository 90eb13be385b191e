package page

import (
	"context"

	"github.com/a-h/templ"
)

type assetsKey struct{}

// WithAssets returns a copy of ctx carrying a.
func WithAssets(ctx context.Context, a *Assets) context.Context {
	return context.WithValue(ctx, assetsKey{}, a)
}

// FromContext returns the page host stored by WithAssets, or nil.
func FromContext(ctx context.Context) *Assets {
	a, _ := ctx.Value(assetsKey{}).(*Assets)
	return a
}

// Head returns the head output of the page host in ctx. It renders nothing
// when ctx has no page host.
func Head(ctx context.Context) templ.Component {
	if a := FromContext(ctx); a != nil {
		return a.Head()
	}
	return templ.NopComponent
}

// Footer returns the footer output of the page host in ctx.
func Footer(ctx context.Context) templ.Component {
	if a := FromContext(ctx); a != nil {
		return a.Footer()
	}
	return templ.NopComponent
}

// Partial returns the fragment output of the page host in ctx.
func Partial(ctx context.Context) templ.Component {
	if a := FromContext(ctx); a != nil {
		return a.Partial()
	}
	return templ.NopComponent
}
