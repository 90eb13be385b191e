// Package hxassetecho provides Echo framework integration for hxasset.
//
// Mount the per-request asset registry on an Echo instance or group:
//
//	e := echo.New()
//	hxassetecho.Mount(e, registerAssets)
//
// Or on a group with its own middleware and location:
//
//	g := e.Group("/admin", authMiddleware)
//	hxassetecho.MountGroup(g, registerAdminAssets,
//	    hxassetecho.WithPageOptions(page.WithLocation(hxasset.LocationBackend)))
package hxassetecho

import (
	"crypto/rand"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/lib/encoding"
	"github.com/pthm/hxasset/page"
)

// Option configures Middleware, Mount and MountGroup.
type Option func(*options)

type options struct {
	key       []byte
	manifest  bool
	sensitive bool
	pageOpts  []page.MiddlewareOption
}

// WithKey sets the key that signs the loaded-asset manifest.
// If not provided, a random key is generated. Manifests then stop
// verifying on restart, which only costs clients a re-download.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithSensitive encrypts the manifest instead of signing it.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// WithoutManifest disables the loaded-asset manifest.
func WithoutManifest() Option {
	return func(o *options) {
		o.manifest = false
	}
}

// WithPageOptions passes options through to page.Middleware.
func WithPageOptions(opts ...page.MiddlewareOption) Option {
	return func(o *options) {
		o.pageOpts = append(o.pageOpts, opts...)
	}
}

// Middleware returns page.Middleware as Echo middleware.
func Middleware(setup page.SetupFunc, opts ...Option) echo.MiddlewareFunc {
	o := &options{manifest: true}
	for _, opt := range opts {
		opt(o)
	}

	pageOpts := o.pageOpts
	if o.manifest {
		pageOpts = append([]page.MiddlewareOption{page.WithManifestEncoder(newEncoder(o.key), o.sensitive)}, pageOpts...)
	}
	return echo.WrapMiddleware(page.Middleware(setup, pageOpts...))
}

// Mount installs Middleware on an Echo instance.
//
//	e := echo.New()
//	hxassetecho.Mount(e, cfg.SetupFunc(funcs))
//
//	// With options:
//	hxassetecho.Mount(e, setup, hxassetecho.WithKey(key))
func Mount(e *echo.Echo, setup page.SetupFunc, opts ...Option) {
	e.Use(Middleware(setup, opts...))
}

// MountGroup installs Middleware on an Echo group, after the group's own
// middleware (auth, logging, etc.).
func MountGroup(g *echo.Group, setup page.SetupFunc, opts ...Option) {
	g.Use(Middleware(setup, opts...))
}

func newEncoder(key []byte) *encoding.Encoder {
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxassetecho: failed to generate random key: %v", err))
		}
	}
	enc, err := encoding.NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxassetecho: %v", err))
	}
	return enc
}

// Registry returns the request's asset registry, or nil outside Middleware.
func Registry(c echo.Context) *hxasset.Registry {
	return hxasset.FromContext(c.Request().Context())
}

// Assets returns the request's page host, or nil outside Middleware.
func Assets(c echo.Context) *page.Assets {
	return page.FromContext(c.Request().Context())
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxassetecho.Render(c, layout(body()))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
