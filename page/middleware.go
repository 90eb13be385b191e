package page

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/internal/ctxlog"
	"github.com/pthm/hxasset/lib/encoding"
)

// SetupFunc populates the per-request registry. It runs before the handler.
type SetupFunc func(ctx context.Context, reg *hxasset.Registry) error

// Locator picks the page location for a request.
type Locator func(r *http.Request) hxasset.Location

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

type middlewareOptions struct {
	backendPrefix string
	locator       Locator
	pageOpts      []Option
	encoder       *encoding.Encoder
	sensitive     bool
	logger        *slog.Logger
}

// WithBackendPrefix sets the path prefix of backend (admin) pages.
// Defaults to "/admin".
func WithBackendPrefix(prefix string) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.backendPrefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithLocation dispatches every request for loc.
func WithLocation(loc hxasset.Location) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.locator = func(*http.Request) hxasset.Location { return loc }
	}
}

// WithLocator sets a custom location picker.
func WithLocator(fn Locator) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.locator = fn
	}
}

// WithPageOptions passes options to every page host.
func WithPageOptions(opts ...Option) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.pageOpts = append(o.pageOpts, opts...)
	}
}

// WithManifestEncoder enables the loaded-asset manifest: pages carry a
// token in a <meta> tag and HTMX requests may send it back in the
// HX-Asset-Manifest header so already loaded assets are not emitted twice.
func WithManifestEncoder(enc *encoding.Encoder, sensitive bool) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.encoder = enc
		o.sensitive = sensitive
	}
}

// WithMiddlewareLogger sets the logger. Defaults to the logger in the
// request context, or slog.Default().
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.logger = l
	}
}

// Middleware builds a registry and page host for each request.
//
// It runs setup, stores the registry, page host and logger in the request
// context, and arranges for the registry to be dispatched for the request's
// location exactly once, when the layout first renders Head, Footer or
// Partial. Handlers may still add assets until then:
//
//	mux.Handle("/", page.Middleware(registerSiteAssets)(site))
//
// A setup error aborts the request with 500 Internal Server Error.
func Middleware(setup SetupFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := &middlewareOptions{backendPrefix: "/admin"}
	for _, opt := range opts {
		opt(o)
	}
	if o.locator == nil {
		o.locator = PrefixLocator(o.backendPrefix)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := o.logger
			if logger == nil {
				logger = ctxlog.FromContext(ctx)
			}
			loc := o.locator(r)

			pageOpts := append([]Option{WithLogger(logger)}, o.pageOpts...)
			if o.encoder != nil {
				pageOpts = append(pageOpts, WithEncoder(o.encoder))
				if o.sensitive {
					pageOpts = append(pageOpts, Sensitive())
				}
				if m, ok := o.loadedManifest(r, logger); ok {
					pageOpts = append(pageOpts, WithLoaded(m))
				}
			}

			var reg *hxasset.Registry
			pageOpts = append(pageOpts, WithTrigger(func(ctx context.Context) {
				rep, err := reg.DispatchForContext(ctx, loc)
				if err != nil {
					logger.ErrorContext(ctx, "page: dispatch failed", "location", loc, "error", err)
				}
				logger.DebugContext(ctx, "page: dispatched",
					"location", loc, "enqueued", len(rep.Enqueued), "skipped", len(rep.Skipped))
			}))
			assets := New(pageOpts...)
			reg = hxasset.NewRegistry(hxasset.HostOf(assets), hxasset.WithLogger(logger))

			ctx = ctxlog.WithLogger(ctx, logger)
			ctx = hxasset.WithRegistry(ctx, reg)
			ctx = WithAssets(ctx, assets)

			if setup != nil {
				if err := setup(ctx, reg); err != nil {
					logger.ErrorContext(ctx, "page: asset setup failed", "path", r.URL.Path, "error", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (o *middlewareOptions) loadedManifest(r *http.Request, logger *slog.Logger) (Manifest, bool) {
	if !IsHTMX(r) {
		return Manifest{}, false
	}
	token := r.Header.Get(HeaderManifest)
	if token == "" {
		return Manifest{}, false
	}
	m, err := DecodeManifest(o.encoder, token, o.sensitive)
	if err != nil {
		logger.WarnContext(r.Context(), "page: ignoring manifest header", "error", err)
		return Manifest{}, false
	}
	return m, true
}

// PrefixLocator returns a Locator that treats prefix and every path below it
// as the backend and everything else as the frontend.
func PrefixLocator(prefix string) Locator {
	prefix = strings.TrimSuffix(prefix, "/")
	return func(r *http.Request) hxasset.Location {
		p := r.URL.Path
		if prefix != "" && (p == prefix || strings.HasPrefix(p, prefix+"/")) {
			return hxasset.LocationBackend
		}
		return hxasset.LocationFrontend
	}
}

// Dispatch runs the page host's dispatch hook now instead of at first
// render. Later calls and renders do not dispatch again.
func Dispatch(ctx context.Context) {
	if a := FromContext(ctx); a != nil {
		a.fire(ctx)
	}
}
