// Package page is an hxasset host that renders script and stylesheet tags
// into an HTML document with templ.
//
// An Assets value collects everything the registry registers and enqueues
// during one request and renders it in two places:
//
//	<head>
//	    @page.Head(ctx)
//	</head>
//	<body>
//	    ...
//	    @page.Footer(ctx)
//	</body>
//
// Dependencies are resolved here rather than in the registry: enqueueing an
// asset first emits any registered dependency that has not been emitted yet,
// and rendering places every emitted dependency before its dependents.
package page

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/lib/encoding"
)

// Tag is one asset as emitted into the page.
type Tag struct {
	Kind     hxasset.Kind
	Handle   string
	Src      string
	Deps     []string
	Version  string
	InFooter bool
	Media    hxasset.Media
}

// TriggerFunc runs the registry dispatch for the page. It is invoked once,
// the first time the head, footer or partial output is rendered.
type TriggerFunc func(ctx context.Context)

// Assets is a page-scoped host platform. It implements hxasset.Platform and
// is safe for concurrent use.
type Assets struct {
	mu             sync.Mutex
	defaultVersion string
	encoder        *encoding.Encoder
	sensitive      bool
	logger         *slog.Logger

	registered map[hxasset.Kind]map[string]Tag
	emitted    map[hxasset.Kind]map[string]bool
	loaded     Manifest
	tags       []Tag
	rendered   int // tags[:rendered] were written by Partial

	trigger TriggerFunc
	once    sync.Once
}

// Option configures Assets.
type Option func(*Assets)

// WithDefaultVersion sets the version used for assets enqueued with
// hxasset.VersionAuto.
func WithDefaultVersion(v string) Option {
	return func(a *Assets) {
		a.defaultVersion = v
	}
}

// WithEncoder makes Head write a signed manifest of the emitted handles into
// a <meta> tag, for HTMX requests to send back.
func WithEncoder(enc *encoding.Encoder) Option {
	return func(a *Assets) {
		a.encoder = enc
	}
}

// Sensitive encrypts the manifest instead of signing it.
func Sensitive() Option {
	return func(a *Assets) {
		a.sensitive = true
	}
}

// WithLoaded marks handles the browser already has. They count as emitted
// for dependency resolution but no tags are written for them.
func WithLoaded(m Manifest) Option {
	return func(a *Assets) {
		a.loaded = m.clone()
	}
}

// WithTrigger sets the dispatch hook run before the first render.
func WithTrigger(fn TriggerFunc) Option {
	return func(a *Assets) {
		a.trigger = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Assets) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an empty page host.
func New(opts ...Option) *Assets {
	a := &Assets{
		logger: slog.Default(),
		registered: map[hxasset.Kind]map[string]Tag{
			hxasset.KindScript: {},
			hxasset.KindStyle:  {},
		},
		emitted: map[hxasset.Kind]map[string]bool{
			hxasset.KindScript: {},
			hxasset.KindStyle:  {},
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RegisterScript records a script for later enqueueing by handle.
// It returns false if the handle is already registered.
func (a *Assets) RegisterScript(ctx context.Context, args hxasset.ScriptArgs) bool {
	return a.register(ctx, scriptTag(args))
}

// RegisterStyle records a stylesheet for later enqueueing by handle.
// It returns false if the handle is already registered.
func (a *Assets) RegisterStyle(ctx context.Context, args hxasset.StyleArgs) bool {
	return a.register(ctx, styleTag(args))
}

// EnqueueScript emits a script, after any registered dependencies.
// An empty Src enqueues the registered script of that handle.
func (a *Assets) EnqueueScript(ctx context.Context, args hxasset.ScriptArgs) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enqueue(ctx, scriptTag(args))
}

// EnqueueStyle emits a stylesheet, after any registered dependencies.
// An empty Src enqueues the registered stylesheet of that handle.
func (a *Assets) EnqueueStyle(ctx context.Context, args hxasset.StyleArgs) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enqueue(ctx, styleTag(args))
}

// Registered reports whether handle was registered for kind.
func (a *Assets) Registered(kind hxasset.Kind, handle string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.registered[kind][handle]
	return ok
}

// Tags returns the emitted tags in emission order.
func (a *Assets) Tags() []Tag {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.tags)
}

// Manifest returns the handles the browser will have after this page:
// the loaded ones followed by those emitted here.
func (a *Assets) Manifest() Manifest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.manifestLocked()
}

func (a *Assets) manifestLocked() Manifest {
	m := a.loaded.clone()
	for _, t := range a.tags {
		m.add(t.Kind, t.Handle)
	}
	return m
}

func (a *Assets) register(ctx context.Context, t Tag) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.registered[t.Kind][t.Handle]; ok {
		a.logger.DebugContext(ctx, "page: handle already registered", "kind", t.Kind, "handle", t.Handle)
		return false
	}
	a.registered[t.Kind][t.Handle] = t
	return true
}

// enqueue must be called with a.mu held.
func (a *Assets) enqueue(ctx context.Context, t Tag) {
	if a.emitted[t.Kind][t.Handle] {
		return
	}
	if t.Src == "" {
		reg, ok := a.registered[t.Kind][t.Handle]
		if !ok {
			a.logger.DebugContext(ctx, "page: enqueue without source or registration",
				"kind", t.Kind, "handle", t.Handle)
			return
		}
		t = reg
	}
	a.emitted[t.Kind][t.Handle] = true

	for _, dep := range t.Deps {
		if a.emitted[t.Kind][dep] {
			continue
		}
		d, ok := a.registered[t.Kind][dep]
		if !ok {
			a.logger.DebugContext(ctx, "page: dependency not registered", "kind", t.Kind, "handle", t.Handle, "dependency", dep)
			continue
		}
		// A head script pulls its dependencies into the head.
		if t.Kind == hxasset.KindScript && !t.InFooter {
			d.InFooter = false
		}
		a.enqueue(ctx, d)
	}

	if a.loaded.Has(t.Kind, t.Handle) {
		return
	}
	if t.Version == hxasset.VersionAuto {
		t.Version = a.defaultVersion
	}
	a.tags = append(a.tags, t)
}

// ordered returns a copy of tags in dependency order: each tag follows the
// tags it depends on, otherwise emission order is kept. A script that a head
// script depends on, directly or not, is moved to the head. Dependencies
// missing from tags are ignored and cycles are broken where they close.
func ordered(tags []Tag) []Tag {
	type key struct {
		kind   hxasset.Kind
		handle string
	}
	index := make(map[key]int, len(tags))
	for i, t := range tags {
		index[key{t.Kind, t.Handle}] = i
	}

	out := make([]Tag, 0, len(tags))
	seen := make([]bool, len(tags))
	var visit func(i int)
	visit = func(i int) {
		if seen[i] {
			return
		}
		seen[i] = true
		for _, dep := range tags[i].Deps {
			if j, ok := index[key{tags[i].Kind, dep}]; ok {
				visit(j)
			}
		}
		out = append(out, tags[i])
	}
	for i := range tags {
		visit(i)
	}

	pos := make(map[key]int, len(out))
	for i, t := range out {
		pos[key{t.Kind, t.Handle}] = i
	}
	// Dependents come after their dependencies, so one backward pass
	// carries head placement down whole chains.
	for i := len(out) - 1; i >= 0; i-- {
		t := out[i]
		if t.Kind != hxasset.KindScript || t.InFooter {
			continue
		}
		for _, dep := range t.Deps {
			if j, ok := pos[key{t.Kind, dep}]; ok && j < i {
				out[j].InFooter = false
			}
		}
	}
	return out
}

func (a *Assets) fire(ctx context.Context) {
	a.once.Do(func() {
		if a.trigger != nil {
			a.trigger(ctx)
		}
	})
}

func scriptTag(args hxasset.ScriptArgs) Tag {
	return Tag{
		Kind:     hxasset.KindScript,
		Handle:   args.Handle,
		Src:      args.Src,
		Deps:     slices.Clone(args.Deps),
		Version:  args.Version,
		InFooter: args.InFooter,
	}
}

func styleTag(args hxasset.StyleArgs) Tag {
	m := args.Media
	if !m.Valid() {
		m = hxasset.MediaAll
	}
	return Tag{
		Kind:    hxasset.KindStyle,
		Handle:  args.Handle,
		Src:     args.Src,
		Deps:    slices.Clone(args.Deps),
		Version: args.Version,
		Media:   m,
	}
}
