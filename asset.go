package hxasset

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// VersionAuto asks the host platform to assign a version.
const VersionAuto = ""

// Asset is a script or stylesheet declaration.
//
// The interface is sealed: *Script and *Style are the only implementations,
// and code that needs kind-specific fields switches on the concrete type.
//
//	switch a := asset.(type) {
//	case *hxasset.Script:
//	    _ = a.InFooter()
//	case *hxasset.Style:
//	    _ = a.Media()
//	}
type Asset interface {
	Handle() string
	Source() Source
	Dependencies() []string
	Version() string
	Kind() Kind

	isAsset()
}

// assetFields holds the fields shared by every asset kind.
type assetFields struct {
	mu      sync.RWMutex
	handle  string
	src     Source
	deps    []string
	version string
}

func (*assetFields) isAsset() {}

// Handle returns the asset's identifier within its kind.
func (f *assetFields) Handle() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.handle
}

// Source returns the asset's source, literal or provider.
func (f *assetFields) Source() Source {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.src
}

// Dependencies returns a copy of the handles this asset depends on.
func (f *assetFields) Dependencies() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.deps)
}

// Version returns the asset's version, or VersionAuto.
func (f *assetFields) Version() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// SetHandle replaces the handle.
//
// The registry keys entries by the handle the asset had when it was added,
// so renaming a registered asset does not move its entries.
func (f *assetFields) SetHandle(handle string) {
	f.mu.Lock()
	f.handle = handle
	f.mu.Unlock()
}

// SetSource replaces the source. Affects future dispatches only.
func (f *assetFields) SetSource(src Source) {
	f.mu.Lock()
	f.src = src
	f.mu.Unlock()
}

// SetDependencies replaces the dependency list.
func (f *assetFields) SetDependencies(deps []string) {
	f.mu.Lock()
	f.deps = slices.Clone(deps)
	f.mu.Unlock()
}

// SetVersion replaces the version.
func (f *assetFields) SetVersion(version string) {
	f.mu.Lock()
	f.version = version
	f.mu.Unlock()
}

func (f *assetFields) init(handle string, src Source, deps []string, version string) {
	f.handle = handle
	f.src = src
	f.deps = slices.Clone(deps)
	f.version = version
}

// Script is a JavaScript asset.
type Script struct {
	assetFields
	inFooter bool
}

// ScriptOption configures a Script at construction.
type ScriptOption func(*Script)

// InFooter places the script before </body> instead of in <head>.
func InFooter() ScriptOption {
	return func(s *Script) {
		s.inFooter = true
	}
}

// NewScript creates a script asset.
//
//	hxasset.NewScript("app-js", hxasset.Literal("/static/app.js"), []string{"htmx"}, "1.0", hxasset.InFooter())
func NewScript(handle string, src Source, deps []string, version string, opts ...ScriptOption) *Script {
	s := &Script{}
	s.init(handle, src, deps, version)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns KindScript.
func (s *Script) Kind() Kind { return KindScript }

// InFooter reports whether the script belongs at the end of the document.
func (s *Script) InFooter() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFooter
}

// SetInFooter replaces the footer flag.
func (s *Script) SetInFooter(inFooter bool) {
	s.mu.Lock()
	s.inFooter = inFooter
	s.mu.Unlock()
}

// String renders the script's fields as HTML attribute pairs.
func (s *Script) String() string {
	return attrString(s, "in_footer", strconv.FormatBool(s.InFooter()))
}

// LogValue implements slog.LogValuer.
func (s *Script) LogValue() slog.Value {
	return logValue(s, slog.Bool("in_footer", s.InFooter()))
}

// Style is a stylesheet asset.
type Style struct {
	assetFields
	media Media
}

// StyleOption configures a Style at construction.
type StyleOption func(*Style)

// WithMedia sets the stylesheet's media target. Invalid values are ignored.
func WithMedia(m Media) StyleOption {
	return func(s *Style) {
		if m.Valid() {
			s.media = m
		}
	}
}

// NewStyle creates a stylesheet asset with media "all" unless WithMedia is given.
func NewStyle(handle string, src Source, deps []string, version string, opts ...StyleOption) *Style {
	s := &Style{media: MediaAll}
	s.init(handle, src, deps, version)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns KindStyle.
func (s *Style) Kind() Kind { return KindStyle }

// Media returns the stylesheet's media target.
func (s *Style) Media() Media {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.media
}

// SetMedia replaces the media target. Invalid values are ignored.
func (s *Style) SetMedia(m Media) {
	if !m.Valid() {
		return
	}
	s.mu.Lock()
	s.media = m
	s.mu.Unlock()
}

// String renders the stylesheet's fields as HTML attribute pairs.
func (s *Style) String() string {
	return attrString(s, "media", string(s.Media()))
}

// LogValue implements slog.LogValuer.
func (s *Style) LogValue() slog.Value {
	return logValue(s, slog.String("media", string(s.Media())))
}

// attrString renders ` handle="..." src="..."` style pairs, escaped for HTML.
func attrString(a Asset, extraKey, extraValue string) string {
	pairs := [][2]string{
		{"handle", a.Handle()},
		{"src", a.Source().String()},
		{"dependencies", strings.Join(a.Dependencies(), ",")},
		{"version", a.Version()},
		{extraKey, extraValue},
	}

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p[0])
		sb.WriteString(`="`)
		sb.WriteString(templ.EscapeString(p[1]))
		sb.WriteByte('"')
	}
	return sb.String()
}

func logValue(a Asset, extra slog.Attr) slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(a.Kind())),
		slog.String("handle", a.Handle()),
		slog.String("src", a.Source().String()),
		slog.String("version", a.Version()),
		extra,
	)
}
