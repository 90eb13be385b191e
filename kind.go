package hxasset

import "fmt"

// Kind discriminates script assets from style assets.
//
// Scripts and styles live in independent handle namespaces, so "app" may
// name both a script and a stylesheet without conflict.
type Kind string

const (
	// KindScript is a JavaScript asset rendered as a <script> tag.
	KindScript Kind = "script"

	// KindStyle is a stylesheet asset rendered as a <link rel="stylesheet"> tag.
	KindStyle Kind = "style"
)

// Kinds lists every asset kind in dispatch order (scripts before styles).
var Kinds = []Kind{KindScript, KindStyle}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindScript || k == KindStyle
}

// ParseKind converts a string such as "script" into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: kind %q", ErrInvalidValue, s)
	}
	return k, nil
}

// Location is the page context an entry applies to.
type Location string

const (
	// LocationFrontend targets public, visitor-facing pages.
	LocationFrontend Location = "frontend"

	// LocationBackend targets admin pages.
	LocationBackend Location = "backend"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l == LocationFrontend || l == LocationBackend
}

// ParseLocation converts a string such as "frontend" into a Location.
func ParseLocation(s string) (Location, error) {
	l := Location(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: location %q", ErrInvalidValue, s)
	}
	return l, nil
}

// Media is the media query target of a stylesheet.
type Media string

const (
	// MediaAll applies the stylesheet to every medium. This is the default.
	MediaAll Media = "all"

	// MediaPrint applies the stylesheet when printing.
	MediaPrint Media = "print"

	// MediaScreen applies the stylesheet to screens only.
	MediaScreen Media = "screen"
)

// Valid reports whether m is a known media target.
func (m Media) Valid() bool {
	switch m {
	case MediaAll, MediaPrint, MediaScreen:
		return true
	}
	return false
}

// ParseMedia converts a string into a Media. An empty string yields MediaAll.
func ParseMedia(s string) (Media, error) {
	if s == "" {
		return MediaAll, nil
	}
	m := Media(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: media %q", ErrInvalidValue, s)
	}
	return m, nil
}
