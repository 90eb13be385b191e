package page

import (
	"errors"
	"slices"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/lib/encoding"
)

// HeaderManifest is the request header HTMX requests use to send the
// manifest token back to the server.
const HeaderManifest = "HX-Asset-Manifest"

// Manifest errors.
var (
	ErrNoEncoder        = errors.New("page: no manifest encoder configured")
	ErrInvalidManifest  = errors.New("page: invalid manifest token")
	ErrManifestTampered = errors.New("page: manifest token failed verification")
)

// IsManifestError checks if err came from decoding a bad manifest token.
func IsManifestError(err error) bool {
	return errors.Is(err, ErrInvalidManifest) || errors.Is(err, ErrManifestTampered)
}

// Manifest lists the handles already present in the browser, per kind.
type Manifest struct {
	Scripts []string
	Styles  []string
}

// Has reports whether handle of kind is listed.
func (m Manifest) Has(kind hxasset.Kind, handle string) bool {
	switch kind {
	case hxasset.KindScript:
		return slices.Contains(m.Scripts, handle)
	case hxasset.KindStyle:
		return slices.Contains(m.Styles, handle)
	}
	return false
}

// Len returns the number of listed handles.
func (m Manifest) Len() int {
	return len(m.Scripts) + len(m.Styles)
}

func (m *Manifest) add(kind hxasset.Kind, handle string) {
	if m.Has(kind, handle) {
		return
	}
	switch kind {
	case hxasset.KindScript:
		m.Scripts = append(m.Scripts, handle)
	case hxasset.KindStyle:
		m.Styles = append(m.Styles, handle)
	}
}

func (m Manifest) clone() Manifest {
	return Manifest{Scripts: slices.Clone(m.Scripts), Styles: slices.Clone(m.Styles)}
}

// EncodeFields implements encoding.Encodable.
func (m Manifest) EncodeFields() map[string]any {
	return map[string]any{
		"s": m.Scripts,
		"c": m.Styles,
	}
}

// DecodeFields implements encoding.Decodable.
func (m *Manifest) DecodeFields(data map[string]any) error {
	var err error
	if m.Scripts, err = handleList(data["s"]); err != nil {
		return err
	}
	m.Styles, err = handleList(data["c"])
	return err
}

func handleList(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, ErrInvalidManifest
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, ErrInvalidManifest
		}
		out = append(out, s)
	}
	return out, nil
}

// EncodeManifest seals m into a token.
func EncodeManifest(enc *encoding.Encoder, m Manifest, sensitive bool) (string, error) {
	if enc == nil {
		return "", ErrNoEncoder
	}
	return enc.Encode(m, sensitive)
}

// DecodeManifest opens a token produced by EncodeManifest.
func DecodeManifest(enc *encoding.Encoder, token string, sensitive bool) (Manifest, error) {
	if enc == nil {
		return Manifest{}, ErrNoEncoder
	}
	var m Manifest
	if err := enc.Decode(token, sensitive, &m); err != nil {
		return Manifest{}, wrapEncodingError(err)
	}
	return m, nil
}

// ManifestToken returns the sealed manifest of this page.
func (a *Assets) ManifestToken() (string, error) {
	return EncodeManifest(a.encoder, a.Manifest(), a.sensitive)
}

// wrapEncodingError maps encoding errors to page sentinel errors.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrSignatureInvalid), errors.Is(err, encoding.ErrDecryptFailed):
		return ErrManifestTampered
	case errors.Is(err, encoding.ErrInvalidFormat), errors.Is(err, ErrInvalidManifest):
		return ErrInvalidManifest
	}
	return err
}
