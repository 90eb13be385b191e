package page

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxasset"
)

// MetaManifest is the name of the <meta> tag carrying the manifest token.
const MetaManifest = "hxasset-manifest"

// URL returns the tag's source with the version appended as "ver".
func (t Tag) URL() string {
	if t.Version == "" {
		return t.Src
	}
	sep := "?"
	if strings.Contains(t.Src, "?") {
		sep = "&"
	}
	return t.Src + sep + "ver=" + url.QueryEscape(t.Version)
}

// Component renders the tag as a <script> or <link rel="stylesheet"> element.
func (t Tag) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, t.html())
		return err
	})
}

func (t Tag) html() string {
	var sb strings.Builder
	if t.Kind == hxasset.KindStyle {
		sb.WriteString(`<link rel="stylesheet" id="`)
		sb.WriteString(templ.EscapeString(t.Handle + "-css"))
		sb.WriteString(`" href="`)
		sb.WriteString(templ.EscapeString(t.URL()))
		sb.WriteString(`" media="`)
		sb.WriteString(templ.EscapeString(string(t.Media)))
		sb.WriteString(`">`)
		return sb.String()
	}
	sb.WriteString(`<script id="`)
	sb.WriteString(templ.EscapeString(t.Handle + "-js"))
	sb.WriteString(`" src="`)
	sb.WriteString(templ.EscapeString(t.URL()))
	sb.WriteString(`"></script>`)
	return sb.String()
}

// Head renders stylesheets, then scripts not placed in the footer, then the
// manifest <meta> tag when an encoder is configured. Each group is in
// dependency order.
func (a *Assets) Head() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a.fire(ctx)

		a.mu.Lock()
		tags := ordered(a.tags)
		a.mu.Unlock()

		for _, t := range tags {
			if t.Kind == hxasset.KindStyle {
				if _, err := io.WriteString(w, t.html()); err != nil {
					return err
				}
			}
		}
		for _, t := range tags {
			if t.Kind == hxasset.KindScript && !t.InFooter {
				if _, err := io.WriteString(w, t.html()); err != nil {
					return err
				}
			}
		}
		return a.writeMeta(ctx, w)
	})
}

// Footer renders scripts placed in the footer.
func (a *Assets) Footer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a.fire(ctx)

		a.mu.Lock()
		tags := ordered(a.tags)
		a.mu.Unlock()

		for _, t := range tags {
			if t.Kind == hxasset.KindScript && t.InFooter {
				if _, err := io.WriteString(w, t.html()); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Partial renders every tag not yet written by a previous Partial, styles
// first, followed by an out-of-band manifest update. Use it in fragments
// returned to HTMX requests, which have no head or footer of their own.
func (a *Assets) Partial() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		a.fire(ctx)

		a.mu.Lock()
		pending := ordered(a.tags[a.rendered:])
		a.rendered = len(a.tags)
		a.mu.Unlock()

		for _, kind := range []hxasset.Kind{hxasset.KindStyle, hxasset.KindScript} {
			for _, t := range pending {
				if t.Kind != kind {
					continue
				}
				if _, err := io.WriteString(w, t.html()); err != nil {
					return err
				}
			}
		}
		return a.writeMeta(ctx, w, `hx-swap-oob="true"`)
	})
}

func (a *Assets) writeMeta(ctx context.Context, w io.Writer, extra ...string) error {
	if a.encoder == nil {
		return nil
	}
	token, err := a.ManifestToken()
	if err != nil {
		a.logger.ErrorContext(ctx, "page: encode manifest", "error", err)
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`<meta name="` + MetaManifest + `" id="` + MetaManifest + `" content="`)
	sb.WriteString(templ.EscapeString(token))
	sb.WriteString(`"`)
	for _, e := range extra {
		sb.WriteString(" " + e)
	}
	sb.WriteString(`>`)
	_, err = io.WriteString(w, sb.String())
	return err
}
