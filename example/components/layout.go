// Package components renders the example site's pages.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxasset/page"
)

// Layout wraps body in a full HTML document. Asset tags come from the
// request's page host.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
		io.WriteString(w, templ.EscapeString(title))
		io.WriteString(w, `</title>`)
		if err := page.Head(ctx).Render(ctx, w); err != nil {
			return err
		}
		io.WriteString(w, `</head><body>`)
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if err := page.Footer(ctx).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
