package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxasset/page"
)

// Home is the public landing page. name is empty for visitors.
func Home(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<nav><a href="/">Home</a> <a href="/admin">Admin</a></nav><h1>Assets demo</h1>`)
		if name != "" {
			fmt.Fprintf(w, `<p data-user hidden>Signed in as %s. <a href="/logout">Sign out</a></p>`, templ.EscapeString(name))
		} else {
			io.WriteString(w, `<p><a href="/login?name=demo">Sign in</a></p>`)
		}
		_, err := io.WriteString(w, `<div id="chart"><button hx-get="/chart" hx-target="#chart">Load chart</button></div>`)
		return err
	})
}

// Admin is the backend dashboard.
func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<nav><a href="/">Site</a></nav><h1>Dashboard</h1>`)
		return err
	})
}

// Chart is an HTMX fragment. It carries the tags of any asset not yet
// loaded by the page.
func Chart(points []int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := page.Partial(ctx).Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<div class="chart" data-points="%v"></div>`, points)
		return err
	})
}
