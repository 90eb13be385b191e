package page

import (
	"net/http"

	"github.com/a-h/templ"
)

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. The middleware only trusts
// the manifest header on such requests.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
//
// Boosted navigations replace the body but keep the head, so their layouts
// usually render Partial instead of Head and Footer.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context, so page.Head and page.Footer find the page host:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    page.Render(w, r, layout())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}
