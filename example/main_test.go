package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/config"
	"github.com/pthm/hxasset/page"
)

func newSite(t *testing.T, sessions *Sessions) http.Handler {
	t.Helper()
	cfg, err := config.Load(context.Background(), "assets.yaml")
	if err != nil {
		t.Fatal(err)
	}
	funcs := config.Funcs{
		Predicates: map[string]hxasset.Predicate{
			"logged_in": func(ctx context.Context) bool { return UserFrom(ctx) != nil },
		},
		Providers: map[string]hxasset.ProviderFunc{"theme": themeStylesheet},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/admin", handleAdmin)
	mux.HandleFunc("/chart", handleChart)
	return sessions.Middleware(withTheme(page.Middleware(cfg.SetupFunc(funcs))(mux)))
}

func get(h http.Handler, path string, cookies ...*http.Cookie) string {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestHomeAssets(t *testing.T) {
	sessions := NewSessions()
	site := newSite(t, sessions)

	body := get(site, "/")
	for _, want := range []string{
		`id="site-css-css" href="/static/site.css?ver=1.0"`,
		`id="theme-css-css" href="/static/theme-light.css?ver=1.0"`,
		`id="htmx-js" src="https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js?ver=2.0.4"`,
		`id="app-js-js"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %s", want)
		}
	}
	if strings.Contains(body, "account-js") || strings.Contains(body, "admin-css") {
		t.Error("visitor page has account or admin assets")
	}

	id := sessions.Login("ada")
	body = get(site, "/", &http.Cookie{Name: sessionCookie, Value: id}, &http.Cookie{Name: "theme", Value: "dark"})
	if !strings.Contains(body, `id="account-js-js"`) {
		t.Error("signed-in page missing account script")
	}
	if !strings.Contains(body, "/static/theme-dark.css") {
		t.Error("dark theme not applied")
	}
	if !strings.Contains(body, "Signed in as ada") {
		t.Error("user name not rendered")
	}
}

func TestAdminAssets(t *testing.T) {
	body := get(newSite(t, NewSessions()), "/admin")
	if !strings.Contains(body, `id="admin-css-css"`) || !strings.Contains(body, `id="admin-js-js"`) {
		t.Errorf("admin page missing backend assets: %s", body)
	}
	if strings.Contains(body, "app-js") {
		t.Error("admin page has frontend script")
	}
}

func TestChartFragment(t *testing.T) {
	body := get(newSite(t, NewSessions()), "/chart")
	if !strings.Contains(body, `<script id="chart-js-js" src="/static/chart.js?ver=1.0"></script>`) {
		t.Errorf("fragment missing chart script: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("fragment rendered a full document")
	}
}
