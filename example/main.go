package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/pthm/hxasset"
	"github.com/pthm/hxasset/config"
	"github.com/pthm/hxasset/example/components"
	"github.com/pthm/hxasset/lib/encoding"
	"github.com/pthm/hxasset/page"
)

//go:embed static
var staticFiles embed.FS

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	assetsFile := flag.String("assets", "assets.yaml", "asset declarations")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := config.Load(context.Background(), *assetsFile)
	if err != nil {
		logger.Error("load assets", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid assets", "error", err)
		os.Exit(1)
	}

	// In production, use a real secret.
	enc, err := encoding.NewEncoder([]byte("example-key-must-be-32-bytes!!"))
	if err != nil {
		logger.Error("encoder", "error", err)
		os.Exit(1)
	}

	sessions := NewSessions()
	funcs := config.Funcs{
		Predicates: map[string]hxasset.Predicate{
			"logged_in": func(ctx context.Context) bool { return UserFrom(ctx) != nil },
		},
		Providers: map[string]hxasset.ProviderFunc{
			"theme": themeStylesheet,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/admin", handleAdmin)
	mux.HandleFunc("/chart", handleChart)
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		id := sessions.Login(r.URL.Query().Get("name"))
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookie); err == nil {
			sessions.Logout(c.Value)
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	site := page.Middleware(cfg.SetupFunc(funcs),
		page.WithManifestEncoder(enc, false),
		page.WithMiddlewareLogger(logger),
	)(mux)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.Error("static files", "error", err)
		os.Exit(1)
	}

	root := http.NewServeMux()
	root.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	root.Handle("/", sessions.Middleware(withTheme(site)))

	logger.Info("starting server", "addr", *addr)
	if err := http.ListenAndServe(*addr, root); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	name := ""
	if u := UserFrom(r.Context()); u != nil {
		name = u.Name
	}
	page.Render(w, r, components.Layout("Home", components.Home(name)))
}

func handleAdmin(w http.ResponseWriter, r *http.Request) {
	page.Render(w, r, components.Layout("Admin", components.Admin()))
}

// handleChart adds the chart script late; the fragment's partial output
// carries its tag.
func handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if reg := hxasset.FromContext(ctx); reg != nil {
		reg.Add(ctx, hxasset.NewScript("chart-js", hxasset.Literal("/static/chart.js"), []string{"htmx"}, "1.0"),
			hxasset.LocationFrontend)
	}
	page.Render(w, r, components.Chart([]int{3, 1, 4, 1, 5}))
}

type themeKey struct{}

// withTheme stores the theme cookie's value in the request context.
func withTheme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		theme := "light"
		if c, err := r.Cookie("theme"); err == nil && c.Value == "dark" {
			theme = "dark"
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), themeKey{}, theme)))
	})
}

func themeStylesheet(ctx context.Context, _ hxasset.Asset) (string, error) {
	theme, _ := ctx.Value(themeKey{}).(string)
	if theme == "" {
		theme = "light"
	}
	return "/static/theme-" + theme + ".css", nil
}
