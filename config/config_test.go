package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxasset"
)

func handlesOf(decls []Declaration) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.Handle)
	}
	return out
}

func TestLoadDirectory(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/site")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{
		filepath.Join("testdata", "site", "admin", "admin.hcl"),
		filepath.Join("testdata", "site", "assets.yaml"),
	}, cfg.Files)
	assert.Equal(t,
		[]string{"admin-js", "admin-css", "htmx", "app-js", "account-js", "base-css", "theme-css"},
		handlesOf(cfg.Declarations))
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/site/assets.yaml")
	require.NoError(t, err)

	byHandle := map[string]Declaration{}
	for _, d := range cfg.Declarations {
		byHandle[d.Handle] = d
	}

	htmx := byHandle["htmx"]
	assert.Equal(t, hxasset.KindScript, htmx.Kind)
	assert.Equal(t, "2.0.4", htmx.VersionString())
	assert.Equal(t, "frontend", htmx.Location)
	assert.True(t, htmx.RegisterOnly)

	app := byHandle["app-js"]
	assert.Equal(t, "1.0", app.VersionString())
	assert.True(t, app.InFooter)
	assert.Equal(t, []string{"htmx"}, app.Deps)

	base := byHandle["base-css"]
	assert.Equal(t, hxasset.KindStyle, base.Kind)
	assert.Equal(t, "all", base.Media)

	theme := byHandle["theme-css"]
	assert.Equal(t, "cdn", theme.Provider)
	assert.Equal(t, "provider:cdn", theme.Source())
	assert.Equal(t, "print", theme.Media)
	assert.Equal(t, "testdata/site/assets.yaml", theme.File)
}

func TestLoadHCL(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/site/admin/admin.hcl")
	require.NoError(t, err)
	require.Len(t, cfg.Declarations, 2)

	js := cfg.Declarations[0]
	assert.Equal(t, "admin-js", js.Handle)
	assert.Equal(t, hxasset.KindScript, js.Kind)
	assert.Equal(t, "backend", js.Location)
	assert.Equal(t, "3", js.VersionString())
	assert.True(t, js.InFooter)

	css := cfg.Declarations[1]
	assert.Equal(t, "screen", css.Media)
	assert.Equal(t, hxasset.VersionAuto, css.VersionString())
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Load(ctx, "testdata/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(ctx, "testdata/site/README.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(ctx, "testdata/unknown_key.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defer")

	_, err = Load(ctx, "testdata/unknown_block.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_block.hcl")
}

func TestLoadDeduplicatesPaths(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/site/assets.yaml", "testdata/site/assets.yaml")
	require.NoError(t, err)
	assert.Len(t, cfg.Files, 1)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Scripts)

	f, err = Parse("empty.hcl", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Styles)

	_, err = Parse("assets.json", []byte("{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/invalid.yaml")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDeclaration)
	assert.ErrorIs(t, err, ErrDuplicateHandle)

	msg := err.Error()
	for _, want := range []string{
		"missing handle",
		`"both": src and provider are mutually exclusive`,
		`"neither": one of src or provider is required`,
		`"where"`,
		`duplicate handle: testdata/invalid.yaml: script "dup"`,
		`"footer-media": media applies to styles only`,
		`"bad-media"`,
		`"footer-style": in_footer applies to scripts only`,
	} {
		assert.Contains(t, msg, want)
	}
	assert.Len(t, strings.Split(msg, "\n"), 8)
}

func TestValidateSameHandleDifferentScope(t *testing.T) {
	cfg := &Config{}
	cfg.merge("a.yaml", &File{
		Scripts: []Declaration{
			{Handle: "app", Src: "/app.js"},
			{Handle: "app", Src: "/app.js", Location: "backend"},
		},
		Styles: []Declaration{{Handle: "app", Src: "/app.css"}},
	})
	assert.NoError(t, cfg.Validate())
}

func TestFilter(t *testing.T) {
	cfg, err := Load(context.Background(), "testdata/site")
	require.NoError(t, err)

	assert.Equal(t, []string{"admin-css", "base-css", "theme-css"}, handlesOf(cfg.Filter(hxasset.KindStyle, "")))
	assert.Equal(t, []string{"admin-js", "admin-css"}, handlesOf(cfg.Filter("", hxasset.LocationBackend)))
	assert.Equal(t, []string{"htmx", "app-js", "account-js"},
		handlesOf(cfg.Filter(hxasset.KindScript, hxasset.LocationFrontend)))
	assert.Len(t, cfg.Filter("", ""), 7)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "testdata/site")
	require.NoError(t, err)

	loggedIn := false
	funcs := Funcs{
		Predicates: map[string]hxasset.Predicate{
			"logged_in": func(context.Context) bool { return loggedIn },
		},
		Providers: map[string]hxasset.ProviderFunc{
			"cdn": func(_ context.Context, a hxasset.Asset) (string, error) {
				return "https://cdn.example.com/" + a.Handle() + ".css", nil
			},
		},
	}

	rec := hxasset.NewRecordingHost()
	reg := hxasset.NewRegistry(rec.Host())
	require.NoError(t, cfg.Apply(ctx, reg, funcs))
	assert.Equal(t, 7, reg.Len())

	// Register-only entries are registered during Apply.
	assert.Equal(t, []string{"htmx"}, rec.Handles(hxasset.OpRegisterScript))

	_, err = reg.DispatchForContext(ctx, hxasset.LocationFrontend)
	require.NoError(t, err)
	assert.Equal(t, []string{"app-js"}, rec.Handles(hxasset.OpEnqueueScript))
	assert.Equal(t, []string{"base-css", "theme-css"}, rec.Handles(hxasset.OpEnqueueStyle))

	theme := rec.CallsFor(hxasset.OpEnqueueStyle)[1]
	assert.Equal(t, "https://cdn.example.com/theme-css.css", theme.Src)
	assert.Equal(t, hxasset.MediaPrint, theme.Media)
	assert.Equal(t, []string{"base-css"}, theme.Deps)

	rec.Reset()
	loggedIn = true
	_, err = reg.DispatchForContext(ctx, hxasset.LocationFrontend)
	require.NoError(t, err)
	assert.Equal(t, []string{"app-js", "account-js"}, rec.Handles(hxasset.OpEnqueueScript))

	rec.Reset()
	_, err = reg.DispatchForContext(ctx, hxasset.LocationBackend)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin-js"}, rec.Handles(hxasset.OpEnqueueScript))
	assert.True(t, rec.CallsFor(hxasset.OpEnqueueScript)[0].InFooter)
	assert.Equal(t, hxasset.MediaScreen, rec.CallsFor(hxasset.OpEnqueueStyle)[0].Media)
}

func TestApplyUnknownFuncAddsNothing(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "testdata/site/assets.yaml")
	require.NoError(t, err)

	reg := hxasset.NewRegistry(hxasset.Host{})
	err = cfg.Apply(ctx, reg, Funcs{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFunc)
	assert.Contains(t, err.Error(), `predicate "logged_in"`)
	assert.Contains(t, err.Error(), `provider "cdn"`)
	assert.Zero(t, reg.Len())
}

func TestApplyInvalidAddsNothing(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "testdata/invalid.yaml")
	require.NoError(t, err)

	reg := hxasset.NewRegistry(hxasset.Host{})
	err = cfg.Apply(ctx, reg, Funcs{})
	assert.True(t, errors.Is(err, ErrInvalidDeclaration))
	assert.Zero(t, reg.Len())
}

func TestSetupFunc(t *testing.T) {
	ctx := context.Background()
	cfg, err := Load(ctx, "testdata/site/admin")
	require.NoError(t, err)

	reg := hxasset.NewRegistry(hxasset.Host{})
	require.NoError(t, cfg.SetupFunc(Funcs{})(ctx, reg))
	assert.Equal(t, 2, reg.Len())
}

func TestFuncNames(t *testing.T) {
	f := Funcs{
		Predicates: map[string]hxasset.Predicate{"b": nil, "a": nil},
		Providers:  map[string]hxasset.ProviderFunc{"cdn": nil},
	}
	assert.Equal(t, []string{"a", "b"}, f.PredicateNames())
	assert.Equal(t, []string{"cdn"}, f.ProviderNames())
}
