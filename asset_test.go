package hxasset

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScript(t *testing.T) {
	deps := []string{"htmx", "alpine"}
	s := NewScript("app-js", Literal("app.js"), deps, "1.0", InFooter())

	assert.Equal(t, "app-js", s.Handle())
	assert.Equal(t, "app.js", s.Source().String())
	assert.Equal(t, []string{"htmx", "alpine"}, s.Dependencies())
	assert.Equal(t, "1.0", s.Version())
	assert.Equal(t, KindScript, s.Kind())
	assert.True(t, s.InFooter())

	// Constructor copies its input.
	deps[0] = "changed"
	assert.Equal(t, "htmx", s.Dependencies()[0])

	// Accessor returns a copy.
	got := s.Dependencies()
	got[1] = "changed"
	assert.Equal(t, "alpine", s.Dependencies()[1])
}

func TestNewScriptDefaults(t *testing.T) {
	s := NewScript("", Literal(""), nil, VersionAuto)
	assert.False(t, s.InFooter())
	assert.Empty(t, s.Handle())
	assert.Empty(t, s.Dependencies())
}

func TestNewStyle(t *testing.T) {
	s := NewStyle("theme-css", Literal("theme.css"), []string{"base-css"}, "2.0", WithMedia(MediaPrint))
	assert.Equal(t, KindStyle, s.Kind())
	assert.Equal(t, MediaPrint, s.Media())

	d := NewStyle("base-css", Literal("base.css"), nil, "1")
	assert.Equal(t, MediaAll, d.Media())

	bad := NewStyle("x", Literal("x.css"), nil, "1", WithMedia("tv"))
	assert.Equal(t, MediaAll, bad.Media())
}

func TestAssetSetters(t *testing.T) {
	s := NewScript("app-js", Literal("app.js"), nil, "1")
	s.SetHandle("main-js")
	s.SetSource(Literal("main.js"))
	s.SetDependencies([]string{"htmx"})
	s.SetVersion("2")
	s.SetInFooter(true)

	assert.Equal(t, "main-js", s.Handle())
	assert.Equal(t, "main.js", s.Source().String())
	assert.Equal(t, []string{"htmx"}, s.Dependencies())
	assert.Equal(t, "2", s.Version())
	assert.True(t, s.InFooter())

	st := NewStyle("a", Literal("a.css"), nil, "1")
	st.SetMedia(MediaScreen)
	assert.Equal(t, MediaScreen, st.Media())
	st.SetMedia("bogus")
	assert.Equal(t, MediaScreen, st.Media())
}

func TestAssetString(t *testing.T) {
	s := NewScript("app-js", Literal("/app.js?a=1&b=2"), []string{"htmx", "alpine"}, "1.0")
	assert.Equal(t,
		`handle="app-js" src="/app.js?a=1&amp;b=2" dependencies="htmx,alpine" version="1.0" in_footer="false"`,
		s.String())

	st := NewStyle("theme-css", Literal("theme.css"), nil, "2", WithMedia(MediaPrint))
	assert.Equal(t,
		`handle="theme-css" src="theme.css" dependencies="" version="2" media="print"`,
		st.String())
}

func TestAssetLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("added", "asset", NewStyle("theme-css", Literal("theme.css"), nil, "2"))

	out := buf.String()
	for _, want := range []string{"asset.kind=style", "asset.handle=theme-css", "asset.media=all"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestAssetSealed(t *testing.T) {
	assets := []Asset{
		NewScript("a", Literal("a.js"), nil, "1"),
		NewStyle("a", Literal("a.css"), nil, "1"),
	}
	for _, a := range assets {
		switch v := a.(type) {
		case *Script:
			assert.Equal(t, KindScript, v.Kind())
		case *Style:
			assert.Equal(t, KindStyle, v.Kind())
		default:
			t.Fatalf("unexpected asset type %T", a)
		}
	}
}
