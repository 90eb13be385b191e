package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const site = "../../config/testdata/site"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HXASSET_KEY", "")
	t.Setenv("HXASSET_VERSION", "")
	t.Setenv("HXASSET_DEBUG", "")
	t.Setenv("HXASSET_LOG_FORMAT", "")

	var stdout, stderr bytes.Buffer
	cmd := NewCLI()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", site)
	require.NoError(t, err)
	assert.Equal(t, "7 declarations in 2 files ok\n", out)
}

func TestValidateInvalid(t *testing.T) {
	_, _, err := run(t, "validate", "../../config/testdata/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid asset declaration")
}

func TestValidateNeedsPath(t *testing.T) {
	_, _, err := run(t, "validate")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list", site)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{"KIND", "HANDLE", "LOCATION", "SOURCE", "VERSION", "DEPS", "FLAGS"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "provider:cdn")
	assert.Contains(t, out, "register-only")
	assert.Contains(t, out, "if=logged_in")
	assert.Contains(t, out, "media=print")
}

func TestListFiltered(t *testing.T) {
	out, _, err := run(t, "ls", site, "--kind", "style", "--location", "backend")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"style", "admin-css", "backend", "/static/admin.css", "-", "-", "media=screen"}, strings.Fields(lines[1]))
}

func TestListBadFlag(t *testing.T) {
	_, _, err := run(t, "list", site, "--kind", "font")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	out, _, err := run(t, "render", site, "--provide", "cdn=https://cdn.example.com/{handle}.css")
	require.NoError(t, err)

	want := `<!-- head -->
<link rel="stylesheet" id="base-css-css" href="/static/base.css?ver=1.0" media="all">` +
		`<link rel="stylesheet" id="theme-css-css" href="https://cdn.example.com/theme-css.css?ver=1.0" media="print">` +
		`<script id="htmx-js" src="/static/htmx.min.js?ver=2.0.4"></script>
<!-- footer -->
<script id="app-js-js" src="/static/app.js?ver=1.0"></script>
`
	assert.Equal(t, want, out)
}

func TestRenderEnableAndBackend(t *testing.T) {
	out, _, err := run(t, "render", site, "--enable", "logged_in")
	require.NoError(t, err)
	assert.Contains(t, out, `id="account-js-js"`)
	assert.NotContains(t, out, "theme-css", "unbound provider skips the asset")

	out, _, err = run(t, "render", site, "--location", "backend", "--default-version", "9")
	require.NoError(t, err)
	assert.Contains(t, out, `href="/static/admin.css?ver=9" media="screen"`)
	assert.Contains(t, out, `<script id="admin-js-js" src="/static/admin.js?ver=3"></script>`)
	assert.NotContains(t, out, "app-js")
}

func TestRenderBadProvide(t *testing.T) {
	_, _, err := run(t, "render", site, "--provide", "cdn")
	assert.ErrorContains(t, err, "NAME=VALUE")
}

func TestRenderSensitiveNeedsKey(t *testing.T) {
	_, _, err := run(t, "render", site, "--sensitive")
	assert.ErrorContains(t, err, "HXASSET_KEY")
}

func TestGenerateAndClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("x"), 0o644))

	out, _, err := run(t, "generate", dir, "--package", "static", "--footer")
	require.NoError(t, err)
	assert.Contains(t, out, "generating ")

	code, err := os.ReadFile(filepath.Join(dir, "assets_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "package static")
	assert.Contains(t, string(code), "hxasset.InFooter()")

	out, _, err = run(t, "clean", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "removing ")
	assert.NoFileExists(t, filepath.Join(dir, "assets_gen.go"))
}

func TestGenerateBadLocation(t *testing.T) {
	_, _, err := run(t, "generate", t.TempDir(), "--location", "sidebar")
	assert.Error(t, err)
}

func TestLogFlags(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "version")
	assert.ErrorContains(t, err, "unknown log level")

	_, _, err = run(t, "--log-format", "xml", "version")
	assert.ErrorContains(t, err, "unknown log format")

	_, stderr, err := run(t, "--log-level", "debug", "--log-format", "json", "validate", site)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"validated"`)
}

func TestEnvAndVersion(t *testing.T) {
	out, _, err := run(t, "env")
	require.NoError(t, err)
	assert.Contains(t, out, "HXASSET_DEBUG")
	assert.Contains(t, out, "HXASSET_KEY")

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hxasset version "+Version+"\n", out)
}
