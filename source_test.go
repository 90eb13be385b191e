package hxasset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceLiteral(t *testing.T) {
	s := Literal("/static/app.js")
	assert.False(t, s.IsProvider())
	assert.Equal(t, "/static/app.js", s.String())

	got, err := s.Resolve(context.Background(), NewScript("app-js", s, nil, "1"))
	require.NoError(t, err)
	assert.Equal(t, "/static/app.js", got)
}

func TestSourceZeroValue(t *testing.T) {
	var s Source
	got, err := s.Resolve(context.Background(), NewScript("x", s, nil, ""))
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.False(t, Provide(nil).IsProvider())
}

func TestSourceProviderReceivesAsset(t *testing.T) {
	var seen Asset
	calls := 0
	src := Provide(func(_ context.Context, a Asset) (string, error) {
		calls++
		seen = a
		return "/cdn/" + a.Handle() + ".css", nil
	})
	style := NewStyle("theme-css", src, nil, "2.0")

	assert.True(t, src.IsProvider())
	assert.Equal(t, "<provider>", src.String())

	got, err := style.Source().Resolve(context.Background(), style)
	require.NoError(t, err)
	assert.Equal(t, "/cdn/theme-css.css", got)
	assert.Equal(t, 1, calls)
	assert.Same(t, style, seen)
}

func TestSourceProviderError(t *testing.T) {
	boom := errors.New("boom")
	src := Provide(func(context.Context, Asset) (string, error) {
		return "", boom
	})
	script := NewScript("app-js", src, nil, "1")

	_, err := src.Resolve(context.Background(), script)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceProvider)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `script "app-js"`)
}
