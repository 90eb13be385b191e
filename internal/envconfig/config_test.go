package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	t.Setenv("HXASSET_VERSION", `  "1.2.3" `)
	assert.Equal(t, "1.2.3", Var("HXASSET_VERSION"))
	assert.Equal(t, "1.2.3", DefaultVersion())
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
		"junk":  slog.LevelInfo,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("HXASSET_DEBUG", k)
			assert.Equal(t, v, LogLevel())
		})
	}
}

func TestDebug(t *testing.T) {
	t.Setenv("HXASSET_DEBUG", "1")
	assert.True(t, Debug())
	t.Setenv("HXASSET_DEBUG", "")
	assert.False(t, Debug())
}

func TestKey(t *testing.T) {
	t.Setenv("HXASSET_KEY", "")
	assert.Nil(t, Key())
	t.Setenv("HXASSET_KEY", "secret")
	assert.Equal(t, []byte("secret"), Key())
	assert.Equal(t, true, AsMap()["HXASSET_KEY"].Value)
}
