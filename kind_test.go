package hxasset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"script", KindScript, false},
		{"style", KindStyle, false},
		{"Script", "", true},
		{"", "", true},
		{"font", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		want    Location
		wantErr bool
	}{
		{"frontend", LocationFrontend, false},
		{"backend", LocationBackend, false},
		{"admin", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocation(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMedia(t *testing.T) {
	tests := []struct {
		in      string
		want    Media
		wantErr bool
	}{
		{"", MediaAll, false},
		{"all", MediaAll, false},
		{"print", MediaPrint, false},
		{"screen", MediaScreen, false},
		{"tv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMedia(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{KindScript, KindStyle}, Kinds)
}
