package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"file in dir", filepath.Join("music", "album", "01 intro.mp3"), "01 intro.mp3"},
		{"directory with trailing separator", filepath.Join("music", "album") + string(filepath.Separator), "album"},
		{"bare name", "song.flac", "song.flac"},
		{"empty", "", ""},
		{"root", string(filepath.Separator), string(filepath.Separator)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.path))
		})
	}
}

func TestStemName(t *testing.T) {
	assert.Equal(t, "01 intro", StemName(filepath.Join("a", "01 intro.mp3")))
	assert.Equal(t, "noext", StemName("noext"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".cache"))
	assert.False(t, IsHidden("music"))
	assert.False(t, IsHidden(".."))
}

func TestSamePath(t *testing.T) {
	assert.True(t, SamePath("/music/a/", "/music/a"))
	assert.False(t, SamePath("/music/a", "/music/b"))
}
