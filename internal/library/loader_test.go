package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagLoaderUntaggedWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	writeWAV(t, path, 2)

	md, err := TagLoader{}.Load(path)
	require.NoError(t, err)

	assert.Empty(t, md.Artist)
	assert.Empty(t, md.Title)
	assert.Empty(t, md.Album)
	assert.InDelta(t, float64(2*time.Second), float64(md.Duration), float64(50*time.Millisecond))
}

func TestTagLoaderMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.mp3")

	_, err := TagLoader{}.Load(path)
	require.Error(t, err)

	var mdErr *MetadataError
	require.True(t, errors.As(err, &mdErr))
	assert.Equal(t, path, mdErr.Path)
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	sniffed := filepath.Join(dir, "track.bin")
	writeWAV(t, sniffed, 1)

	tests := []struct {
		path string
		want Format
	}{
		{"a.MP3", FormatMP3},
		{"a.flac", FormatFLAC},
		{"a.wav", FormatWAV},
		{"a.oga", FormatOGG},
		{"a.m4a", FormatMP4},
		{sniffed, FormatWAV},
		{filepath.Join(dir, "missing.xyz"), FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "3:05", FormatDuration(3*time.Minute+5*time.Second))
	assert.Equal(t, "0:00", FormatDuration(-time.Second))
}
