package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("music_database: /srv/music\nvolume: 0.5\n"), 0o644))

	cmd := rootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--volume", "2", "--no-watch", "--theme", "forest"}))

	var f flags
	f.configPath, _ = cmd.Flags().GetString("config")
	f.volume, _ = cmd.Flags().GetFloat64("volume")
	f.noWatch, _ = cmd.Flags().GetBool("no-watch")
	f.theme, _ = cmd.Flags().GetString("theme")

	cfg, err := loadConfig(cmd, f, []string{dir})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.MusicDatabase)
	assert.Equal(t, 1.25, cfg.Volume)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "forest", cfg.Theme.Name)
}

func TestLoadConfigKeepsFileVolume(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("music_database: /srv/music\nvolume: 0.5\n"), 0o644))

	cmd := rootCmd()
	cfg, err := loadConfig(cmd, flags{configPath: cfgPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Volume)
	assert.Equal(t, "/srv/music", cfg.MusicDatabase)
	assert.True(t, cfg.Watch)
}

func TestLoadConfigRejectsUnknownTheme(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("music_database: /srv/music\n"), 0o644))

	_, err := loadConfig(rootCmd(), flags{configPath: cfgPath, theme: "neon"}, nil)
	assert.Error(t, err)
}
