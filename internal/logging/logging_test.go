package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dirplay.log")

	logger, closeLog, err := Setup(path, "debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("component", "test").Debug("hello")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session start")
	assert.Contains(t, string(data), "component=test")
}

func TestSetupWithoutFile(t *testing.T) {
	logger, closeLog, err := Setup("", "info")
	require.NoError(t, err)
	defer closeLog()
	logger.Info("dropped")
}

func TestSetupUnwritableFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	logger, closeLog, err := Setup(filepath.Join(blocker, "dirplay.log"), "info")
	assert.Error(t, err)
	require.NotNil(t, logger)
	closeLog()
}

func TestSetupBadLevel(t *testing.T) {
	_, _, err := Setup("", "loud")
	assert.Error(t, err)
}
