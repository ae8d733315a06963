package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskman.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "taskman.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.CheckIntervalSeconds)
	assert.Equal(t, 30, cfg.UpcomingThresholdMinutes)
	assert.True(t, cfg.RemindersEnabled)

	// The file now exists and loads back identically.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskman.toml")
	content := `db_path = "custom.db"
check_interval_seconds = 5
upcoming_threshold_minutes = 45
reminders_enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.CheckIntervalSeconds)
	assert.Equal(t, 45, cfg.UpcomingThresholdMinutes)
	assert.False(t, cfg.RemindersEnabled)
}

func TestLoadOrCreateRejectsBadIntervals(t *testing.T) {
	dir := t.TempDir()

	badInterval := filepath.Join(dir, "a.toml")
	require.NoError(t, os.WriteFile(badInterval, []byte("check_interval_seconds = 0\n"), 0o644))
	_, err := LoadOrCreate(badInterval)
	require.Error(t, err)

	badThreshold := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(badThreshold, []byte("upcoming_threshold_minutes = -1\n"), 0o644))
	_, err = LoadOrCreate(badThreshold)
	require.Error(t, err)
}

func TestLoadOrCreateRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("db_path = \n"), 0o644))
	_, err := LoadOrCreate(path)
	require.Error(t, err)
}
