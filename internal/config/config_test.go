package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "calendar.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, "CST", cfg.TimezoneAbbr.Standard)
	assert.Equal(t, 60, cfg.DefaultEventDuration)

	// The file was written and loads back identically.
	_, err = os.Stat(path)
	require.NoError(t, err)
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: America/Chicago\noutput_dir: /tmp/ics\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ics", cfg.OutputDir)
	assert.Equal(t, "CDT", cfg.TimezoneAbbr.Daylight)
	assert.NotEmpty(t, cfg.ProductID)
	assert.Equal(t, 60, cfg.DefaultEventDuration)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCoreMapping(t *testing.T) {
	cfg := DefaultConfig()
	core := cfg.Core()
	assert.Equal(t, cfg.Timezone, core.TimezoneID)
	assert.Equal(t, cfg.TimezoneAbbr.Standard, core.StandardAbbr)
	assert.Equal(t, cfg.TimezoneAbbr.Daylight, core.DaylightAbbr)
	assert.Equal(t, cfg.ProductID, core.ProductID)
	assert.Equal(t, cfg.DefaultEventDuration, core.DefaultDurationMinutes)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	cfg := DefaultConfig()
	cfg.OutputDir = "/srv/deadlines"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
