package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PERUNDHU_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2, c.Matching.MaxDistance)
	require.Equal(t, 10, c.Matching.DuplicateWindowMinutes)
	require.Equal(t, "info", c.Logging.Level)
	require.Equal(t, "console", c.Logging.Format)
	require.NotEmpty(t, c.Database.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PERUNDHU_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PERUNDHU_MATCHING_DUPLICATE_WINDOW_MINUTES", "5")
	t.Setenv("PERUNDHU_LOGGING_LEVEL", "debug")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, c.Matching.DuplicateWindowMinutes)
	require.Equal(t, "debug", c.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[matching]\nmax_distance = 3\n"), 0o644))
	t.Setenv("PERUNDHU_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, c.Matching.MaxDistance)
	require.Equal(t, 10, c.Matching.DuplicateWindowMinutes)
}

func TestLoadRejectsNegativeWindow(t *testing.T) {
	t.Setenv("PERUNDHU_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PERUNDHU_MATCHING_DUPLICATE_WINDOW_MINUTES", "-1")

	_, err := Load()
	require.Error(t, err)
}
