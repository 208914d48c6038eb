package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000", cfg.ServerURL)
	require.Equal(t, 300*time.Millisecond, cfg.Debounce())
	require.Equal(t, 5, cfg.Search.PerCategoryLimit)
	require.True(t, cfg.UISettings.AutosaveOnExit)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
version = 1
server_url = "http://tracker.local:9000"

[search]
debounce_millis = 150
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://tracker.local:9000", cfg.ServerURL)
	require.Equal(t, 150*time.Millisecond, cfg.Debounce())
	// Unset fields fall back.
	require.Equal(t, 15*time.Second, cfg.Timeout())
	require.Equal(t, 30*time.Second, cfg.PollInterval())
	require.Equal(t, 5, cfg.Search.PerCategoryLimit)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_url = [broken"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.ServerURL = "http://tracker.local:9000"
	cfg.Search.DebounceMillis = 250
	cfg.UISettings.ShowFingerprints = true
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ServerURL, loaded.ServerURL)
	require.Equal(t, 250, loaded.Search.DebounceMillis)
	require.True(t, loaded.UISettings.ShowFingerprints)
}
