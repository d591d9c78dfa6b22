package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaipanel/internal/domain"
	"essaipanel/internal/ui/uiconfig"
)

func TestResolveSettings_FlagsOverrideFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("source: online\nwatchLocal: true\nlog:\n  level: debug\n"), 0o600))

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", settingsPath,
		"--source", "local",
		"--local-path", "/tmp/tools.txt",
		"--metrics-addr", "127.0.0.1:9191",
		"--no-watch",
	}))


	settings, err := resolveSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, settings.Source)
	assert.Equal(t, "/tmp/tools.txt", settings.LocalPath)
	assert.Equal(t, "127.0.0.1:9191", settings.Observability.ListenAddress)
	assert.False(t, settings.WatchLocal)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, filepath.Join(configDir, "essaipanel", "essaipanel.log"), settings.Log.Path)
}

func TestResolveSettings_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	settings, err := resolveSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceOnline, settings.Source)
	assert.Equal(t, uiconfig.ResolveDefaultLogPath(), settings.Log.Path)
}

func TestResolveSettings_RequiredConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", missing}))

	_, err := resolveSettings(cmd)
	require.Error(t, err)
}

func TestResolveSettings_InvalidSource(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--source", "ftp"}))

	_, err := resolveSettings(cmd)
	require.ErrorIs(t, err, domain.ErrInvalidSource)
}
