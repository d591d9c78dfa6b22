package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw     string
		want    zapcore.Level
		wantErr bool
	}{
		{raw: "", want: zapcore.InfoLevel},
		{raw: "debug", want: zapcore.DebugLevel},
		{raw: " WARN ", want: zapcore.WarnLevel},
		{raw: "error", want: zapcore.ErrorLevel},
		{raw: "loud", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.raw)
		if tc.wantErr {
			require.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNewLogger_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "essaipanel.log")
	logger, err := NewLogger(LogOptions{Level: "info", Format: LogFormatJSON, Path: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("tool database loaded", RecordsField(3), SourceField("online"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "tool database loaded", entry["msg"])
	require.Equal(t, float64(3), entry[FieldRecords])
	require.Equal(t, "online", entry[FieldSource])
}

func TestNewLogger_Console(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := NewLogger(LogOptions{Format: "console", Path: path})
	require.NoError(t, err)
	logger.Warn("tool database unavailable")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "WARN")
	require.Contains(t, string(data), "tool database unavailable")
}

func TestNewLogger_InvalidOptions(t *testing.T) {
	_, err := NewLogger(LogOptions{Level: "loud"})
	require.Error(t, err)

	_, err = NewLogger(LogOptions{Format: "xml"})
	require.Error(t, err)
}
