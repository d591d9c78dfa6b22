package uiconfig

import (
	"os"
	"path/filepath"
	"strings"

	"essaipanel/internal/domain"
)

const (
	appDirName              = "essaipanel"
	defaultSettingsFileName = "settings.yaml"
	defaultLogFileName      = "essaipanel.log"
)

// ResolveConfigDir returns the per-user directory for settings and logs.
func ResolveConfigDir() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = dir
		}
	}
	if base == "" {
		base = "."
	}
	return filepath.Join(base, appDirName)
}

// ResolveDefaultPath returns the default settings file path.
func ResolveDefaultPath() string {
	return filepath.Join(ResolveConfigDir(), defaultSettingsFileName)
}

// ResolveDefaultLogPath returns the log file used by the terminal browser.
func ResolveDefaultLogPath() string {
	return filepath.Join(ResolveConfigDir(), defaultLogFileName)
}

// ResolveDefaultLocalPath places the local database next to the executable,
// falling back to the working directory.
func ResolveDefaultLocalPath() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), domain.DefaultLocalFileName)
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, domain.DefaultLocalFileName)
	}
	return domain.DefaultLocalFileName
}
