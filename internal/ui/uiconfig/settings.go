package uiconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"essaipanel/internal/domain"
	"essaipanel/internal/infra/telemetry"
)

const envPrefix = "ESSAIPANEL"

// Settings is the resolved configuration shared by both binaries.
type Settings struct {
	Source         domain.SourceKind
	LocalPath      string
	RemoteURL      string
	RequestTimeout time.Duration
	WatchLocal     bool
	Log            LogSettings
	Observability  ObservabilitySettings
}

type LogSettings struct {
	Level  string
	Format string
	Path   string
}

type ObservabilitySettings struct {
	ListenAddress string
}

// Sources returns the concrete locations for both source kinds.
func (s Settings) Sources() domain.SourceSet {
	return domain.SourceSet{LocalPath: s.LocalPath, RemoteURL: s.RemoteURL}
}

// LogOptions converts the log section for telemetry.NewLogger.
func (s Settings) LogOptions() telemetry.LogOptions {
	return telemetry.LogOptions{Level: s.Log.Level, Format: s.Log.Format, Path: s.Log.Path}
}

type rawSettings struct {
	Source                string           `mapstructure:"source"`
	LocalPath             string           `mapstructure:"localPath"`
	RemoteURL             string           `mapstructure:"remoteURL"`
	RequestTimeoutSeconds int              `mapstructure:"requestTimeoutSeconds"`
	WatchLocal            bool             `mapstructure:"watchLocal"`
	Log                   rawLog           `mapstructure:"log"`
	Observability         rawObservability `mapstructure:"observability"`
}

type rawLog struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

type rawObservability struct {
	ListenAddress string `mapstructure:"listenAddress"`
}

func newSettingsViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setSettingsDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setSettingsDefaults(v *viper.Viper) {
	v.SetDefault("source", string(domain.DefaultSource))
	v.SetDefault("localPath", ResolveDefaultLocalPath())
	v.SetDefault("remoteURL", domain.DefaultRemoteURL)
	v.SetDefault("requestTimeoutSeconds", domain.DefaultRequestTimeoutSeconds)
	v.SetDefault("watchLocal", domain.DefaultWatchLocal)
	v.SetDefault("log.level", domain.DefaultLogLevel)
	v.SetDefault("log.format", domain.DefaultLogFormat)
	v.SetDefault("log.path", "")
	v.SetDefault("observability.listenAddress", "")
}

// Loader reads the optional settings file.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("settings")}
}

// Load resolves settings from defaults, the file at path and the
// environment. A missing file is not an error unless required is set.
func (l *Loader) Load(path string, required bool) (Settings, error) {
	v := newSettingsViper()

	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := l.readInto(v, path, data); err != nil {
				return Settings{}, err
			}
		case errors.Is(err, os.ErrNotExist) && !required:
			l.logger.Debug("settings file not found, using defaults", telemetry.PathField(path))
		default:
			return Settings{}, fmt.Errorf("read settings: %w", err)
		}
	}

	var raw rawSettings
	if err := v.Unmarshal(&raw); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return normalizeSettings(raw)
}

func (l *Loader) readInto(v *viper.Viper, path string, data []byte) error {
	if isTOML(path) {
		converted, err := tomlToYAML(data)
		if err != nil {
			return err
		}
		data = converted
	}

	expanded, missing, err := expandSettingsEnv(data)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		l.logger.Warn("missing environment variables in settings", telemetry.PathField(path), zap.Strings("missing", missing))
	}
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func tomlToYAML(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return out, nil
}

func normalizeSettings(raw rawSettings) (Settings, error) {
	var errs []string

	source, err := domain.ParseSourceKind(raw.Source)
	if err != nil {
		errs = append(errs, fmt.Sprintf("source must be local or online, got %q", raw.Source))
	}
	if raw.RequestTimeoutSeconds < 1 {
		errs = append(errs, "requestTimeoutSeconds must be >= 1")
	}
	if _, err := telemetry.ParseLevel(raw.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", raw.Log.Level))
	}
	format := strings.ToLower(strings.TrimSpace(raw.Log.Format))
	if format != telemetry.LogFormatConsole && format != telemetry.LogFormatJSON {
		errs = append(errs, fmt.Sprintf("log.format must be console or json, got %q", raw.Log.Format))
	}
	if strings.TrimSpace(raw.LocalPath) == "" {
		errs = append(errs, "localPath is required")
	}
	if err := domain.RemoteSource(strings.TrimSpace(raw.RemoteURL)).Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("remoteURL: %v", err))
	}

	if len(errs) > 0 {
		return Settings{}, fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return Settings{
		Source:         source,
		LocalPath:      strings.TrimSpace(raw.LocalPath),
		RemoteURL:      strings.TrimSpace(raw.RemoteURL),
		RequestTimeout: time.Duration(raw.RequestTimeoutSeconds) * time.Second,
		WatchLocal:     raw.WatchLocal,
		Log: LogSettings{
			Level:  strings.TrimSpace(raw.Log.Level),
			Format: format,
			Path:   strings.TrimSpace(raw.Log.Path),
		},
		Observability: ObservabilitySettings{
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
		},
	}, nil
}
