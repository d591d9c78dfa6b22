package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"essaipanel/internal/app"
	"essaipanel/internal/domain"
	"essaipanel/internal/infra/telemetry"
	"essaipanel/internal/ui/tui"
	"essaipanel/internal/ui/uiconfig"
)

type panelOptions struct {
	configPath  string
	source      string
	localPath   string
	remoteURL   string
	metricsAddr string
	logPath     string
	logLevel    string
	noWatch     bool
}

func newRootCmd() *cobra.Command {
	opts := panelOptions{
		configPath: uiconfig.ResolveDefaultPath(),
	}

	root := &cobra.Command{
		Use:           "essaipanel",
		Short:         "Browse the machine-shop tool database in the terminal",
		Version:       fmt.Sprintf("%s (%s)", app.Version, app.Build),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()
			return run(ctx, settings)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", opts.configPath, "settings file (yaml or toml)")
	flags.StringVar(&opts.source, "source", "", "startup source (local or online)")
	flags.StringVar(&opts.localPath, "local-path", "", "local tool database file")
	flags.StringVar(&opts.remoteURL, "remote-url", "", "online tool database url")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	flags.StringVar(&opts.logPath, "log-file", "", "log file (defaults to essaipanel.log in the config directory)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level")
	flags.BoolVar(&opts.noWatch, "no-watch", false, "do not reload when the local database file changes")

	return root
}

// resolveSettings reads the settings file and lets explicitly set flags
// override it.
func resolveSettings(cmd *cobra.Command) (uiconfig.Settings, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	settings, err := uiconfig.NewLoader(nil).Load(configPath, flags.Changed("config"))
	if err != nil {
		return uiconfig.Settings{}, err
	}

	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		value := strings.TrimSpace(f.Value.String())
		switch f.Name {
		case "source":
			kind, err := domain.ParseSourceKind(value)
			if err != nil {
				bindErr = err
				return
			}
			settings.Source = kind
		case "local-path":
			settings.LocalPath = value
		case "remote-url":
			settings.RemoteURL = value
		case "metrics-addr":
			settings.Observability.ListenAddress = value
		case "log-file":
			settings.Log.Path = value
		case "log-level":
			settings.Log.Level = value
		case "no-watch":
			noWatch, _ := flags.GetBool("no-watch")
			settings.WatchLocal = !noWatch
		}
	})
	if bindErr != nil {
		return uiconfig.Settings{}, bindErr
	}

	// The terminal belongs to the browser, so logs always go to a file.
	if settings.Log.Path == "" {
		settings.Log.Path = uiconfig.ResolveDefaultLogPath()
	}
	return settings, nil
}

func run(ctx context.Context, settings uiconfig.Settings) error {
	logger, err := telemetry.NewLogger(settings.LogOptions())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	application, err := app.InitializeApplication(ctx, settings, app.LoggingConfig{Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("starting tool browser",
		telemetry.SourceField(string(settings.Source)),
		telemetry.PathField(settings.LocalPath),
		telemetry.URLField(settings.RemoteURL),
	)

	application.StartObservability()
	model := tui.New(tui.Options{
		Context: ctx,
		State:   application.State(),
		Changes: application.WatchChanges(),
		Logger:  application.Logger(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("tool browser interrupted")
			return nil
		}
		logger.Error("tool browser failed", zap.Error(err))
		return err
	}
	return nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
