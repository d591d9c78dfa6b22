package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"essaipanel/internal/app"
	"essaipanel/internal/domain"
	"essaipanel/internal/infra/telemetry"
	"essaipanel/internal/ui/uiconfig"
)

const metricsPrefix = "essaipanel_"

type cliOptions struct {
	configPath  string
	source      string
	localPath   string
	remoteURL   string
	format      string
	logLevel    string
	dumpMetrics bool
	settings    uiconfig.Settings
	logger      *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		configPath: uiconfig.ResolveDefaultPath(),
		format:     formatText,
		logLevel:   "warn",
		logger:     zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "essaictl",
		Short:         "Query the machine-shop tool database",
		Version:       fmt.Sprintf("%s (%s)", app.Version, app.Build),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return prepareOptions(cmd, &opts)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "settings file (yaml or toml)")
	root.PersistentFlags().StringVar(&opts.source, "source", "", "tool database source (local or online)")
	root.PersistentFlags().StringVar(&opts.localPath, "local-path", "", "local tool database file")
	root.PersistentFlags().StringVar(&opts.remoteURL, "remote-url", "", "online tool database url")
	root.PersistentFlags().StringVar(&opts.format, "format", opts.format, "output format: text, json, yaml or toml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "stderr log level")
	root.PersistentFlags().BoolVar(&opts.dumpMetrics, "dump-metrics", false, "print load metrics to stderr after the command")

	root.AddCommand(
		newListCmd(&opts),
		newShowCmd(&opts),
		newKeysCmd(&opts),
		newManufacturersCmd(&opts),
		newValidateCmd(&opts),
	)

	return root
}

func prepareOptions(cmd *cobra.Command, opts *cliOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(telemetry.LogOptions{
		Level:  opts.logLevel,
		Format: telemetry.LogFormatConsole,
	})
	if err != nil {
		return err
	}
	opts.logger = logger

	configRequired := cmd.Flags().Changed("config")
	settings, err := uiconfig.NewLoader(logger).Load(opts.configPath, configRequired)
	if err != nil {
		return err
	}
	opts.settings = settings
	return applyRootFlagBindings(cmd, opts)
}

// applyRootFlagBindings lets explicitly set flags override the settings file.
func applyRootFlagBindings(cmd *cobra.Command, opts *cliOptions) error {
	var bindErr error
	flags := cmd.Flags()
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "source":
			raw, _ := flags.GetString("source")
			kind, err := domain.ParseSourceKind(raw)
			if err != nil {
				bindErr = err
				return
			}
			opts.settings.Source = kind
		case "local-path":
			path, _ := flags.GetString("local-path")
			opts.settings.LocalPath = strings.TrimSpace(path)
		case "remote-url":
			rawURL, _ := flags.GetString("remote-url")
			opts.settings.RemoteURL = strings.TrimSpace(rawURL)
		}
	})
	return bindErr
}

// withSnapshot loads the configured source and hands the result to fn.
// The CLI never watches files or serves metrics over HTTP.
func withSnapshot(cmd *cobra.Command, opts *cliOptions, fn func(application *app.Application, result domain.LoadResult) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings := opts.settings
	settings.WatchLocal = false
	settings.Observability.ListenAddress = ""

	application, err := app.InitializeApplication(ctx, settings, app.LoggingConfig{Logger: opts.logger})
	if err != nil {
		return err
	}

	result := application.LoadCurrent()
	runErr := fn(application, result)
	if opts.dumpMetrics {
		if err := dumpMetrics(cmd.ErrOrStderr(), application); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// dumpMetrics writes only the essaipanel families; runtime collectors are
// left out.
func dumpMetrics(w io.Writer, application *app.Application) error {
	registry := application.Registry()
	gatherer := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := registry.Gather()
		if err != nil {
			return nil, err
		}
		filtered := families[:0]
		for _, family := range families {
			if strings.HasPrefix(family.GetName(), metricsPrefix) {
				filtered = append(filtered, family)
			}
		}
		return filtered, nil
	})
	return telemetry.DumpMetrics(w, gatherer)
}
