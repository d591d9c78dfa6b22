package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"essaipanel/internal/app/browser"
	appcatalog "essaipanel/internal/app/catalog"
	"essaipanel/internal/domain"
	"essaipanel/internal/infra/catalog"
	"essaipanel/internal/infra/telemetry"
	"essaipanel/internal/ui/uiconfig"
)

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewHealthTracker() *telemetry.HealthTracker {
	return telemetry.NewHealthTracker()
}

func NewFetcher(settings uiconfig.Settings) catalog.Fetcher {
	return catalog.NewSourceFetcher(settings.RequestTimeout)
}

func NewLoader(logger *zap.Logger, fetcher catalog.Fetcher, metrics domain.Metrics) *catalog.Loader {
	return catalog.NewLoader(logger, fetcher, metrics)
}

// NewBrowserState builds the view state. Every applied load is reported to
// the health tracker so /healthz follows what the user sees.
func NewBrowserState(
	settings uiconfig.Settings,
	loader *catalog.Loader,
	health *telemetry.HealthTracker,
	logger *zap.Logger,
) *browser.State {
	return browser.NewState(browser.Options{
		InitialSource: settings.Source,
		Sources:       settings.Sources(),
		Loader:        loader,
		Logger:        logger,
		OnApply:       health.Observe,
	})
}

// NewWatcher returns nil when local file watching is disabled.
func NewWatcher(settings uiconfig.Settings, logger *zap.Logger) *appcatalog.Watcher {
	if !settings.WatchLocal {
		return nil
	}
	return appcatalog.NewWatcher(logger, settings.LocalPath)
}
