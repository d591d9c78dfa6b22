package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"essaipanel/internal/app/browser"
	appcatalog "essaipanel/internal/app/catalog"
	"essaipanel/internal/domain"
	"essaipanel/internal/infra/catalog"
	"essaipanel/internal/infra/telemetry"
	"essaipanel/internal/ui/uiconfig"
)

// Application wires the loader, view state and observability.
type Application struct {
	ctx      context.Context
	settings uiconfig.Settings

	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  domain.Metrics
	health   *telemetry.HealthTracker
	loader   *catalog.Loader
	state    *browser.State
	watcher  *appcatalog.Watcher
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context  context.Context
	Settings uiconfig.Settings
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  domain.Metrics
	Health   *telemetry.HealthTracker
	Loader   *catalog.Loader
	State    *browser.State
	Watcher  *appcatalog.Watcher
}

// NewApplication constructs the application.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Application{
		ctx:      ctx,
		settings: opts.Settings,
		logger:   logger,
		registry: opts.Registry,
		metrics:  opts.Metrics,
		health:   opts.Health,
		loader:   opts.Loader,
		state:    opts.State,
		watcher:  opts.Watcher,
	}
}

func (a *Application) Context() context.Context { return a.ctx }

func (a *Application) Settings() uiconfig.Settings { return a.settings }

func (a *Application) Logger() *zap.Logger { return a.logger }

func (a *Application) Registry() *prometheus.Registry { return a.registry }

func (a *Application) Health() *telemetry.HealthTracker { return a.health }

func (a *Application) Loader() *catalog.Loader { return a.loader }

func (a *Application) State() *browser.State { return a.state }

// StartObservability serves /metrics and /healthz in the background when a
// listen address is configured.
func (a *Application) StartObservability() {
	addr := a.settings.Observability.ListenAddress
	if addr == "" {
		return
	}
	opts := telemetry.HTTPServerOptions{
		Addr:          addr,
		EnableMetrics: true,
		EnableHealthz: true,
		Health:        a.health,
		Registry:      a.registry,
	}
	go func() {
		if err := telemetry.StartHTTPServer(a.ctx, opts, a.logger); err != nil {
			a.logger.Warn("observability server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
}

// WatchChanges starts the local file watcher. It returns nil when watching
// is disabled or could not start; the browser then only reloads on request.
func (a *Application) WatchChanges() <-chan appcatalog.Change {
	if a.watcher == nil {
		return nil
	}
	changes, err := a.watcher.Watch(a.ctx)
	if err != nil {
		a.logger.Warn("local database watch unavailable",
			telemetry.EventField(telemetry.EventWatchFailure),
			telemetry.PathField(a.settings.LocalPath),
			zap.Error(err),
		)
		return nil
	}
	return changes
}

// LoadCurrent loads the configured startup source and applies it.
func (a *Application) LoadCurrent() domain.LoadResult {
	return a.state.Reload(a.ctx)
}
