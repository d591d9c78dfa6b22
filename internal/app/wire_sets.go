//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogging,
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
)

var BrowserSet = wire.NewSet(
	NewFetcher,
	NewLoader,
	NewBrowserState,
	NewWatcher,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	BrowserSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
