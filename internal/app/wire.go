//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"essaipanel/internal/ui/uiconfig"
)

func InitializeApplication(ctx context.Context, settings uiconfig.Settings, logging LoggingConfig) (*Application, error) {
	wire.Build(AppSet)
	return nil, nil
}
