//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters"
	"github.com/trebuchet-org/tvk-deploy/internal/config"
	"github.com/trebuchet-org/tvk-deploy/internal/logging"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance; logs go to logOutput
func InitApp(v *viper.Viper, sink usecase.ProgressSink, logOutput io.Writer) (*App, error) {
	wire.Build(
		config.ConfigSet,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
