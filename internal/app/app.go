package app

import (
	"log/slog"

	"github.com/trebuchet-org/tvk-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks

	deployer *blockchain.Deployer
}

// NewApp creates a new application instance with all use cases.
// deployer may be nil when the factory provider is not backed by an RPC connection.
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
	deployer *blockchain.Deployer,
) (*App, error) {
	for _, warning := range cfg.Warnings {
		log.Warn(warning)
	}

	return &App{
		Config:         cfg,
		Log:            log,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
		deployer:       deployer,
	}, nil
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.deployer != nil {
		a.deployer.Close()
	}
}
