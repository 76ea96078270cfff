package app

import (
	"github.com/zkmochi/mochi-cli/internal/adapters/progress"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.DeploymentSelector
	Progress *progress.SpinnerSink

	// Use cases
	DeployContract   *usecase.DeployContract
	MintTokens       *usecase.MintTokens
	VerifyDeployment *usecase.VerifyDeployment
	ListDeployments  *usecase.ListDeployments
	ListNetworks     *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.DeploymentSelector,
	sink *progress.SpinnerSink,
	deployContract *usecase.DeployContract,
	mintTokens *usecase.MintTokens,
	verifyDeployment *usecase.VerifyDeployment,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:           cfg,
		Selector:         selector,
		Progress:         sink,
		DeployContract:   deployContract,
		MintTokens:       mintTokens,
		VerifyDeployment: verifyDeployment,
		ListDeployments:  listDeployments,
		ListNetworks:     listNetworks,
	}, nil
}
