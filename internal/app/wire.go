//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/zkmochi/mochi-cli/internal/adapters"
	"github.com/zkmochi/mochi-cli/internal/config"
	"github.com/zkmochi/mochi-cli/internal/logging"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunBatches,
		usecase.NewDeployContract,
		usecase.NewMintTokens,
		usecase.NewVerifyDeployment,
		usecase.NewListDeployments,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
