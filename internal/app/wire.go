//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ztx/internal/adapters"
	"github.com/trebuchet-org/ztx/internal/config"
	"github.com/trebuchet-org/ztx/internal/logging"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Runtime config
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewListFunctions,
		usecase.NewValidateArguments,
		usecase.NewManageBundle,
		usecase.NewFlattenBundle,
		usecase.NewExportBundle,
		usecase.NewPlanModule,
		usecase.NewAddCustomModule,
		usecase.NewListModules,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
