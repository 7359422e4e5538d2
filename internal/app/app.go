package app

import (
	"github.com/trebuchet-org/ztx/internal/adapters/blockchain"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	ListFunctions     *usecase.ListFunctions
	ValidateArguments *usecase.ValidateArguments
	ManageBundle      *usecase.ManageBundle
	FlattenBundle     *usecase.FlattenBundle
	ExportBundle      *usecase.ExportBundle
	PlanModule        *usecase.PlanModule
	AddCustomModule   *usecase.AddCustomModule
	ListModules       *usecase.ListModules
	ShowConfig        *usecase.ShowConfig
	SetConfig         *usecase.SetConfig
	RemoveConfig      *usecase.RemoveConfig

	// Adapters (the chain connection is closed when the command finishes)
	Chain *blockchain.CheckerAdapter
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	listFunctions *usecase.ListFunctions,
	validateArguments *usecase.ValidateArguments,
	manageBundle *usecase.ManageBundle,
	flattenBundle *usecase.FlattenBundle,
	exportBundle *usecase.ExportBundle,
	planModule *usecase.PlanModule,
	addCustomModule *usecase.AddCustomModule,
	listModules *usecase.ListModules,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
	chain *blockchain.CheckerAdapter,
) (*App, error) {
	return &App{
		Config:            cfg,
		ListFunctions:     listFunctions,
		ValidateArguments: validateArguments,
		ManageBundle:      manageBundle,
		FlattenBundle:     flattenBundle,
		ExportBundle:      exportBundle,
		PlanModule:        planModule,
		AddCustomModule:   addCustomModule,
		ListModules:       listModules,
		ShowConfig:        showConfig,
		SetConfig:         setConfig,
		RemoveConfig:      removeConfig,
		Chain:             chain,
	}, nil
}

// Close releases adapter resources
func (a *App) Close() {
	if a.Chain != nil {
		a.Chain.Close()
	}
}
