package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/ztx/internal/adapters/abi"
	"github.com/trebuchet-org/ztx/internal/adapters/blockchain"
	"github.com/trebuchet-org/ztx/internal/adapters/fs"
	"github.com/trebuchet-org/ztx/internal/adapters/interactive"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// ProvideIDGenerator provides the wall clock call id generator shared by
// every use case of one invocation
func ProvideIDGenerator() *models.IDGenerator {
	return models.NewIDGenerator(nil)
}

// ProvidePlanner provides the module planner over the configured catalog
func ProvidePlanner(cfg *config.RuntimeConfig, checker modules.CodeChecker) *modules.Planner {
	return modules.NewPlanner(cfg.Modules, checker)
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewBundleStoreAdapter,
	wire.Bind(new(usecase.BundleRepository), new(*fs.BundleStoreAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.BatchWriter), new(*fs.FileWriterAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// ABISet provides interface loading
var ABISet = wire.NewSet(
	abi.NewInterfaceLoaderAdapter,
	wire.Bind(new(usecase.InterfaceLoader), new(*abi.InterfaceLoaderAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.FunctionSelector), new(*interactive.SelectorAdapter)),

	interactive.NewPrompterAdapter,
	wire.Bind(new(usecase.ArgumentPrompter), new(*interactive.PrompterAdapter)),

	interactive.NewReordererAdapter,
	wire.Bind(new(usecase.BundleReorderer), new(*interactive.ReordererAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(modules.CodeChecker), new(*blockchain.CheckerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	// Provider functions
	ProvideIDGenerator,
	ProvidePlanner,

	// Adapter sets
	FSSet,
	ABISet,
	InteractiveSet,
	BlockchainSet,
)
