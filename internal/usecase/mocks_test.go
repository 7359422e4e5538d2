package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

var (
	testAccount  = common.HexToAddress("0xaaaa000000000000000000000000000000000001")
	testToken    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testTarget   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testModule   = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testFactory  = common.HexToAddress("0x00000000000DC7F163742Eb4aBEf650037b1f588")
	testMaster   = common.HexToAddress("0x4444444444444444444444444444444444444444")
	testMultiSnd = common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D")
)

const tokenInterface = `
function transfer(address to, uint256 amount)
function approve(address spender, uint256 amount) returns (bool)
function balanceOf(address owner) view returns (uint256)
`

// fixedClock makes generated ids predictable
var fixedClock = func() time.Time { return time.UnixMilli(1700000000000) }

// MockInterfaceLoader is a mock implementation of InterfaceLoader
type MockInterfaceLoader struct {
	mock.Mock
}

func (m *MockInterfaceLoader) LoadInterface(ctx context.Context, ref string) (*abi.Interface, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*abi.Interface), args.Error(1)
}

// MockFunctionSelector is a mock implementation of FunctionSelector
type MockFunctionSelector struct {
	mock.Mock
}

func (m *MockFunctionSelector) SelectFunction(ctx context.Context, functions []abi.FunctionSignature) (abi.FunctionSignature, error) {
	args := m.Called(ctx, functions)
	return args.Get(0).(abi.FunctionSignature), args.Error(1)
}

// MockArgumentPrompter is a mock implementation of ArgumentPrompter
type MockArgumentPrompter struct {
	mock.Mock
}

func (m *MockArgumentPrompter) PromptArguments(ctx context.Context, fn abi.FunctionSignature, current []abi.Raw) ([]abi.Raw, error) {
	args := m.Called(ctx, fn, current)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]abi.Raw), args.Error(1)
}

// MockBundleReorderer is a mock implementation of BundleReorderer
type MockBundleReorderer struct {
	mock.Mock
}

func (m *MockBundleReorderer) Reorder(ctx context.Context, calls []models.PendingCall) ([]string, error) {
	args := m.Called(ctx, calls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCodeChecker is a mock implementation of modules.CodeChecker
type MockCodeChecker struct {
	mock.Mock
}

func (m *MockCodeChecker) HasCode(ctx context.Context, address common.Address) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

// memoryBundleRepo keeps the bundle file in memory
type memoryBundleRepo struct {
	file  *models.BundleFile
	saves int
}

func (r *memoryBundleRepo) Load(ctx context.Context) (*models.BundleFile, error) {
	if r.file == nil {
		return &models.BundleFile{Version: models.BundleFileVersion}, nil
	}
	return r.file, nil
}

func (r *memoryBundleRepo) Save(ctx context.Context, file *models.BundleFile) error {
	r.file = file
	r.saves++
	return nil
}

func (r *memoryBundleRepo) GetPath() string { return "/project/.ztx/bundle.json" }

func (r *memoryBundleRepo) ids() []string {
	if r.file == nil {
		return nil
	}
	out := make([]string, len(r.file.Calls))
	for i, c := range r.file.Calls {
		out[i] = c.ID
	}
	return out
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

// MockLocalConfigStore is a mock implementation of LocalConfigStore
type MockLocalConfigStore struct {
	mock.Mock
}

func (m *MockLocalConfigStore) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockLocalConfigStore) Load(ctx context.Context) (*config.LocalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.LocalConfig), args.Error(1)
}

func (m *MockLocalConfigStore) Save(ctx context.Context, cfg *config.LocalConfig) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockLocalConfigStore) GetPath() string {
	return m.Called().String(0)
}

func parseTokenInterface(t *testing.T) *abi.Interface {
	t.Helper()
	iface, err := abi.ParseHumanReadable(tokenInterface)
	require.NoError(t, err)
	return iface
}

func testCatalog() *config.ModuleCatalog {
	return &config.ModuleCatalog{
		MultiSend: testMultiSnd.Hex(),
		Modules: map[string]config.ModuleTypeConfig{
			"custom": {
				Description: "Enable a module that is already deployed",
				Kind:        "direct",
				Params:      []config.ModuleParam{{Name: "address", Type: "address"}},
			},
			"exit": {
				Kind: "factory",
				Params: []config.ModuleParam{
					{Name: "executor", Type: "address", Source: config.ParamSourceAccount},
					{Name: "tokenContract", Type: "address"},
				},
				Deployment: config.ModuleDeployment{
					Factory:    testFactory.Hex(),
					Mastercopy: testMaster.Hex(),
				},
			},
			"orphan": {
				Kind:   "factory",
				Params: []config.ModuleParam{{Name: "owner", Type: "address"}},
			},
		},
	}
}

func testRuntime() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot:  "/project",
		DataDir:      "/project/.ztx",
		Account:      testAccount,
		ChainID:      1,
		Modules:      testCatalog(),
		ModuleSource: "embedded",
	}
}
