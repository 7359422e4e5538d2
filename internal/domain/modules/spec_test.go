package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

func TestResolve(t *testing.T) {
	spec, err := Resolve(testCatalog(), "exit", 1)
	require.NoError(t, err)

	assert.Equal(t, "exit", spec.Name)
	assert.Equal(t, models.ModuleKindFactory, spec.Kind)
	assert.Equal(t, "setUp(bytes)", spec.Setup.Canonical())
	assert.True(t, spec.IsImplicit("executor"))
	require.Len(t, spec.UserParams(), 1)
	assert.Equal(t, "tokenContract", spec.UserParams()[0].Name)
	assert.Equal(t, factory, spec.Deployment.Factory)
	assert.Equal(t, mastercopy, spec.Deployment.Mastercopy)
}

func TestResolveRejectsBadCatalogEntries(t *testing.T) {
	tests := map[string]config.ModuleTypeConfig{
		"unknown kind": {Kind: "proxy", Params: []config.ModuleParam{{Name: "a", Type: "address"}}},
		"bad type":     {Kind: "direct", Params: []config.ModuleParam{{Name: "a", Type: "addr"}}},
		"direct with two params": {Kind: "direct", Params: []config.ModuleParam{
			{Name: "a", Type: "address"}, {Name: "b", Type: "address"},
		}},
		"direct with uint": {Kind: "direct", Params: []config.ModuleParam{{Name: "a", Type: "uint256"}}},
		"unknown source": {Kind: "factory", Params: []config.ModuleParam{
			{Name: "a", Type: "address", Source: "wallet"},
		}},
		"account source on uint": {Kind: "factory", Params: []config.ModuleParam{
			{Name: "a", Type: "uint256", Source: config.ParamSourceAccount},
		}},
		"setup without bytes": {Kind: "factory", Setup: "setUp(address)", Deployment: config.ModuleDeployment{
			Factory: factory.Hex(), Mastercopy: mastercopy.Hex(),
		}},
		"bad factory": {Kind: "factory", Deployment: config.ModuleDeployment{
			Factory: "0x123", Mastercopy: mastercopy.Hex(),
		}},
		"bad init code hash": {Kind: "factory", Deployment: config.ModuleDeployment{
			Factory: factory.Hex(), Mastercopy: mastercopy.Hex(), InitCodeHash: "0x1234",
		}},
	}

	for name, mc := range tests {
		t.Run(name, func(t *testing.T) {
			catalog := &config.ModuleCatalog{Modules: map[string]config.ModuleTypeConfig{"m": mc}}
			_, err := Resolve(catalog, "m", 1)
			require.Error(t, err)
			assert.NotErrorIs(t, err, domain.ErrUnsupportedModuleType)
		})
	}
}
