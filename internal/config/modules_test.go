package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
)

func TestLoadModuleCatalogDefaults(t *testing.T) {
	catalog, source, err := LoadModuleCatalog(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ModuleSourceEmbedded, source)
	assert.Equal(t, []string{"custom", "exit"}, catalog.Names())

	custom, err := modules.Resolve(catalog, "custom", 1)
	require.NoError(t, err)
	assert.Len(t, custom.Params, 1)

	// no mastercopy is shipped for the exit module
	_, err = modules.Resolve(catalog, "exit", 1)
	assert.Error(t, err)
}

func TestLoadModuleCatalogProjectOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ZTX_TEST_EXIT_MASTERCOPY", "0xCCCC000000000000000000000000000000000064")

	project := `
[modules.exit.deployment]
mastercopy = "0xCCCC000000000000000000000000000000000001"

[modules.exit.chains.100]
mastercopy = "${ZTX_TEST_EXIT_MASTERCOPY}"

[modules.roles]
kind = "factory"
description = "Role based access for module calls"

  [[modules.roles.params]]
  name = "owner"
  type = "address"
  source = "account"

  [modules.roles.deployment]
  factory = "0x00000000000DC7F163742Eb4aBEf650037b1f588"
  mastercopy = "0xCCCC000000000000000000000000000000000002"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFileName), []byte(project), 0644))

	catalog, source, err := LoadModuleCatalog(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ProjectFileName), source)
	assert.Equal(t, []string{"custom", "exit", "roles"}, catalog.Names())

	exit, err := modules.Resolve(catalog, "exit", 1)
	require.NoError(t, err)
	assert.Equal(t, "0x00000000000DC7F163742Eb4aBEf650037b1f588", exit.Deployment.Factory.Hex())
	assert.Equal(t, "0xCCCC000000000000000000000000000000000001", exit.Deployment.Mastercopy.Hex())
	require.Len(t, exit.Params, 2, "params are kept from the built-in entry")

	gnosis, err := modules.Resolve(catalog, "exit", 100)
	require.NoError(t, err)
	assert.Equal(t, "0xCCCC000000000000000000000000000000000064", gnosis.Deployment.Mastercopy.Hex())

	roles, ok := catalog.Lookup("roles")
	require.True(t, ok)
	assert.Equal(t, "roles", roles.Name)
}

func TestLoadModuleCatalogRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFileName), []byte("[modules.exit]\nmaster_copy = \"0x1\"\n"), 0644))

	_, _, err := LoadModuleCatalog(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "master_copy")
}

func TestLoadModuleCatalogRejectsBadTOML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFileName), []byte("[modules\n"), 0644))

	_, _, err := LoadModuleCatalog(root)
	assert.Error(t, err)
}
