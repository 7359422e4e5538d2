package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/ztx/internal/domain/config"
)

//go:embed modules.toml
var defaultModules string

// ModuleSourceEmbedded names the built-in catalog as a configuration source
const ModuleSourceEmbedded = "embedded"

// LoadModuleCatalog returns the built-in module catalog overlaid with the
// project's ztx.toml, when present, and the source it was read from.
func LoadModuleCatalog(projectRoot string) (*config.ModuleCatalog, string, error) {
	catalog, err := decodeCatalog(defaultModules, ModuleSourceEmbedded)
	if err != nil {
		return nil, "", err
	}

	projectPath := filepath.Join(projectRoot, ProjectFileName)
	data, err := os.ReadFile(projectPath)
	if os.IsNotExist(err) {
		return catalog, ModuleSourceEmbedded, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", ProjectFileName, err)
	}

	project, err := decodeCatalog(string(data), ProjectFileName)
	if err != nil {
		return nil, "", err
	}
	catalog.Merge(project)
	return catalog, projectPath, nil
}

func decodeCatalog(data, source string) (*config.ModuleCatalog, error) {
	var catalog config.ModuleCatalog
	md, err := toml.Decode(data, &catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("failed to parse %s: unknown keys %s", source, strings.Join(keys, ", "))
	}

	// Expand environment variables in deployment constants
	catalog.MultiSend = os.ExpandEnv(catalog.MultiSend)
	for chain, addr := range catalog.ChainMultiSend {
		catalog.ChainMultiSend[chain] = os.ExpandEnv(addr)
	}
	for name, m := range catalog.Modules {
		if m.Name == "" {
			m.Name = name
		}
		m.Deployment = expandDeployment(m.Deployment)
		for chain, d := range m.Chains {
			m.Chains[chain] = expandDeployment(d)
		}
		catalog.Modules[name] = m
	}
	return &catalog, nil
}

func expandDeployment(d config.ModuleDeployment) config.ModuleDeployment {
	d.Factory = os.ExpandEnv(d.Factory)
	d.Mastercopy = os.ExpandEnv(d.Mastercopy)
	d.InitCodeHash = os.ExpandEnv(d.InitCodeHash)
	return d
}
