package config

import (
	"sort"
	"strconv"
)

// ParamSourceAccount marks a module parameter that is filled with the account
// address and never supplied by the user
const ParamSourceAccount = "account"

// DefaultSetupSignature is the initializer called on freshly deployed module proxies
const DefaultSetupSignature = "setUp(bytes initParams)"

// ModuleCatalog is the set of module types ztx knows how to attach, decoded
// from the embedded defaults merged with the project's ztx.toml
type ModuleCatalog struct {
	// MultiSend is the MultiSend contract used to pack a bundle into one call
	MultiSend string `toml:"multisend" json:"multisend,omitempty"`
	// ChainMultiSend overrides MultiSend per chain id
	ChainMultiSend map[string]string `toml:"multisend_chains" json:"multisendChains,omitempty"`

	Modules map[string]ModuleTypeConfig `toml:"modules" json:"modules"`
}

// ModuleTypeConfig declares one module type
type ModuleTypeConfig struct {
	Name        string                      `toml:"name" json:"name"`
	Description string                      `toml:"description" json:"description,omitempty"`
	Kind        string                      `toml:"kind" json:"kind"`
	Setup       string                      `toml:"setup" json:"setup,omitempty"`
	ReadMore    string                      `toml:"read_more" json:"readMore,omitempty"`
	Params      []ModuleParam               `toml:"params" json:"params"`
	Deployment  ModuleDeployment            `toml:"deployment" json:"deployment"`
	Chains      map[string]ModuleDeployment `toml:"chains" json:"chains,omitempty"`
}

// ModuleParam declares one configuration parameter of a module type
type ModuleParam struct {
	Name   string `toml:"name" json:"name"`
	Type   string `toml:"type" json:"type"`
	Label  string `toml:"label" json:"label,omitempty"`
	Source string `toml:"source" json:"source,omitempty"`
}

// Implicit reports whether the parameter is auto-populated from context
func (p ModuleParam) Implicit() bool {
	return p.Source != ""
}

// ModuleDeployment holds the deterministic deployment constants of a factory module
type ModuleDeployment struct {
	Factory      string `toml:"factory" json:"factory,omitempty"`
	Mastercopy   string `toml:"mastercopy" json:"mastercopy,omitempty"`
	InitCodeHash string `toml:"init_code_hash" json:"initCodeHash,omitempty"`
}

// merge returns d with the non-empty fields of override applied
func (d ModuleDeployment) merge(override ModuleDeployment) ModuleDeployment {
	if override.Factory != "" {
		d.Factory = override.Factory
	}
	if override.Mastercopy != "" {
		d.Mastercopy = override.Mastercopy
	}
	if override.InitCodeHash != "" {
		d.InitCodeHash = override.InitCodeHash
	}
	return d
}

// DeploymentFor returns the deployment constants for chainID, applying the
// chain override on top of the defaults
func (m ModuleTypeConfig) DeploymentFor(chainID uint64) ModuleDeployment {
	if override, ok := m.Chains[strconv.FormatUint(chainID, 10)]; ok {
		return m.Deployment.merge(override)
	}
	return m.Deployment
}

// Lookup returns the module type registered under name
func (c *ModuleCatalog) Lookup(name string) (ModuleTypeConfig, bool) {
	if c == nil {
		return ModuleTypeConfig{}, false
	}
	m, ok := c.Modules[name]
	if ok && m.Name == "" {
		m.Name = name
	}
	return m, ok
}

// Names returns the registered module type names in sorted order
func (c *ModuleCatalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Modules))
	for name := range c.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MultiSendFor returns the MultiSend address configured for chainID
func (c *ModuleCatalog) MultiSendFor(chainID uint64) string {
	if c == nil {
		return ""
	}
	if addr, ok := c.ChainMultiSend[strconv.FormatUint(chainID, 10)]; ok {
		return addr
	}
	return c.MultiSend
}

// Merge overlays other on top of c. A module type present in both is merged
// field by field: set fields of other win, and chain overrides are combined.
func (c *ModuleCatalog) Merge(other *ModuleCatalog) {
	if other == nil {
		return
	}
	if other.MultiSend != "" {
		c.MultiSend = other.MultiSend
	}
	for chain, addr := range other.ChainMultiSend {
		if c.ChainMultiSend == nil {
			c.ChainMultiSend = map[string]string{}
		}
		c.ChainMultiSend[chain] = addr
	}
	for name, m := range other.Modules {
		if c.Modules == nil {
			c.Modules = map[string]ModuleTypeConfig{}
		}
		if base, ok := c.Modules[name]; ok {
			m = base.overlay(m)
		}
		c.Modules[name] = m
	}
}

func (m ModuleTypeConfig) overlay(o ModuleTypeConfig) ModuleTypeConfig {
	if o.Name != "" {
		m.Name = o.Name
	}
	if o.Description != "" {
		m.Description = o.Description
	}
	if o.Kind != "" {
		m.Kind = o.Kind
	}
	if o.Setup != "" {
		m.Setup = o.Setup
	}
	if o.ReadMore != "" {
		m.ReadMore = o.ReadMore
	}
	if len(o.Params) > 0 {
		m.Params = o.Params
	}
	m.Deployment = m.Deployment.merge(o.Deployment)

	chains := make(map[string]ModuleDeployment, len(m.Chains)+len(o.Chains))
	for chain, d := range m.Chains {
		chains[chain] = d
	}
	for chain, d := range o.Chains {
		chains[chain] = chains[chain].merge(d)
	}
	if len(chains) > 0 {
		m.Chains = chains
	}
	return m
}
