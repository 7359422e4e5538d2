package config

import (
	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Session context
	Account common.Address // zero when not configured
	ChainID uint64
	RPCURL  string

	// BundlePath is the file the session bundle is persisted to
	BundlePath string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format

	// Resolved configurations
	Modules      *ModuleCatalog
	ModuleSource string // "embedded" or the path of ztx.toml
}

// HasAccount reports whether an account address is configured
func (c *RuntimeConfig) HasAccount() bool {
	return c.Account != (common.Address{})
}
