package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/ztx/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

func orNotSet(s string) string {
	if s == "" {
		return faintStyle.Sprint("(not set)")
	}
	return s
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No .ztx/config.local.json file found\n")
	} else {
		fmt.Fprintln(r.out, "📋 Current config:")

		chainID := ""
		if result.Config.ChainID != 0 {
			chainID = fmt.Sprint(result.Config.ChainID)
		}
		fmt.Fprintf(r.out, "Account:  %s\n", orNotSet(result.Config.Account))
		fmt.Fprintf(r.out, "Chain ID: %s\n", orNotSet(chainID))
		fmt.Fprintf(r.out, "RPC URL:  %s\n", orNotSet(result.Config.RPCURL))
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	if rt := result.Runtime; rt != nil {
		account := ""
		if rt.HasAccount() {
			account = rt.Account.Hex()
		}
		fmt.Fprintln(r.out, "\n⚙️  Effective settings:")
		fmt.Fprintf(r.out, "Account:  %s\n", orNotSet(account))
		fmt.Fprintf(r.out, "Chain ID: %d\n", rt.ChainID)
		fmt.Fprintf(r.out, "RPC URL:  %s\n", orNotSet(rt.RPCURL))
		fmt.Fprintf(r.out, "Bundle:   %s\n", getRelativePath(rt.BundlePath))
		fmt.Fprintf(r.out, "\n📦 Module catalog: %s\n", rt.ModuleSource)
	}

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	fmt.Fprintf(r.out, "✅ Removed %s from config (was: %s)\n", result.Key, orNotSet(result.RemovedValue))
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
