package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/config"
)

const (
	// DataDirName is the per-project state directory
	DataDirName = ".ztx"
	// ProjectFileName is the optional project configuration holding the module catalog
	ProjectFileName = "ztx.toml"
	// DefaultBundleFile is the bundle file inside the data directory
	DefaultBundleFile = "bundle.json"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env values must be visible before viper resolves the environment
	loadEnvFiles(projectRoot)

	dataDir := filepath.Join(projectRoot, DataDirName)
	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        dataDir,
		ChainID:        v.GetUint64("chain_id"),
		BundlePath:     v.GetString("bundle"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
	}

	if account := strings.TrimSpace(v.GetString("account")); account != "" {
		if !common.IsHexAddress(account) {
			return nil, fmt.Errorf("account %q: %w", account, domain.ErrInvalidAddress)
		}
		cfg.Account = common.HexToAddress(account)
	}

	rpcURL, err := ResolveRPCURL(v.GetString("rpc_url"), cfg.ChainID)
	if err != nil {
		return nil, err
	}
	cfg.RPCURL = rpcURL

	if cfg.BundlePath == "" {
		cfg.BundlePath = filepath.Join(dataDir, DefaultBundleFile)
	} else if !filepath.IsAbs(cfg.BundlePath) {
		cfg.BundlePath = filepath.Join(projectRoot, cfg.BundlePath)
	}

	catalog, source, err := LoadModuleCatalog(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load module catalog: %w", err)
	}
	cfg.Modules = catalog
	cfg.ModuleSource = source

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first directory
// holding ztx.toml or a .ztx data directory. Without either, the current
// directory is the project root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range []string{ProjectFileName, DataDirName} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("ZTX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("chain_id", 1)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd.Flags())
		bindFlags(v, cmd.InheritedFlags())
	}

	return v
}

// bindFlags binds every flag under its snake_case key, so --chain-id,
// ZTX_CHAIN_ID and chain_id in config.local.json resolve to one setting
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})
}
