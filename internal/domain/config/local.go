package config

import "github.com/samber/lo"

// LocalConfig represents the local ztx configuration. Its keys are the
// viper keys, so the file doubles as a viper config source.
type LocalConfig struct {
	Account string `json:"account,omitempty"`
	ChainID uint64 `json:"chain_id,omitempty"`
	RPCURL  string `json:"rpc_url,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyAccount ConfigKey = "account"
	ConfigKeyChainID ConfigKey = "chain-id"
	ConfigKeyRPCURL  ConfigKey = "rpc-url"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyAccount,
		ConfigKeyChainID,
		ConfigKeyRPCURL,
	}
}

// configKeyAliases maps short and alternate spellings to their key
var configKeyAliases = map[string]ConfigKey{
	"safe":    ConfigKeyAccount,
	"chain":   ConfigKeyChainID,
	"chainid": ConfigKeyChainID,
	"rpc":     ConfigKeyRPCURL,
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	if lo.HasKey(configKeyAliases, key) {
		return true
	}
	return lo.Contains(ValidConfigKeys(), ConfigKey(key))
}

// NormalizeConfigKey normalizes a config key (e.g., "rpc" -> "rpc-url")
func NormalizeConfigKey(key string) ConfigKey {
	if alias, ok := configKeyAliases[key]; ok {
		return alias
	}
	return ConfigKey(key)
}
