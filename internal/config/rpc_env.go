package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in RPC values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ChainRPCEnvVar is the conventional env var holding the RPC URL of a chain
// Example: 100 -> RPC_URL_100
func ChainRPCEnvVar(chainID uint64) string {
	return fmt.Sprintf("RPC_URL_%d", chainID)
}

// ResolveRPCURL expands a configured RPC URL. A pure ${VAR} reference must be
// set; other values are expanded in place. An empty value falls back to the
// chain's conventional env var, and stays empty when that is unset too.
func ResolveRPCURL(rawValue string, chainID uint64) (string, error) {
	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return os.Getenv(ChainRPCEnvVar(chainID)), nil
	}

	if name, ok := DetectEnvVar(rawValue); ok {
		value, set := os.LookupEnv(name)
		if !set || value == "" {
			return "", fmt.Errorf("rpc url references ${%s}, which is not set", name)
		}
		return value, nil
	}

	return os.ExpandEnv(rawValue), nil
}
