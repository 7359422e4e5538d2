package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// LocalConfigFileName is the local config file inside the data directory
const LocalConfigFileName = "config.local.json"

// LocalConfigStoreAdapter implements LocalConfigStore using the file system
type LocalConfigStoreAdapter struct {
	configPath string
}

// NewLocalConfigStoreAdapter creates a new LocalConfigStoreAdapter
func NewLocalConfigStoreAdapter(cfg *config.RuntimeConfig) *LocalConfigStoreAdapter {
	return &LocalConfigStoreAdapter{
		configPath: filepath.Join(cfg.DataDir, LocalConfigFileName),
	}
}

// Exists checks if the config file exists
func (s *LocalConfigStoreAdapter) Exists() bool {
	_, err := os.Stat(s.configPath)
	return !os.IsNotExist(err)
}

// Load reads the configuration from the file
func (s *LocalConfigStoreAdapter) Load(ctx context.Context) (*config.LocalConfig, error) {
	if !s.Exists() {
		return config.DefaultLocalConfig(), nil
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var localConfig config.LocalConfig
	if err := json.Unmarshal(data, &localConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &localConfig, nil
}

// Save writes the configuration to the file
func (s *LocalConfigStoreAdapter) Save(ctx context.Context, config *config.LocalConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return writeFileAtomic(s.configPath, data)
}

// GetPath returns the path to the config file
func (s *LocalConfigStoreAdapter) GetPath() string {
	return s.configPath
}

// Ensure the adapter implements the interface
var _ usecase.LocalConfigStore = (*LocalConfigStoreAdapter)(nil)
