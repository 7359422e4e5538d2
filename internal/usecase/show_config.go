package usecase

import (
	"context"

	"github.com/trebuchet-org/ztx/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool
	// Runtime is the effective configuration after flags and environment
	Runtime *config.RuntimeConfig
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	runtime *config.RuntimeConfig
	store   LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(runtime *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{
		runtime: runtime,
		store:   store,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:     cfg,
		ConfigPath: uc.store.GetPath(),
		Exists:     exists,
		Runtime:    uc.runtime,
	}, nil
}
