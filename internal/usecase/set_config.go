package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store LocalConfigStore
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore) *SetConfig {
	return &SetConfig{
		store: store,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := normalizeKey(params.Key)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	value := strings.TrimSpace(params.Value)
	switch key {
	case config.ConfigKeyAccount:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("account %q: %w", value, domain.ErrInvalidAddress)
		}
		value = common.HexToAddress(value).Hex()
		cfg.Account = value
	case config.ConfigKeyChainID:
		chainID, err := strconv.ParseUint(value, 10, 64)
		if err != nil || chainID == 0 {
			return nil, fmt.Errorf("chain id %q: %w", value, domain.ErrInvalidChainID)
		}
		cfg.ChainID = chainID
	case config.ConfigKeyRPCURL:
		cfg.RPCURL = value
	}

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         value,
	}, nil
}

// normalizeKey validates and normalizes a user supplied config key
func normalizeKey(raw string) (config.ConfigKey, error) {
	key := strings.ToLower(raw)
	if !config.IsValidConfigKey(key) {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string { return string(k) })
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", raw, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
