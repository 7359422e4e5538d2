package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// FlattenBundleParams contains parameters for flattening the bundle
type FlattenBundleParams struct {
	// MultiSend packs the calls into a single delegatecall to MultiSend
	MultiSend bool
}

// FlattenBundleResult contains the executable calls in order
type FlattenBundleResult struct {
	Calls []models.Call
	// Packed is the multiSend call when requested
	Packed    *models.Call
	MultiSend common.Address
	IDs       []string
}

// Dispatch returns the calls to hand to the dispatcher
func (r *FlattenBundleResult) Dispatch() []models.Call {
	if r.Packed != nil {
		return []models.Call{*r.Packed}
	}
	return r.Calls
}

// FlattenBundle encodes the stored bundle into executable calls
type FlattenBundle struct {
	config *config.RuntimeConfig
	repo   BundleRepository
	ids    *models.IDGenerator
}

// NewFlattenBundle creates a new FlattenBundle use case
func NewFlattenBundle(cfg *config.RuntimeConfig, repo BundleRepository, ids *models.IDGenerator) *FlattenBundle {
	return &FlattenBundle{config: cfg, repo: repo, ids: ids}
}

// Run executes the flatten bundle use case. It fails as a whole on the first
// call that does not encode.
func (uc *FlattenBundle) Run(ctx context.Context, params FlattenBundleParams) (*FlattenBundleResult, error) {
	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	calls, err := bundle.Flatten()
	if err != nil {
		return nil, err
	}

	result := &FlattenBundleResult{Calls: calls, IDs: bundle.IDs()}
	if !params.MultiSend {
		return result, nil
	}

	if len(calls) == 0 {
		return nil, fmt.Errorf("bundle is empty, nothing to pack")
	}
	addr := uc.config.Modules.MultiSendFor(uc.config.ChainID)
	if !common.IsHexAddress(addr) {
		return nil, fmt.Errorf("no MultiSend contract configured for chain %d: %w", uc.config.ChainID, domain.ErrInvalidAddress)
	}
	result.MultiSend = common.HexToAddress(addr)

	packed, err := models.PackMultiSend(result.MultiSend, calls)
	if err != nil {
		return nil, err
	}
	result.Packed = &packed
	return result, nil
}
