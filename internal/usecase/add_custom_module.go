package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/domain/modules"
)

// AddCustomModuleIDPrefix prefixes the ids of queued custom module calls
const AddCustomModuleIDPrefix = "add_module"

// AddCustomModuleParams contains parameters for attaching an already
// deployed module
type AddCustomModuleParams struct {
	Address string
	// ToBundle queues the enableModule call instead of planning it directly
	ToBundle bool
}

// AddCustomModuleResult contains either the direct plan or the queued call
type AddCustomModuleResult struct {
	Module     common.Address
	Plan       *models.ModuleDeploymentPlan
	Added      *models.PendingCall
	BundlePath string
}

// AddCustomModule enables a module given by address, either as a direct
// enable plan or as a pending enableModule call in the bundle
type AddCustomModule struct {
	config *config.RuntimeConfig
	plan   *PlanModule
	repo   BundleRepository
	ids    *models.IDGenerator
}

// NewAddCustomModule creates a new AddCustomModule use case
func NewAddCustomModule(cfg *config.RuntimeConfig, plan *PlanModule, repo BundleRepository, ids *models.IDGenerator) *AddCustomModule {
	return &AddCustomModule{config: cfg, plan: plan, repo: repo, ids: ids}
}

// Run executes the add custom module use case
func (uc *AddCustomModule) Run(ctx context.Context, params AddCustomModuleParams) (*AddCustomModuleResult, error) {
	v, ok := abi.Validate(abi.Address(), abi.Text(params.Address))
	if !ok {
		return nil, fmt.Errorf("module address %q: %s: %w", params.Address, v.Problem, domain.ErrInvalidAddress)
	}
	module := common.HexToAddress(v.Literal)

	if !params.ToBundle {
		planned, err := uc.plan.Run(ctx, PlanModuleParams{
			ModuleType: modules.CustomModuleType,
			Config:     map[string]string{modules.CustomModuleParam: module.Hex()},
		})
		if err != nil {
			return nil, err
		}
		return &AddCustomModuleResult{Module: module, Plan: planned.Plan}, nil
	}

	if !uc.config.HasAccount() {
		return nil, fmt.Errorf("enabling a module needs the account address: %w", domain.ErrNoAccount)
	}

	bundle, err := loadBundle(ctx, uc.repo, uc.ids)
	if err != nil {
		return nil, err
	}

	call := modules.EnablePendingCall(uc.config.Account, &models.ModuleRef{Type: modules.CustomModuleType, Address: module})
	call.ID = uc.ids.Next(AddCustomModuleIDPrefix)
	added, err := bundle.Add(call)
	if err != nil {
		return nil, err
	}

	if err := saveBundle(ctx, uc.repo, uc.config, bundle); err != nil {
		return nil, err
	}
	return &AddCustomModuleResult{Module: module, Added: &added, BundlePath: uc.repo.GetPath()}, nil
}
