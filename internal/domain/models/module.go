package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// ModuleKind is how a module type is attached to an account
type ModuleKind string

const (
	// ModuleKindDirect modules already exist and are only enabled
	ModuleKindDirect ModuleKind = "direct"
	// ModuleKindFactory modules are deployed as minimal proxies through a module factory
	ModuleKindFactory ModuleKind = "factory"
)

// ModuleDeploymentPlan describes the calls that attach one module to an account.
// Plans are value objects: recomputing from the same inputs yields an equal plan.
type ModuleDeploymentPlan struct {
	ModuleType string
	Kind       ModuleKind
	Account    common.Address
	ChainID    uint64

	// Params holds the validated configuration, including the implicit executor.
	Params []abi.Param
	Values []abi.ParamValue

	// Deterministic deployment fields, zero for direct modules.
	SaltNonce        common.Hash
	Salt             common.Hash
	Initializer      []byte
	Factory          common.Address
	Mastercopy       common.Address
	InitCodeHash     common.Hash
	PredictedAddress common.Address
	AlreadyDeployed  bool

	// Calls in execution order: the factory deployment, when needed, then the enable call.
	Calls []Call
}

// ModuleAddress is the address that gets enabled on the account.
func (p *ModuleDeploymentPlan) ModuleAddress() common.Address {
	return p.PredictedAddress
}

// PlanState is the state of a module planning session
type PlanState string

const (
	PlanStateUnconfigured PlanState = "unconfigured"
	PlanStateValidating   PlanState = "validating"
	PlanStatePlanned      PlanState = "planned"
	PlanStateRejected     PlanState = "rejected"
)
