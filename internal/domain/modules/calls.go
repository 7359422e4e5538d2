package modules

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// CustomModuleType is the catalog entry for enabling an arbitrary, already
// deployed module
const CustomModuleType = "custom"

// CustomModuleParam is the address parameter of CustomModuleType
const CustomModuleParam = "address"

// PendingCalls expresses the plan calls as bundle entries, in plan order and
// without ids. Each entry encodes to the matching call of plan.Calls.
func PendingCalls(plan *models.ModuleDeploymentPlan) []models.PendingCall {
	ref := &models.ModuleRef{Type: plan.ModuleType, Address: plan.ModuleAddress()}

	var calls []models.PendingCall
	if plan.Kind == models.ModuleKindFactory && !plan.AlreadyDeployed {
		calls = append(calls, pendingCall(DeployModuleSignature, plan.Factory, ref,
			abi.Text(plan.Mastercopy.Hex()),
			abi.Text(hexutil.Encode(plan.Initializer)),
			abi.Text(plan.SaltNonce.Big().String()),
		))
	}
	calls = append(calls, EnablePendingCall(plan.Account, ref))
	return calls
}

// EnablePendingCall is the enableModule call on account for module as a bundle entry
func EnablePendingCall(account common.Address, module *models.ModuleRef) models.PendingCall {
	return pendingCall(EnableModuleSignature, account, module, abi.Text(module.Address.Hex()))
}

func pendingCall(fn abi.FunctionSignature, to common.Address, module *models.ModuleRef, raws ...abi.Raw) models.PendingCall {
	values, _ := abi.ValidateAll(fn.Inputs, raws)
	m := *module
	return models.PendingCall{Function: fn, Args: values, To: to, Module: &m}
}
