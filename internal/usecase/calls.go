package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// functionResolver finds the function a call is built from
type functionResolver struct {
	loader   InterfaceLoader
	selector FunctionSelector
}

// resolve returns the function named by ref in the interface at interfaceRef.
// A full signature needs no interface. An empty ref asks the selector when
// interactive is set.
func (r functionResolver) resolve(ctx context.Context, interfaceRef, ref string, interactive bool) (abi.FunctionSignature, error) {
	if interfaceRef == "" {
		if !strings.Contains(ref, "(") {
			return abi.FunctionSignature{}, fmt.Errorf("an interface is required to select a function by name")
		}
		fn, err := abi.ParseSignature(ref)
		if err != nil {
			return abi.FunctionSignature{}, err
		}
		if !fn.IsMutating() {
			return abi.FunctionSignature{}, fmt.Errorf("function %s is read-only", fn.Canonical())
		}
		return fn, nil
	}

	iface, err := r.loader.LoadInterface(ctx, interfaceRef)
	if err != nil {
		return abi.FunctionSignature{}, err
	}

	if ref == "" {
		functions := iface.MutatingFunctions()
		if len(functions) == 0 {
			return abi.FunctionSignature{}, fmt.Errorf("%s has no state-changing functions", interfaceRef)
		}
		if !interactive || r.selector == nil {
			return abi.FunctionSignature{}, fmt.Errorf("a function is required in non-interactive mode")
		}
		return r.selector.SelectFunction(ctx, functions)
	}

	fn, ok := iface.FindFunction(ref)
	if !ok {
		return abi.FunctionSignature{}, fmt.Errorf("%w: function %q in %s", domain.ErrNotFound, ref, interfaceRef)
	}
	if !fn.IsMutating() {
		return abi.FunctionSignature{}, fmt.Errorf("function %s is read-only", fn.Canonical())
	}
	return fn, nil
}

// parseArgs turns command line literals into raws, padding missing trailing
// arguments with empty literals.
func parseArgs(fn abi.FunctionSignature, args []string) ([]abi.Raw, error) {
	if len(args) > len(fn.Inputs) {
		return nil, fmt.Errorf("%s takes %d arguments, got %d", fn.Canonical(), len(fn.Inputs), len(args))
	}
	raws := make([]abi.Raw, len(fn.Inputs))
	for i := range fn.Inputs {
		if i >= len(args) {
			raws[i] = abi.Text("")
			continue
		}
		raw, err := abi.ParseRaw(args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", inputName(fn, i), err)
		}
		raws[i] = raw
	}
	return raws, nil
}

// bindArgs validates raws against fn. When the values do not validate and a
// prompter is available, the user is asked to complete them.
func bindArgs(ctx context.Context, fn abi.FunctionSignature, raws []abi.Raw, prompter ArgumentPrompter) ([]abi.ParamValue, error) {
	values, ok := abi.ValidateAll(fn.Inputs, raws)
	if !ok && prompter != nil {
		prompted, err := prompter.PromptArguments(ctx, fn, raws)
		if err != nil {
			return nil, err
		}
		values, ok = abi.ValidateAll(fn.Inputs, prompted)
	}
	if !ok {
		return values, &domain.InvalidArgumentsError{Function: fn.Canonical(), Problems: argumentProblems(fn, values)}
	}
	return values, nil
}

func argumentProblems(fn abi.FunctionSignature, values []abi.ParamValue) []string {
	var problems []string
	for i, v := range values {
		problems = append(problems, v.Problems(inputName(fn, i))...)
	}
	if len(values) != len(fn.Inputs) {
		problems = append(problems, fmt.Sprintf("expected %d arguments, got %d", len(fn.Inputs), len(values)))
	}
	return problems
}

func inputName(fn abi.FunctionSignature, i int) string {
	if i < len(fn.Inputs) && fn.Inputs[i].Name != "" {
		return fn.Inputs[i].Name
	}
	return fmt.Sprintf("arg%d", i)
}

// resolveTarget picks the call target: an explicit address, the module the
// call belongs to, or the account.
func resolveTarget(to string, module *models.ModuleRef, account common.Address) (common.Address, error) {
	switch {
	case to != "":
		if !common.IsHexAddress(to) {
			return common.Address{}, fmt.Errorf("target %q: %w", to, domain.ErrInvalidAddress)
		}
		return common.HexToAddress(to), nil
	case module != nil:
		return module.Address, nil
	case account != (common.Address{}):
		return account, nil
	}
	return common.Address{}, fmt.Errorf("no call target: pass --to or configure an account: %w", domain.ErrNoAccount)
}

func rawsOf(values []abi.ParamValue) []abi.Raw {
	raws := make([]abi.Raw, len(values))
	for i, v := range values {
		raws[i] = v.Raw()
	}
	return raws
}
