package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// ValidateArgumentsParams contains parameters for checking call arguments
type ValidateArgumentsParams struct {
	InterfaceRef string
	Function     string
	Args         []string
}

// ValidateArgumentsResult reports the outcome of validation. Invalid
// arguments are a result, not an error.
type ValidateArgumentsResult struct {
	Function abi.FunctionSignature
	Values   []abi.ParamValue
	Valid    bool
	Problems []string
	// Calldata is set when every argument is valid
	Calldata hexutil.Bytes
}

// ValidateArguments validates literals against a function and encodes the
// calldata when they all pass
type ValidateArguments struct {
	functions functionResolver
}

// NewValidateArguments creates a new ValidateArguments use case
func NewValidateArguments(loader InterfaceLoader) *ValidateArguments {
	return &ValidateArguments{functions: functionResolver{loader: loader}}
}

// Run executes the validate arguments use case
func (uc *ValidateArguments) Run(ctx context.Context, params ValidateArgumentsParams) (*ValidateArgumentsResult, error) {
	fn, err := uc.functions.resolve(ctx, params.InterfaceRef, params.Function, false)
	if err != nil {
		return nil, err
	}

	raws, err := parseArgs(fn, params.Args)
	if err != nil {
		return nil, err
	}

	values, valid := abi.ValidateAll(fn.Inputs, raws)
	result := &ValidateArgumentsResult{
		Function: fn,
		Values:   values,
		Valid:    valid,
	}
	if !valid {
		result.Problems = argumentProblems(fn, values)
		return result, nil
	}

	if result.Calldata, err = abi.Encode(fn, values); err != nil {
		return nil, err
	}
	return result, nil
}
