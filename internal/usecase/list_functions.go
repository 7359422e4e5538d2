package usecase

import (
	"context"

	"github.com/trebuchet-org/ztx/internal/domain/abi"
)

// ListFunctionsParams contains parameters for listing the functions of an interface
type ListFunctionsParams struct {
	InterfaceRef string
	// All includes pure and view functions
	All bool
}

// ListFunctionsResult contains the functions in declaration order
type ListFunctionsResult struct {
	InterfaceRef string
	Functions    []abi.FunctionSignature
	// Total is the number of functions in the interface, read-only ones included
	Total int
}

// ListFunctions lists the functions of a contract interface that can be bundled
type ListFunctions struct {
	loader InterfaceLoader
}

// NewListFunctions creates a new ListFunctions use case
func NewListFunctions(loader InterfaceLoader) *ListFunctions {
	return &ListFunctions{loader: loader}
}

// Run executes the list functions use case
func (uc *ListFunctions) Run(ctx context.Context, params ListFunctionsParams) (*ListFunctionsResult, error) {
	iface, err := uc.loader.LoadInterface(ctx, params.InterfaceRef)
	if err != nil {
		return nil, err
	}

	functions := iface.MutatingFunctions()
	if params.All {
		functions = iface.Functions
	}

	return &ListFunctionsResult{
		InterfaceRef: params.InterfaceRef,
		Functions:    functions,
		Total:        len(iface.Functions),
	}, nil
}
