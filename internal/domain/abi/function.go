package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Mutability is a function's state mutability annotation.
type Mutability string

const (
	Pure       Mutability = "pure"
	View       Mutability = "view"
	NonPayable Mutability = "nonpayable"
	Payable    Mutability = "payable"
)

// FunctionSignature is an immutable function description parsed from an interface.
type FunctionSignature struct {
	Name       string
	Inputs     []Param
	Outputs    []Param
	Mutability Mutability
}

// IsMutating reports whether calling the function can change state.
func (f FunctionSignature) IsMutating() bool {
	return f.Mutability != Pure && f.Mutability != View
}

// Canonical returns the text hashed into the selector, e.g. "transfer(address,uint256)".
func (f FunctionSignature) Canonical() string {
	parts := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		parts[i] = in.Type.Canonical()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// Full returns the human-readable fragment including parameter names and mutability.
// ParseSignature(f.Full()) yields a signature equal to f.
func (f FunctionSignature) Full() string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(f.Name)
	b.WriteString(joinParams(f.Inputs))
	switch f.Mutability {
	case Pure, View, Payable:
		b.WriteString(" ")
		b.WriteString(string(f.Mutability))
	}
	if len(f.Outputs) > 0 {
		b.WriteString(" returns ")
		b.WriteString(joinParams(f.Outputs))
	}
	return b.String()
}

func joinParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Full()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Selector is the first four bytes of keccak256 over the canonical signature.
func (f FunctionSignature) Selector() [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(f.Canonical()))[:4])
	return sel
}

// ParamTypes returns the input types in declaration order.
func (f FunctionSignature) ParamTypes() []Type {
	types := make([]Type, len(f.Inputs))
	for i, in := range f.Inputs {
		types[i] = in.Type
	}
	return types
}
