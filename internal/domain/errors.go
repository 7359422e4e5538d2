package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrMalformedInterface is returned when a contract interface cannot be parsed
	ErrMalformedInterface = errors.New("malformed interface")

	// ErrEncoding is returned when calldata is requested for unvalidated values
	ErrEncoding = errors.New("encoding error")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when a call is added under an id the bundle already holds
	ErrDuplicateID = errors.New("duplicate call id")

	// ErrInvalidPermutation is returned when a reorder is not a bijection of the bundle ids
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrUnsupportedModuleType is returned for module tags missing from the catalog
	ErrUnsupportedModuleType = errors.New("unsupported module type")

	// ErrInvalidConfiguration is returned when a module parameter fails validation
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrInvalidArguments is returned when call arguments fail validation
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrNoAccount is returned when an operation needs the account address and none is configured
	ErrNoAccount = errors.New("no account configured")
)

// MalformedInterfaceError describes where an interface description failed to parse.
type MalformedInterfaceError struct {
	Fragment string
	Reason   string
}

func (e *MalformedInterfaceError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("malformed interface: %s", e.Reason)
	}
	return fmt.Sprintf("malformed interface: %s in %q", e.Reason, e.Fragment)
}

func (e *MalformedInterfaceError) Unwrap() error { return ErrMalformedInterface }

// EncodingError is returned by the codec when a value is not encodable.
type EncodingError struct {
	Function string
	Index    int
	Reason   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: argument %d of %s: %s", e.Index, e.Function, e.Reason)
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// CallNotFoundError is returned when a bundle has no call with the given id.
type CallNotFoundError struct {
	ID string
}

func (e *CallNotFoundError) Error() string {
	return fmt.Sprintf("call %q not found in bundle", e.ID)
}

func (e *CallNotFoundError) Unwrap() error { return ErrNotFound }

// PermutationError lists what made a reorder request invalid.
type PermutationError struct {
	Missing    []string
	Unknown    []string
	Duplicates []string
}

func (e *PermutationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ", "))
	}
	if len(e.Duplicates) > 0 {
		parts = append(parts, "duplicate "+strings.Join(e.Duplicates, ", "))
	}
	return fmt.Sprintf("invalid permutation: %s", strings.Join(parts, "; "))
}

func (e *PermutationError) Unwrap() error { return ErrInvalidPermutation }

// UnsupportedModuleTypeError is returned for unknown module tags, or known tags
// without deployment constants on the requested chain.
type UnsupportedModuleTypeError struct {
	Type    string
	ChainID uint64
}

func (e *UnsupportedModuleTypeError) Error() string {
	if e.ChainID != 0 {
		return fmt.Sprintf("unsupported module type %q on chain %d", e.Type, e.ChainID)
	}
	return fmt.Sprintf("unsupported module type %q", e.Type)
}

func (e *UnsupportedModuleTypeError) Unwrap() error { return ErrUnsupportedModuleType }

// InvalidConfigurationError carries the per-parameter problems of a module configuration.
type InvalidConfigurationError struct {
	Module   string
	Problems map[string]string
}

func (e *InvalidConfigurationError) Error() string {
	names := make([]string, 0, len(e.Problems))
	for name := range e.Problems {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make([]string, 0, len(names))
	for _, name := range names {
		details = append(details, fmt.Sprintf("%s: %s", name, e.Problems[name]))
	}
	return fmt.Sprintf("invalid configuration for module %q: %s", e.Module, strings.Join(details, "; "))
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// InvalidArgumentsError lists the validation problems of the arguments to a call.
type InvalidArgumentsError struct {
	Function string
	Problems []string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Function, strings.Join(e.Problems, "; "))
}

func (e *InvalidArgumentsError) Unwrap() error { return ErrInvalidArguments }
