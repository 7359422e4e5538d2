// Package modules plans the calls that attach extension modules to an account.
package modules

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

// Deployment holds the deterministic deployment constants of a factory module.
// A zero InitCodeHash means the hash is derived from the minimal proxy code.
type Deployment struct {
	Factory      common.Address
	Mastercopy   common.Address
	InitCodeHash common.Hash
}

// Spec is a resolved module type for one chain.
type Spec struct {
	Name        string
	Description string
	Kind        models.ModuleKind

	// Params in initializer encoding order, implicit ones included.
	Params []abi.Param
	// Sources maps implicit parameter names to their source.
	Sources map[string]string

	Setup      abi.FunctionSignature
	Deployment Deployment
}

// UserParams returns the parameters the user has to supply.
func (s Spec) UserParams() []abi.Param {
	var out []abi.Param
	for _, p := range s.Params {
		if _, implicit := s.Sources[p.Name]; !implicit {
			out = append(out, p)
		}
	}
	return out
}

// IsImplicit reports whether the named parameter is filled from context.
func (s Spec) IsImplicit(name string) bool {
	_, ok := s.Sources[name]
	return ok
}

// Resolve looks up name in the catalog and resolves its types and the
// deployment constants for chainID.
func Resolve(catalog *config.ModuleCatalog, name string, chainID uint64) (Spec, error) {
	mc, ok := catalog.Lookup(name)
	if !ok {
		return Spec{}, &domain.UnsupportedModuleTypeError{Type: name}
	}

	spec := Spec{
		Name:        mc.Name,
		Description: mc.Description,
		Kind:        models.ModuleKind(mc.Kind),
		Sources:     map[string]string{},
	}

	for _, p := range mc.Params {
		typ, err := abi.ParseType(p.Type)
		if err != nil {
			return Spec{}, fmt.Errorf("module %s: parameter %s: %w", name, p.Name, err)
		}
		if p.Implicit() {
			if p.Source != config.ParamSourceAccount {
				return Spec{}, fmt.Errorf("module %s: parameter %s: unknown source %q", name, p.Name, p.Source)
			}
			if typ.Kind != abi.KindAddress {
				return Spec{}, fmt.Errorf("module %s: parameter %s: account source requires an address", name, p.Name)
			}
			spec.Sources[p.Name] = p.Source
		}
		spec.Params = append(spec.Params, abi.Param{Name: p.Name, Type: typ})
	}

	switch spec.Kind {
	case models.ModuleKindDirect:
		user := spec.UserParams()
		if len(user) != 1 || user[0].Type.Kind != abi.KindAddress || len(spec.Params) != 1 {
			return Spec{}, fmt.Errorf("module %s: direct modules take exactly one address parameter", name)
		}
		return spec, nil

	case models.ModuleKindFactory:
		setup := mc.Setup
		if setup == "" {
			setup = config.DefaultSetupSignature
		}
		fn, err := abi.ParseSignature(setup)
		if err != nil {
			return Spec{}, fmt.Errorf("module %s: setup: %w", name, err)
		}
		if len(fn.Inputs) != 1 || fn.Inputs[0].Type.Kind != abi.KindBytes {
			return Spec{}, fmt.Errorf("module %s: setup must take a single bytes argument", name)
		}
		spec.Setup = fn

		dep, err := resolveDeployment(mc.DeploymentFor(chainID))
		if err != nil {
			return Spec{}, fmt.Errorf("module %s: %w", name, err)
		}
		if dep.Factory == (common.Address{}) || dep.Mastercopy == (common.Address{}) {
			return Spec{}, &domain.UnsupportedModuleTypeError{Type: name, ChainID: chainID}
		}
		spec.Deployment = dep
		return spec, nil
	}

	return Spec{}, fmt.Errorf("module %s: unknown kind %q", name, mc.Kind)
}

func resolveDeployment(d config.ModuleDeployment) (Deployment, error) {
	var out Deployment
	for _, f := range []struct {
		name  string
		value string
		dest  *common.Address
	}{
		{"factory", d.Factory, &out.Factory},
		{"mastercopy", d.Mastercopy, &out.Mastercopy},
	} {
		if f.value == "" {
			continue
		}
		if !common.IsHexAddress(f.value) {
			return Deployment{}, fmt.Errorf("%s %q: %w", f.name, f.value, domain.ErrInvalidAddress)
		}
		*f.dest = common.HexToAddress(f.value)
	}

	if d.InitCodeHash != "" {
		b, err := hexToHash(d.InitCodeHash)
		if err != nil {
			return Deployment{}, fmt.Errorf("init_code_hash: %w", err)
		}
		out.InitCodeHash = b
	}
	return out, nil
}

func hexToHash(s string) (common.Hash, error) {
	v, ok := abi.Validate(abi.FixedBytes(common.HashLength), abi.Text(s))
	if !ok {
		return common.Hash{}, fmt.Errorf("%q: %s", s, v.Problem)
	}
	return common.HexToHash(v.Literal), nil
}
