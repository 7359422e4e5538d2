package modules

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
)

var (
	// EnableModuleSignature is the account's module management entry point.
	EnableModuleSignature = mustSignature("enableModule(address module)")
	// DeployModuleSignature is the module proxy factory entry point.
	DeployModuleSignature = mustSignature("deployModule(address masterCopy, bytes initializer, uint256 saltNonce)")
)

// Minimal proxy (EIP-1167) creation code around the mastercopy address.
var (
	proxyPrefix = common.FromHex("0x602d8060093d393df3363d3d373d3d3d363d73")
	proxySuffix = common.FromHex("0x5af43d82803e903d91602b57fd5bf3")
)

func mustSignature(s string) abi.FunctionSignature {
	fn, err := abi.ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return fn
}

// CodeChecker reports whether contract code is deployed at an address
type CodeChecker interface {
	HasCode(ctx context.Context, address common.Address) (bool, error)
}

// Request is the input of a planning run
type Request struct {
	ModuleType string
	Account    common.Address
	ChainID    uint64
	// Config holds the user supplied parameters by name. Implicit parameters
	// must not be supplied.
	Config map[string]abi.Raw
}

// Key identifies the request inputs; equal keys plan to equal results.
func (r Request) Key() string {
	names := make([]string, 0, len(r.Config))
	for name := range r.Config {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(r.ModuleType)
	b.WriteString("|")
	b.WriteString(strconv.FormatUint(r.ChainID, 10))
	b.WriteString("|")
	b.WriteString(r.Account.Hex())
	for _, name := range names {
		fmt.Fprintf(&b, "|%s=%s", name, r.Config[name].String())
	}
	return b.String()
}

// Planner resolves module types from the catalog and produces deployment plans
type Planner struct {
	catalog *config.ModuleCatalog
	checker CodeChecker
}

// NewPlanner creates a planner. A nil checker treats every address as empty.
func NewPlanner(catalog *config.ModuleCatalog, checker CodeChecker) *Planner {
	return &Planner{catalog: catalog, checker: checker}
}

// Spec resolves a module type for chainID.
func (p *Planner) Spec(moduleType string, chainID uint64) (Spec, error) {
	return Resolve(p.catalog, moduleType, chainID)
}

// Plan validates the request and builds the deployment plan.
func (p *Planner) Plan(ctx context.Context, req Request) (*models.ModuleDeploymentPlan, error) {
	spec, err := p.Spec(req.ModuleType, req.ChainID)
	if err != nil {
		return nil, err
	}

	values, err := bindConfig(spec, req)
	if err != nil {
		return nil, err
	}

	plan := &models.ModuleDeploymentPlan{
		ModuleType: spec.Name,
		Kind:       spec.Kind,
		Account:    req.Account,
		ChainID:    req.ChainID,
		Params:     spec.Params,
		Values:     values,
	}

	switch spec.Kind {
	case models.ModuleKindDirect:
		plan.PredictedAddress = common.HexToAddress(values[0].Literal)
	case models.ModuleKindFactory:
		if err := p.predict(ctx, spec, plan); err != nil {
			return nil, err
		}
	}

	enable, err := EnableCall(req.Account, plan.PredictedAddress)
	if err != nil {
		return nil, err
	}
	plan.Calls = append(plan.Calls, enable)
	return plan, nil
}

// bindConfig fills implicit parameters and validates every value. All
// problems are collected into one InvalidConfigurationError.
func bindConfig(spec Spec, req Request) ([]abi.ParamValue, error) {
	problems := map[string]string{}
	values := make([]abi.ParamValue, len(spec.Params))

	for i, param := range spec.Params {
		var raw abi.Raw
		if spec.IsImplicit(param.Name) {
			if _, supplied := req.Config[param.Name]; supplied {
				problems[param.Name] = "is filled from the account and cannot be set"
			}
			if req.Account == (common.Address{}) {
				problems[param.Name] = "no account configured"
			}
			raw = abi.Text(req.Account.Hex())
		} else {
			supplied, ok := req.Config[param.Name]
			if !ok {
				problems[param.Name] = "value required"
				values[i] = abi.ParamValue{Type: param.Type, Problem: "value required"}
				continue
			}
			raw = supplied
		}

		v, ok := abi.Validate(param.Type, raw)
		values[i] = v
		if !ok {
			problems[param.Name] = strings.Join(v.Problems(param.Name), "; ")
		}
	}

	for name := range req.Config {
		if !lookupParam(spec.Params, name) {
			problems[name] = "unknown parameter"
		}
	}

	if len(problems) > 0 {
		return nil, &domain.InvalidConfigurationError{Module: spec.Name, Problems: problems}
	}
	return values, nil
}

func lookupParam(params []abi.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// predict fills the deterministic deployment fields of a factory module plan
// and prepends the factory call unless the module is already deployed.
func (p *Planner) predict(ctx context.Context, spec Spec, plan *models.ModuleDeploymentPlan) error {
	encoded, err := abi.EncodeArguments(spec.Params, plan.Values)
	if err != nil {
		return err
	}

	initializer, err := encodeCall(spec.Setup, abi.Text(hexutil.Encode(encoded)))
	if err != nil {
		return err
	}

	dep := spec.Deployment
	plan.Factory = dep.Factory
	plan.Mastercopy = dep.Mastercopy
	plan.Initializer = initializer
	plan.SaltNonce = SaltNonce(encoded, plan.Account)
	plan.Salt = Salt(initializer, plan.SaltNonce)
	plan.InitCodeHash = dep.InitCodeHash
	if plan.InitCodeHash == (common.Hash{}) {
		plan.InitCodeHash = ProxyInitCodeHash(dep.Mastercopy)
	}
	plan.PredictedAddress = crypto.CreateAddress2(dep.Factory, plan.Salt, plan.InitCodeHash.Bytes())

	if p.checker != nil {
		deployed, err := p.checker.HasCode(ctx, plan.PredictedAddress)
		if err != nil {
			return fmt.Errorf("failed to check code at %s: %w", plan.PredictedAddress.Hex(), err)
		}
		plan.AlreadyDeployed = deployed
	}
	if plan.AlreadyDeployed {
		return nil
	}

	data, err := encodeCall(DeployModuleSignature,
		abi.Text(dep.Mastercopy.Hex()),
		abi.Text(hexutil.Encode(initializer)),
		abi.Text(plan.SaltNonce.Big().String()),
	)
	if err != nil {
		return err
	}
	plan.Calls = append(plan.Calls, models.Call{To: dep.Factory, Data: data, Operation: models.OperationCall})
	return nil
}

// SaltNonce derives the factory salt nonce from the encoded configuration and
// the account, so distinct accounts never collide on the same configuration.
func SaltNonce(encodedConfig []byte, account common.Address) common.Hash {
	return crypto.Keccak256Hash(encodedConfig, account.Bytes())
}

// Salt is the CREATE2 salt the module proxy factory derives for a deployment.
func Salt(initializer []byte, saltNonce common.Hash) common.Hash {
	return crypto.Keccak256Hash(crypto.Keccak256(initializer), saltNonce.Bytes())
}

// ProxyInitCodeHash returns the hash of the minimal proxy creation code
// delegating to mastercopy.
func ProxyInitCodeHash(mastercopy common.Address) common.Hash {
	return crypto.Keccak256Hash(proxyPrefix, mastercopy.Bytes(), proxySuffix)
}

// EnableCall builds the enableModule call on the account.
func EnableCall(account, module common.Address) (models.Call, error) {
	data, err := encodeCall(EnableModuleSignature, abi.Text(module.Hex()))
	if err != nil {
		return models.Call{}, err
	}
	return models.Call{To: account, Data: data, Operation: models.OperationCall}, nil
}

// encodeCall validates the planner's own literals against fn before encoding,
// so a signature that does not take them fails with the offending argument.
func encodeCall(fn abi.FunctionSignature, raws ...abi.Raw) ([]byte, error) {
	if len(raws) != len(fn.Inputs) {
		return nil, &domain.EncodingError{
			Function: fn.Canonical(),
			Index:    len(raws),
			Reason:   fmt.Sprintf("signature takes %d arguments, planned %d", len(fn.Inputs), len(raws)),
		}
	}
	values, ok := abi.ValidateAll(fn.Inputs, raws)
	if !ok {
		for i, v := range values {
			if v.Valid {
				continue
			}
			return nil, &domain.EncodingError{
				Function: fn.Canonical(),
				Index:    i,
				Reason:   strings.Join(v.Problems(argName(fn.Inputs[i], i)), "; "),
			}
		}
	}
	return abi.Encode(fn, values)
}

func argName(p abi.Param, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return "arg" + strconv.Itoa(i)
}
