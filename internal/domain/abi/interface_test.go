package abi

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain"
)

const tokenABI = `[
  {"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
  {"type":"event","name":"Transfer","inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
  {"type":"function","name":"decimals","inputs":[],"outputs":[{"name":"","type":"uint8"}],"stateMutability":"pure"},
  {"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"execTransactions","inputs":[{"name":"txs","type":"tuple[]","components":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"}]}],"outputs":[],"stateMutability":"payable"}
]`

func TestMutatingFunctions(t *testing.T) {
	iface, err := ParseJSON([]byte(tokenABI))
	require.NoError(t, err)

	assert.Len(t, iface.Functions, 5)

	mutating := iface.MutatingFunctions()
	names := lo.Map(mutating, func(f FunctionSignature, _ int) string { return f.Name })
	assert.Equal(t, []string{"transfer", "approve", "execTransactions"}, names)

	exec := mutating[2]
	assert.Equal(t, "execTransactions((address,uint256,bytes)[])", exec.Canonical())
	assert.Equal(t, Payable, exec.Mutability)
	assert.Equal(t, "to", exec.Inputs[0].Type.Elem.Components[0].Name)
}

func TestParseJSONArtifact(t *testing.T) {
	artifactJSON := `{"abi": [{"type":"function","name":"enableModule","inputs":[{"name":"module","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}], "bytecode": {"object": "0x"}}`

	iface, err := ParseJSON([]byte(artifactJSON))
	require.NoError(t, err)
	require.Len(t, iface.Functions, 1)
	assert.Equal(t, "enableModule(address)", iface.Functions[0].Canonical())
}

func TestParseJSONLegacyMutability(t *testing.T) {
	legacy := `[
	  {"name":"totalSupply","inputs":[],"outputs":[{"type":"uint256"}],"constant":true},
	  {"name":"deposit","inputs":[],"outputs":[],"payable":true},
	  {"name":"burn","inputs":[{"type":"uint256"}],"outputs":[]}
	]`

	iface, err := ParseJSON([]byte(legacy))
	require.NoError(t, err)
	require.Len(t, iface.Functions, 3)
	assert.Equal(t, View, iface.Functions[0].Mutability)
	assert.Equal(t, Payable, iface.Functions[1].Mutability)
	assert.Equal(t, NonPayable, iface.Functions[2].Mutability)
}

func TestParseJSONOverloadsKeepDeclarationOrder(t *testing.T) {
	overloaded := `[
	  {"type":"function","name":"safeTransferFrom","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"},{"name":"data","type":"bytes"}],"outputs":[]},
	  {"type":"event","name":"Approval","inputs":[]},
	  {"type":"function","name":"approve","inputs":[{"name":"to","type":"address"},{"name":"id","type":"uint256"}],"outputs":[]},
	  {"type":"function","name":"safeTransferFrom","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"id","type":"uint256"}],"outputs":[]},
	  {"type":"function","name":"safeTransferFrom0","inputs":[],"outputs":[]}
	]`

	iface, err := ParseJSON([]byte(overloaded))
	require.NoError(t, err)

	sigs := lo.Map(iface.Functions, func(f FunctionSignature, _ int) string { return f.Canonical() })
	assert.Equal(t, []string{
		"safeTransferFrom(address,address,uint256,bytes)",
		"approve(address,uint256)",
		"safeTransferFrom(address,address,uint256)",
		"safeTransferFrom0()",
	}, sigs)
	assert.Equal(t, "data", iface.Functions[0].Inputs[3].Name)
}

func TestParseJSONMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":          `[{"type":"function"`,
		"unknown type":      `[{"type":"function","name":"f","inputs":[{"name":"x","type":"uint7"}]}]`,
		"bad tuple suffix":  `[{"type":"function","name":"f","inputs":[{"name":"x","type":"tuple[","components":[]}]}]`,
		"nameless function": `[{"type":"function","inputs":[]}]`,
		"function pointer":  `[{"type":"function","name":"f","inputs":[{"name":"cb","type":"function"}]}]`,
		"unknown entry":     `[{"type":"modifier","name":"onlyOwner"}]`,
		"artifact sans abi": `{"bytecode":"0x"}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(input))
			assert.ErrorIs(t, err, domain.ErrMalformedInterface)
		})
	}
}

func TestParseHumanReadable(t *testing.T) {
	text := `
// Safe module manager
function enableModule(address module)
function disableModule(address prevModule, address module);
function isModuleEnabled(address module) view returns (bool)
event EnabledModule(address module)
`
	iface, err := ParseHumanReadable(text)
	require.NoError(t, err)
	require.Len(t, iface.Functions, 3)

	mutating := iface.MutatingFunctions()
	require.Len(t, mutating, 2)
	assert.Equal(t, "disableModule(address,address)", mutating[1].Canonical())

	_, err = ParseHumanReadable("function broken(address")
	assert.ErrorIs(t, err, domain.ErrMalformedInterface)
}

func TestParseInterfaceDetectsFormat(t *testing.T) {
	fromJSON, err := ParseInterface([]byte("  " + tokenABI))
	require.NoError(t, err)
	assert.Len(t, fromJSON.Functions, 5)

	fromText, err := ParseInterface([]byte("function transfer(address to, uint256 amount)"))
	require.NoError(t, err)
	assert.Len(t, fromText.Functions, 1)
}

func TestFindFunction(t *testing.T) {
	iface, err := ParseHumanReadable(`
function transfer(address to, uint256 amount)
function safeTransferFrom(address from, address to, uint256 id)
function safeTransferFrom(address from, address to, uint256 id, bytes data)
`)
	require.NoError(t, err)

	fn, ok := iface.FindFunction("transfer")
	require.True(t, ok)
	assert.Equal(t, "transfer(address,uint256)", fn.Canonical())

	_, ok = iface.FindFunction("safeTransferFrom")
	assert.False(t, ok, "overloaded name is ambiguous")

	fn, ok = iface.FindFunction("function safeTransferFrom(address from, address to, uint256 id, bytes data)")
	require.True(t, ok)
	assert.Len(t, fn.Inputs, 4)

	fn, ok = iface.FindFunction("safeTransferFrom(address,address,uint256)")
	require.True(t, ok)
	assert.Len(t, fn.Inputs, 3)

	_, ok = iface.FindFunction("burn")
	assert.False(t, ok)
}
