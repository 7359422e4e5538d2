package abi

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ztx/internal/domain"
)

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}

func mustValidate(t *testing.T, fn FunctionSignature, raws ...Raw) []ParamValue {
	t.Helper()
	values, ok := ValidateAll(fn.Inputs, raws)
	require.True(t, ok, "values should validate: %v", raws)
	return values
}

func TestEncodeTransfer(t *testing.T) {
	fn, err := ParseSignature("transfer(address to, uint256 amount)")
	require.NoError(t, err)

	data, err := Encode(fn, mustValidate(t, fn, Text(sampleLower), Text("1000")))
	require.NoError(t, err)

	require.Len(t, data, 4+64)
	assert.Equal(t, "a9059cbb", hexString(data[:4]))
	assert.Equal(t, "000000000000000000000000"+sampleLower[2:], hexString(data[4:36]))
	assert.Equal(t, big.NewInt(1000), new(big.Int).SetBytes(data[36:68]))
}

func TestEncodeRejectsUnvalidated(t *testing.T) {
	fn, err := ParseSignature("transfer(address to, uint256 amount)")
	require.NoError(t, err)

	values, ok := ValidateAll(fn.Inputs, []Raw{Text("nope"), Text("1")})
	require.False(t, ok)

	_, err = Encode(fn, values)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEncoding)

	var encErr *domain.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 0, encErr.Index)
	assert.Equal(t, "transfer", encErr.Function)
}

func TestEncodeRejectsShapeMismatch(t *testing.T) {
	fn, err := ParseSignature("f(uint256[2] xs)")
	require.NoError(t, err)

	_, err = Encode(fn, nil)
	assert.ErrorIs(t, err, domain.ErrEncoding)

	// a value validated against a different type
	other, ok := Validate(MustParseType("uint256[]"), Texts("1", "2"))
	require.True(t, ok)
	_, err = Encode(fn, []ParamValue{other})
	assert.ErrorIs(t, err, domain.ErrEncoding)

	// right type, wrong arity
	forged := ParamValue{Type: MustParseType("uint256[2]"), Valid: true, Elems: other.Elems[:1]}
	_, err = Encode(fn, []ParamValue{forged})
	assert.ErrorIs(t, err, domain.ErrEncoding)
}

func TestEncodeMatchesGeth(t *testing.T) {
	newGethType := func(t *testing.T, s string, components ...gethabi.ArgumentMarshaling) gethabi.Type {
		t.Helper()
		typ, err := gethabi.NewType(s, "", components)
		require.NoError(t, err)
		return typ
	}

	target := common.HexToAddress(sampleLower)

	tests := []struct {
		name   string
		params string
		raws   []Raw
		geth   func(t *testing.T) (gethabi.Arguments, []interface{})
	}{
		{
			name:   "string",
			params: "f(string s)",
			raws:   []Raw{Text("hello world")},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				return gethabi.Arguments{{Type: newGethType(t, "string")}}, []interface{}{"hello world"}
			},
		},
		{
			name:   "dynamic array between statics",
			params: "f(uint8 a, uint256[] xs, bool b)",
			raws:   []Raw{Text("7"), Texts("1", "2", "3"), Text("true")},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				return gethabi.Arguments{
					{Type: newGethType(t, "uint8")},
					{Type: newGethType(t, "uint256[]")},
					{Type: newGethType(t, "bool")},
				}, []interface{}{
					uint8(7),
					[]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)},
					true,
				}
			},
		},
		{
			name:   "bytes longer than a word",
			params: "f(bytes data, bytes4 sel)",
			raws:   []Raw{Text("0x" + strings.Repeat("ab", 40)), Text("0xa9059cbb")},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				data, _ := hex.DecodeString(strings.Repeat("ab", 40))
				return gethabi.Arguments{
					{Type: newGethType(t, "bytes")},
					{Type: newGethType(t, "bytes4")},
				}, []interface{}{
					data,
					[4]byte{0xa9, 0x05, 0x9c, 0xbb},
				}
			},
		},
		{
			name:   "negative int",
			params: "f(int8 a, int256 b)",
			raws:   []Raw{Text("-1"), Text("-1000")},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				return gethabi.Arguments{
					{Type: newGethType(t, "int8")},
					{Type: newGethType(t, "int256")},
				}, []interface{}{int8(-1), big.NewInt(-1000)}
			},
		},
		{
			name:   "fixed array of strings",
			params: "f(string[2] names)",
			raws:   []Raw{Texts("alpha", "beta")},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				return gethabi.Arguments{{Type: newGethType(t, "string[2]")}}, []interface{}{[2]string{"alpha", "beta"}}
			},
		},
		{
			name:   "tuple array",
			params: "f((address target, bytes data)[] calls, address[] owners)",
			raws: []Raw{
				List(Texts(sampleLower, "0x1234"), Texts(sampleLower, "0x")),
				Texts(sampleLower),
			},
			geth: func(t *testing.T) (gethabi.Arguments, []interface{}) {
				type call struct {
					Target common.Address
					Data   []byte
				}
				calls := newGethType(t, "tuple[]",
					gethabi.ArgumentMarshaling{Name: "target", Type: "address"},
					gethabi.ArgumentMarshaling{Name: "data", Type: "bytes"},
				)
				return gethabi.Arguments{
					{Type: calls},
					{Type: newGethType(t, "address[]")},
				}, []interface{}{
					[]call{{Target: target, Data: []byte{0x12, 0x34}}, {Target: target, Data: []byte{}}},
					[]common.Address{target},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ParseSignature(tt.params)
			require.NoError(t, err)

			got, err := EncodeArguments(fn.Inputs, mustValidate(t, fn, tt.raws...))
			require.NoError(t, err)
			assert.Zero(t, len(got)%32)

			args, values := tt.geth(t)
			want, err := args.Pack(values...)
			require.NoError(t, err)
			assert.Equal(t, hexString(want), hexString(got))
		})
	}
}
