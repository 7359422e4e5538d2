package abi

import (
	"math/big"
	"testing"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGethTypeRoundTrip(t *testing.T) {
	inputs := []string{
		"uint8",
		"int24",
		"uint256",
		"address",
		"bool",
		"bytes4",
		"bytes",
		"string",
		"uint256[2][]",
		"(address to, uint256 value, bytes data)[]",
		"(address a, (uint8,bool)[3] b)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			typ := MustParseType(input)

			gt, err := gethType(typ)
			require.NoError(t, err)
			assert.Equal(t, typ.Canonical(), gt.String())

			back, err := fromGeth(gt)
			require.NoError(t, err)
			assert.Equal(t, typ.Canonical(), back.Canonical())
		})
	}
}

func TestFromGethRejectsUnsupported(t *testing.T) {
	for _, s := range []string{"uint7", "int512", "function", "fixed128x18"} {
		t.Run(s, func(t *testing.T) {
			gt, err := gethabi.NewType(s, "", nil)
			if err != nil {
				return
			}
			_, err = fromGeth(gt)
			assert.Error(t, err)
		})
	}
}

func TestGoValue(t *testing.T) {
	convert := func(t *testing.T, typ string, raw Raw) any {
		t.Helper()
		v, ok := Validate(MustParseType(typ), raw)
		require.True(t, ok)
		gt, err := gethType(v.Type)
		require.NoError(t, err)
		rv, err := goValue(gt, v)
		require.NoError(t, err)
		return rv.Interface()
	}

	assert.Equal(t, uint8(255), convert(t, "uint8", Text("0xff")))
	assert.Equal(t, int64(-5), convert(t, "int64", Text("-5")))
	assert.Equal(t, big.NewInt(1000), convert(t, "uint256", Text("1000")))
	assert.Equal(t, common.HexToAddress(sampleLower), convert(t, "address", Text(sampleLower)))
	assert.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, convert(t, "bytes4", Text("0xa9059cbb")))
	assert.Equal(t, []byte{}, convert(t, "bytes", Text("0x")))
	assert.Equal(t, [2]bool{true, false}, convert(t, "bool[2]", Texts("true", "false")))
}
