package abi

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var (
	sampleLower    = "0xccbfc37093009fd31f85f1bf90c34f1e03fb351e"
	sampleChecksum = common.HexToAddress(sampleLower).Hex()
)

// flipFirstLetter swaps the case of the first hex letter, breaking the checksum.
func flipFirstLetter(addr string) string {
	b := []byte(addr)
	for i := 2; i < len(b); i++ {
		switch {
		case b[i] >= 'a' && b[i] <= 'f':
			b[i] -= 'a' - 'A'
			return string(b)
		case b[i] >= 'A' && b[i] <= 'F':
			b[i] += 'a' - 'A'
			return string(b)
		}
	}
	return addr
}

func TestValidateScalars(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		input   string
		valid   bool
		literal string
	}{
		{"uint decimal", "uint256", "1000", true, "1000"},
		{"uint hex", "uint256", "0xff", true, "255"},
		{"uint trims space", "uint256", " 42 ", true, "42"},
		{"uint empty", "uint256", "", false, ""},
		{"uint negative", "uint256", "-1", false, ""},
		{"uint8 max", "uint8", "255", true, "255"},
		{"uint8 overflow", "uint8", "256", false, ""},
		{"uint garbage", "uint256", "12ab", false, ""},
		{"uint float", "uint256", "1.5", false, ""},
		{"int8 min", "int8", "-128", true, "-128"},
		{"int8 max", "int8", "127", true, "127"},
		{"int8 overflow", "int8", "128", false, ""},
		{"int8 underflow", "int8", "-129", false, ""},
		{"address lowercase", "address", sampleLower, true, sampleChecksum},
		{"address uppercase", "address", "0x" + strings.ToUpper(sampleLower[2:]), true, sampleChecksum},
		{"address checksummed", "address", sampleChecksum, true, sampleChecksum},
		{"address bad checksum", "address", flipFirstLetter(sampleChecksum), false, ""},
		{"address too short", "address", "0xccbfc37093009fd31f85f1bf90c34f1e03fb35", false, ""},
		{"address two addresses", "address", "0xccbfc37093009fd31f85f1bf90c34f1e03fb351e,0xccbfc37093009fd31f85f1bf90c34f1e03fb351e", false, ""},
		{"address without prefix", "address", "ccbfc37093009fd31f85f1bf90c34f1e03fb351e", false, ""},
		{"bool true", "bool", "true", true, "true"},
		{"bool false", "bool", "false", true, "false"},
		{"bool yes", "bool", "yes", false, ""},
		{"bytes4", "bytes4", "0xA9059CBB", true, "0xa9059cbb"},
		{"bytes4 wrong length", "bytes4", "0xa9059c", false, ""},
		{"bytes", "bytes", "0xdeadbeef", true, "0xdeadbeef"},
		{"bytes empty", "bytes", "0x", true, "0x"},
		{"bytes odd", "bytes", "0xabc", false, ""},
		{"bytes no prefix", "bytes", "deadbeef", false, ""},
		{"string", "string", "hello world", true, "hello world"},
		{"string keeps surrounding space", "string", "  padded  ", true, "  padded  "},
		{"string of spaces", "string", "   ", true, "   "},
		{"string empty", "string", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Validate(MustParseType(tt.typ), Text(tt.input))
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.valid, v.Valid)
			if tt.valid {
				assert.Equal(t, tt.literal, v.Literal)
				assert.Empty(t, v.Problem)
			} else {
				assert.NotEmpty(t, v.Problem)
				assert.Equal(t, tt.input, v.Literal, "invalid input is kept as the partial value")
			}
		})
	}
}

func TestInvalidValueKeepsSource(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		raw  Raw
	}{
		{"text for array", "uint256[]", Text("abc")},
		{"list for scalar", "uint256", Texts("1", "2")},
		{"extra tuple field", "(address to, uint256 value)", Texts(sampleLower, "1", "2")},
		{"missing tuple field", "(address to, uint256 value)", Texts(sampleLower)},
		{"one bad element", "address[]", Texts(sampleLower, "nope")},
		{"fixed array too long", "uint8[2]", Texts(" 1", "2", "3")},
		{"nested", "uint8[2][]", List(Texts("1", "2"), Text("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Validate(MustParseType(tt.typ), tt.raw)
			require.False(t, ok)
			assert.Equal(t, tt.raw, v.Raw())
		})
	}

	t.Run("valid values are normalised", func(t *testing.T) {
		v, ok := Validate(MustParseType("(address to, uint256 value)"), Texts(sampleLower, "0x10"))
		require.True(t, ok)
		assert.Equal(t, Texts(sampleChecksum, "16"), v.Raw())
	})
}

func TestValidateScalarRejectsList(t *testing.T) {
	v, ok := Validate(Uint(256), Texts("1"))
	assert.False(t, ok)
	assert.Contains(t, v.Problem, "single value")
}

func TestValidateArrays(t *testing.T) {
	t.Run("dynamic array accepts any length", func(t *testing.T) {
		for _, n := range []int{0, 1, 5} {
			items := make([]string, n)
			for i := range items {
				items[i] = "1"
			}
			_, ok := Validate(MustParseType("uint256[]"), Texts(items...))
			assert.True(t, ok, "length %d", n)
		}
	})

	t.Run("fixed array requires exact arity", func(t *testing.T) {
		typ := MustParseType("uint256[2]")

		_, ok := Validate(typ, Texts("1", "2"))
		assert.True(t, ok)

		v, ok := Validate(typ, Texts("1"))
		assert.False(t, ok)
		assert.Contains(t, v.Problem, "expected 2 elements")

		_, ok = Validate(typ, Texts("1", "2", "3"))
		assert.False(t, ok)
	})

	t.Run("every element validates", func(t *testing.T) {
		v, ok := Validate(MustParseType("address[]"), Texts(sampleLower, "nope"))
		assert.False(t, ok)
		require.Len(t, v.Elems, 2)
		assert.True(t, v.Elems[0].Valid)
		assert.False(t, v.Elems[1].Valid)

		problems := v.Problems("owners")
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], "owners[1]")
	})

	t.Run("text for array is invalid", func(t *testing.T) {
		_, ok := Validate(MustParseType("uint256[]"), Text("1,2"))
		assert.False(t, ok)
	})

	t.Run("nested", func(t *testing.T) {
		typ := MustParseType("uint8[2][]")
		_, ok := Validate(typ, List(Texts("1", "2"), Texts("3", "4")))
		assert.True(t, ok)

		_, ok = Validate(typ, List(Texts("1", "2"), Texts("3")))
		assert.False(t, ok)
	})
}

func TestValidateTuples(t *testing.T) {
	typ := MustParseType("(address to, uint256 value, bytes data)")

	v, ok := Validate(typ, Texts(sampleLower, "0", "0x"))
	assert.True(t, ok)
	assert.Equal(t, sampleChecksum, v.Elems[0].Literal)

	v, ok = Validate(typ, Texts(sampleLower, "0"))
	assert.False(t, ok)
	assert.Contains(t, v.Problem, "expected 3 fields")
	require.Len(t, v.Elems, 3)
	assert.Equal(t, "missing value", v.Elems[2].Problem)
}

func TestValidateAll(t *testing.T) {
	fn, err := ParseSignature("transfer(address to, uint256 amount)")
	require.NoError(t, err)

	values, ok := ValidateAll(fn.Inputs, []Raw{Text(sampleLower), Text("1000")})
	assert.True(t, ok)
	assert.True(t, AllValid(fn.Inputs, values))

	values, ok = ValidateAll(fn.Inputs, []Raw{Text(sampleLower)})
	assert.False(t, ok)
	require.Len(t, values, 2)
	assert.False(t, values[1].Valid)
	assert.False(t, AllValid(fn.Inputs, values))
}

func TestParseRaw(t *testing.T) {
	r, err := ParseRaw("1000")
	require.NoError(t, err)
	assert.Equal(t, Text("1000"), r)

	r, err = ParseRaw(`["0xabc", 12345678901234567890123, true, ["x"]]`)
	require.NoError(t, err)
	assert.Equal(t, List(Text("0xabc"), Text("12345678901234567890123"), Text("true"), Texts("x")), r)

	_, err = ParseRaw("[1, null]")
	assert.Error(t, err)

	_, err = ParseRaw("[1,")
	assert.Error(t, err)
}

func TestRawJSON(t *testing.T) {
	r := List(Text("a"), Texts("b", "c"), List())

	data, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["a",["b","c"],[]]`, string(data))

	var back Raw
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, r, back)
	assert.Equal(t, `["a",["b","c"],[]]`, back.String())

	assert.Error(t, back.UnmarshalJSON([]byte(`{"a":1}`)))
}

func TestRawYAML(t *testing.T) {
	r := List(Text("0x12"), Texts("b", "true"), List())

	data, err := yaml.Marshal(r)
	require.NoError(t, err)

	var back Raw
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, r, back)

	var plain Raw
	require.NoError(t, yaml.Unmarshal([]byte("[42, true, [x]]"), &plain))
	assert.Equal(t, List(Text("42"), Text("true"), Texts("x")), plain)
}
