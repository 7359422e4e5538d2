package abi

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Validate checks raw against t and returns the normalised value. It never fails:
// problems are reported through the Valid flag and Problem text, and the returned
// value holds as much of the input as could be interpreted.
func Validate(t Type, raw Raw) (ParamValue, bool) {
	v := validate(t, raw)
	return v, v.Valid
}

// ValidateAll validates one raw literal per parameter. Missing literals yield
// invalid values.
func ValidateAll(params []Param, raws []Raw) ([]ParamValue, bool) {
	values := make([]ParamValue, len(params))
	ok := len(raws) == len(params)
	for i, p := range params {
		if i >= len(raws) {
			values[i] = ParamValue{Type: p.Type, Problem: "missing value"}
			continue
		}
		values[i] = validate(p.Type, raws[i])
		ok = ok && values[i].Valid
	}
	return values, ok
}

func validate(t Type, raw Raw) ParamValue {
	v := validateShape(t, raw)
	if !v.Valid {
		src := raw
		v.Source = &src
	}
	return v
}

func validateShape(t Type, raw Raw) ParamValue {
	if t.IsScalar() {
		if raw.IsList {
			return ParamValue{Type: t, Problem: "expected a single value, got a list"}
		}
		literal, problem := normalizeScalar(t, raw.Text)
		if problem != "" {
			return ParamValue{Type: t, Literal: raw.Text, Problem: problem}
		}
		return ParamValue{Type: t, Literal: literal, Valid: true}
	}

	if !raw.IsList {
		return ParamValue{Type: t, Problem: fmt.Sprintf("expected a list for %s", t.Canonical())}
	}

	var elemTypes []Type
	switch t.Kind {
	case KindFixedArray:
		elemTypes = repeat(*t.Elem, len(raw.List))
	case KindSlice:
		elemTypes = repeat(*t.Elem, len(raw.List))
	case KindTuple:
		elemTypes = make([]Type, len(t.Components))
		for i, c := range t.Components {
			elemTypes[i] = c.Type
		}
	}

	v := ParamValue{Type: t, Valid: true}
	for i, et := range elemTypes {
		if i >= len(raw.List) {
			v.Elems = append(v.Elems, ParamValue{Type: et, Problem: "missing value"})
			v.Valid = false
			continue
		}
		elem := validate(et, raw.List[i])
		v.Valid = v.Valid && elem.Valid
		v.Elems = append(v.Elems, elem)
	}

	switch {
	case t.Kind == KindFixedArray && len(raw.List) != t.Size:
		v.Valid = false
		v.Problem = fmt.Sprintf("expected %d elements, got %d", t.Size, len(raw.List))
	case t.Kind == KindTuple && len(raw.List) != len(t.Components):
		v.Valid = false
		v.Problem = fmt.Sprintf("expected %d fields, got %d", len(t.Components), len(raw.List))
	}

	return v
}

func repeat(t Type, n int) []Type {
	types := make([]Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}

// normalizeScalar returns the canonical literal for s, or a problem description.
// Surrounding space is ignored except in strings, which are taken verbatim.
func normalizeScalar(t Type, s string) (string, string) {
	if t.Kind != KindString {
		s = strings.TrimSpace(s)
	}

	switch t.Kind {
	case KindUint, KindInt:
		n, problem := parseInteger(t, s)
		if problem != "" {
			return "", problem
		}
		return n.String(), ""

	case KindAddress:
		addr, problem := parseAddress(s)
		if problem != "" {
			return "", problem
		}
		return addr.Hex(), ""

	case KindBool:
		switch s {
		case "true", "false":
			return s, ""
		}
		return "", `expected "true" or "false"`

	case KindFixedBytes:
		b, problem := parseHex(s)
		if problem != "" {
			return "", problem
		}
		if len(b) != t.Size {
			return "", fmt.Sprintf("expected %d bytes, got %d", t.Size, len(b))
		}
		return hexutil.Encode(b), ""

	case KindBytes:
		b, problem := parseHex(s)
		if problem != "" {
			return "", problem
		}
		return hexutil.Encode(b), ""

	case KindString:
		return s, ""
	}

	return "", "unsupported type " + t.Canonical()
}

func parseInteger(t Type, s string) (*big.Int, string) {
	if s == "" {
		return nil, "value required"
	}

	digits, base := s, 10
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	if digits == "" || strings.ContainsAny(digits, "+-_ ") {
		return nil, "not an integer"
	}

	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, "not an integer"
	}
	if negative {
		n.Neg(n)
	}

	if t.Kind == KindUint {
		if n.Sign() < 0 {
			return nil, "unsigned value cannot be negative"
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Sprintf("value exceeds uint%d", t.Size)
		}
		return n, ""
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	minimum := new(big.Int).Neg(limit)
	if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
		return nil, fmt.Sprintf("value out of range for int%d", t.Size)
	}
	return n, ""
}

// parseAddress accepts one 0x-prefixed 20-byte hex address. Mixed-case input must
// carry a valid EIP-55 checksum.
func parseAddress(s string) (common.Address, string) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return common.Address{}, "address must start with 0x"
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, "not a valid address"
	}
	addr := common.HexToAddress(s)
	body := s[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && addr.Hex()[2:] != body {
		return common.Address{}, "bad address checksum"
	}
	return addr, ""
}

func parseHex(s string) ([]byte, string) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, "invalid hex data: " + err.Error()
	}
	return b, ""
}
