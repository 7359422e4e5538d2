package abi

import (
	"fmt"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/ztx/internal/domain"
)

// Encode returns selector || abi-encoded arguments for fn. Every value must be
// valid and shaped like its parameter; otherwise an *domain.EncodingError is
// returned and nothing is encoded.
func Encode(fn FunctionSignature, values []ParamValue) ([]byte, error) {
	args, err := encodeArguments(fn.Name, fn.Inputs, values)
	if err != nil {
		return nil, err
	}
	sel := fn.Selector()
	return append(sel[:], args...), nil
}

// EncodeArguments encodes values as a parameter tuple without a selector, the
// layout of abi.encode(...).
func EncodeArguments(params []Param, values []ParamValue) ([]byte, error) {
	return encodeArguments("arguments", params, values)
}

func encodeArguments(name string, params []Param, values []ParamValue) ([]byte, error) {
	if len(values) != len(params) {
		return nil, &domain.EncodingError{
			Function: name,
			Index:    len(values),
			Reason:   fmt.Sprintf("expected %d arguments, got %d", len(params), len(values)),
		}
	}
	args := make(gethabi.Arguments, len(params))
	goValues := make([]any, len(params))
	for i, p := range params {
		if err := checkEncodable(p.Type, values[i]); err != nil {
			return nil, &domain.EncodingError{Function: name, Index: i, Reason: err.Error()}
		}
		gt, err := gethType(p.Type)
		if err != nil {
			return nil, &domain.EncodingError{Function: name, Index: i, Reason: err.Error()}
		}
		rv, err := goValue(gt, values[i])
		if err != nil {
			return nil, &domain.EncodingError{Function: name, Index: i, Reason: err.Error()}
		}
		args[i] = gethabi.Argument{Name: p.Name, Type: gt}
		goValues[i] = rv.Interface()
	}

	out, err := args.Pack(goValues...)
	if err != nil {
		return nil, &domain.EncodingError{Function: name, Reason: err.Error()}
	}
	return out, nil
}

// checkEncodable enforces the encode precondition: valid and exactly shaped.
func checkEncodable(t Type, v ParamValue) error {
	if !v.Valid {
		if v.Problem != "" {
			return fmt.Errorf("value not validated: %s", v.Problem)
		}
		return fmt.Errorf("value not validated")
	}
	if !v.Type.Equal(t) {
		return fmt.Errorf("value of type %s bound to %s", v.Type.Canonical(), t.Canonical())
	}

	switch t.Kind {
	case KindFixedArray:
		if len(v.Elems) != t.Size {
			return fmt.Errorf("expected %d elements, got %d", t.Size, len(v.Elems))
		}
		for _, e := range v.Elems {
			if err := checkEncodable(*t.Elem, e); err != nil {
				return err
			}
		}
	case KindSlice:
		for _, e := range v.Elems {
			if err := checkEncodable(*t.Elem, e); err != nil {
				return err
			}
		}
	case KindTuple:
		if len(v.Elems) != len(t.Components) {
			return fmt.Errorf("expected %d fields, got %d", len(t.Components), len(v.Elems))
		}
		for i, c := range t.Components {
			if err := checkEncodable(c.Type, v.Elems[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
