package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// gethType builds the go-ethereum descriptor of t. Tuple fields get positional
// names since go-ethereum needs a struct field for each of them.
func gethType(t Type) (gethabi.Type, error) {
	m := marshaling("value", t)
	return gethabi.NewType(m.Type, "", m.Components)
}

func marshaling(name string, t Type) gethabi.ArgumentMarshaling {
	switch t.Kind {
	case KindTuple:
		components := make([]gethabi.ArgumentMarshaling, len(t.Components))
		for i, c := range t.Components {
			components[i] = marshaling("field"+strconv.Itoa(i), c.Type)
		}
		return gethabi.ArgumentMarshaling{Name: name, Type: "tuple", Components: components}
	case KindFixedArray:
		m := marshaling(name, *t.Elem)
		m.Type += "[" + strconv.Itoa(t.Size) + "]"
		return m
	case KindSlice:
		m := marshaling(name, *t.Elem)
		m.Type += "[]"
		return m
	default:
		return gethabi.ArgumentMarshaling{Name: name, Type: t.Canonical()}
	}
}

// fromGeth converts a go-ethereum descriptor, rejecting the kinds and widths
// that cannot appear in a function input.
func fromGeth(gt gethabi.Type) (Type, error) {
	switch gt.T {
	case gethabi.UintTy, gethabi.IntTy:
		if gt.Size < 8 || gt.Size > 256 || gt.Size%8 != 0 {
			return Type{}, unknownType(gt.String())
		}
		if gt.T == gethabi.UintTy {
			return Uint(gt.Size), nil
		}
		return Int(gt.Size), nil
	case gethabi.AddressTy:
		return Address(), nil
	case gethabi.BoolTy:
		return Bool(), nil
	case gethabi.StringTy:
		return String(), nil
	case gethabi.BytesTy:
		return Bytes(), nil
	case gethabi.FixedBytesTy:
		return FixedBytes(gt.Size), nil
	case gethabi.SliceTy, gethabi.ArrayTy:
		elem, err := fromGeth(*gt.Elem)
		if err != nil {
			return Type{}, err
		}
		if gt.T == gethabi.SliceTy {
			return SliceOf(elem), nil
		}
		if gt.Size == 0 {
			return Type{}, unknownType(gt.String())
		}
		return ArrayOf(elem, gt.Size), nil
	case gethabi.TupleTy:
		fields := make([]Param, len(gt.TupleElems))
		for i, et := range gt.TupleElems {
			ft, err := fromGeth(*et)
			if err != nil {
				return Type{}, err
			}
			fields[i] = Param{Name: gt.TupleRawNames[i], Type: ft}
		}
		return Tuple(fields...), nil
	}
	return Type{}, unknownType(gt.String())
}

func paramsFromGeth(args gethabi.Arguments) ([]Param, error) {
	params := make([]Param, len(args))
	for i, arg := range args {
		t, err := fromGeth(arg.Type)
		if err != nil {
			return nil, err
		}
		params[i] = Param{Name: arg.Name, Type: t}
	}
	return params, nil
}

// goValue converts a validated value into the Go value go-ethereum packs for gt.
func goValue(gt gethabi.Type, v ParamValue) (reflect.Value, error) {
	rt := gt.GetType()

	switch gt.T {
	case gethabi.UintTy, gethabi.IntTy:
		n, ok := new(big.Int).SetString(v.Literal, 10)
		if !ok {
			return reflect.Value{}, fmt.Errorf("integer literal %q is not normalised", v.Literal)
		}
		if rt == bigIntType {
			return reflect.ValueOf(n), nil
		}
		out := reflect.New(rt).Elem()
		if gt.T == gethabi.UintTy {
			out.SetUint(n.Uint64())
		} else {
			out.SetInt(n.Int64())
		}
		return out, nil

	case gethabi.AddressTy:
		if !common.IsHexAddress(v.Literal) {
			return reflect.Value{}, fmt.Errorf("address literal %q is not normalised", v.Literal)
		}
		return reflect.ValueOf(common.HexToAddress(v.Literal)), nil

	case gethabi.BoolTy:
		return reflect.ValueOf(v.Literal == "true"), nil

	case gethabi.StringTy:
		return reflect.ValueOf(v.Literal), nil

	case gethabi.BytesTy:
		b, err := hexutil.Decode(v.Literal)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(b), nil

	case gethabi.FixedBytesTy:
		b, err := hexutil.Decode(v.Literal)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(rt).Elem()
		reflect.Copy(out, reflect.ValueOf(b))
		return out, nil

	case gethabi.SliceTy, gethabi.ArrayTy:
		var out reflect.Value
		if gt.T == gethabi.SliceTy {
			out = reflect.MakeSlice(rt, len(v.Elems), len(v.Elems))
		} else {
			out = reflect.New(rt).Elem()
		}
		for i, e := range v.Elems {
			ev, err := goValue(*gt.Elem, e)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil

	case gethabi.TupleTy:
		out := reflect.New(rt).Elem()
		for i, et := range gt.TupleElems {
			fv, err := goValue(*et, v.Elems[i])
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(fv)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported type %s", gt.String())
}
