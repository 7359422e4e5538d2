// Package abi models contract interfaces as a closed set of type descriptors and
// implements validation and calldata encoding over them.
package abi

import (
	"fmt"
	"strings"
)

// Kind is the closed set of type descriptor kinds.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindAddress
	KindBool
	KindFixedBytes
	KindBytes
	KindString
	KindFixedArray
	KindSlice
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "fixed-bytes"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return "fixed-array"
	case KindSlice:
		return "array"
	case KindTuple:
		return "tuple"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Type describes an ABI type.
//
// Size holds the bit width for KindUint/KindInt, the byte length for KindFixedBytes and
// the arity for KindFixedArray. Elem is set for array kinds, Components for tuples.
type Type struct {
	Kind       Kind
	Size       int
	Elem       *Type
	Components []Param
}

// Param is a named, typed position in a function's inputs or in a tuple.
type Param struct {
	Name string
	Type Type
}

// Elementary constructors

func Uint(bits int) Type { return Type{Kind: KindUint, Size: bits} }
func Int(bits int) Type { return Type{Kind: KindInt, Size: bits} }
func Address() Type { return Type{Kind: KindAddress} }
func Bool() Type { return Type{Kind: KindBool} }
func FixedBytes(n int) Type { return Type{Kind: KindFixedBytes, Size: n} }
func Bytes() Type { return Type{Kind: KindBytes} }
func String() Type { return Type{Kind: KindString} }
func SliceOf(elem Type) Type { return Type{Kind: KindSlice, Elem: &elem} }
func Tuple(fields ...Param) Type { return Type{Kind: KindTuple, Components: fields} }

func ArrayOf(elem Type, n int) Type {
	return Type{Kind: KindFixedArray, Size: n, Elem: &elem}
}

// Canonical returns the type as it appears in a canonical function signature.
func (t Type) Canonical() string {
	switch t.Kind {
	case KindUint:
		return fmt.Sprintf("uint%d", t.Size)
	case KindInt:
		return fmt.Sprintf("int%d", t.Size)
	case KindAddress:
		return "address"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return fmt.Sprintf("bytes%d", t.Size)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", t.Elem.Canonical(), t.Size)
	case KindSlice:
		return t.Elem.Canonical() + "[]"
	case KindTuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.Type.Canonical()
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return "?"
	}
}

// Full returns the human-readable form, keeping tuple field names.
func (t Type) Full() string {
	switch t.Kind {
	case KindFixedArray:
		return fmt.Sprintf("%s[%d]", t.Elem.Full(), t.Size)
	case KindSlice:
		return t.Elem.Full() + "[]"
	case KindTuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.Full()
		}
		return "tuple(" + strings.Join(parts, ", ") + ")"
	default:
		return t.Canonical()
	}
}

func (t Type) String() string { return t.Canonical() }

// Full returns "type name", or just the type for unnamed params.
func (p Param) Full() string {
	if p.Name == "" {
		return p.Type.Full()
	}
	return p.Type.Full() + " " + p.Name
}

// IsDynamic reports whether values of t are encoded in the tail.
func (t Type) IsDynamic() bool {
	switch t.Kind {
	case KindBytes, KindString, KindSlice:
		return true
	case KindFixedArray:
		return t.Elem.IsDynamic()
	case KindTuple:
		for _, c := range t.Components {
			if c.Type.IsDynamic() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsScalar reports whether t takes a single literal rather than a list.
func (t Type) IsScalar() bool {
	switch t.Kind {
	case KindFixedArray, KindSlice, KindTuple:
		return false
	default:
		return true
	}
}

// Equal reports structural equality, ignoring tuple field names.
func (t Type) Equal(other Type) bool {
	return t.Canonical() == other.Canonical()
}
