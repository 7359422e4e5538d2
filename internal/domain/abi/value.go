package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Raw is an argument literal as supplied by a user or read back from storage: a
// single text literal, or a list of literals for arrays and tuples.
//
// Raw marshals to a JSON string or a JSON array of Raw, which is also the
// persisted argument format of a bundle.
type Raw struct {
	Text   string
	List   []Raw
	IsList bool
}

// Text wraps a scalar literal.
func Text(s string) Raw { return Raw{Text: s} }

// List wraps a sequence of literals.
func List(items ...Raw) Raw {
	if items == nil {
		items = []Raw{}
	}
	return Raw{List: items, IsList: true}
}

// Texts is shorthand for a list of scalar literals.
func Texts(items ...string) Raw {
	list := make([]Raw, len(items))
	for i, s := range items {
		list[i] = Text(s)
	}
	return List(list...)
}

// ParseRaw reads command-line input. Input starting with '[' is decoded as a JSON
// array whose strings, numbers and booleans become text literals; anything else is
// taken verbatim as a single literal.
func ParseRaw(s string) (Raw, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return Text(s), nil
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Raw{}, fmt.Errorf("failed to parse list literal: %w", err)
	}
	return rawFromJSON(v)
}

func rawFromJSON(v any) (Raw, error) {
	switch val := v.(type) {
	case string:
		return Text(val), nil
	case json.Number:
		return Text(val.String()), nil
	case bool:
		if val {
			return Text("true"), nil
		}
		return Text("false"), nil
	case []any:
		items := make([]Raw, len(val))
		for i, item := range val {
			r, err := rawFromJSON(item)
			if err != nil {
				return Raw{}, err
			}
			items[i] = r
		}
		return List(items...), nil
	case nil:
		return Raw{}, fmt.Errorf("null is not a valid literal")
	default:
		return Raw{}, fmt.Errorf("unsupported literal %T", v)
	}
}

// MarshalJSON implements json.Marshaler.
func (r Raw) MarshalJSON() ([]byte, error) {
	if r.IsList {
		if r.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.List)
	}
	return json.Marshal(r.Text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Raw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []Raw
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*r = List(items...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("argument literal must be a string or a list: %w", err)
	}
	*r = Text(s)
	return nil
}

// MarshalYAML renders the literal as a YAML scalar or sequence.
func (r Raw) MarshalYAML() (any, error) {
	if r.IsList {
		if r.List == nil {
			return []Raw{}, nil
		}
		return r.List, nil
	}
	return r.Text, nil
}

// UnmarshalYAML reads a YAML scalar or sequence. Plain numbers and booleans
// become their decimal or true/false text.
func (r *Raw) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	raw, err := rawFromYAML(v)
	if err != nil {
		return err
	}
	*r = raw
	return nil
}

func rawFromYAML(v any) (Raw, error) {
	switch val := v.(type) {
	case int, int64, uint64, float64:
		return Text(fmt.Sprint(val)), nil
	case []any:
		items := make([]Raw, len(val))
		for i, item := range val {
			r, err := rawFromYAML(item)
			if err != nil {
				return Raw{}, err
			}
			items[i] = r
		}
		return List(items...), nil
	default:
		return rawFromJSON(v)
	}
}

// String renders the literal the way ParseRaw accepts it.
func (r Raw) String() string {
	if !r.IsList {
		return r.Text
	}
	b, _ := json.Marshal(r)
	return string(b)
}

// ParamValue is a value bound to a parameter position. Scalars carry their
// normalised Literal, arrays and tuples carry Elems. Valid is true only when the
// whole value, recursively, passed validation against Type.
type ParamValue struct {
	Type    Type
	Literal string
	Elems   []ParamValue
	Valid   bool
	Problem string
	// Source is the literal an invalid value was validated from
	Source *Raw
}

// Raw converts the value back to its literal form. Valid values yield their
// normalised literals, invalid ones the input exactly as supplied.
func (v ParamValue) Raw() Raw {
	if !v.Valid && v.Source != nil {
		return *v.Source
	}
	if v.Type.IsScalar() {
		return Text(v.Literal)
	}
	items := make([]Raw, len(v.Elems))
	for i, e := range v.Elems {
		items[i] = e.Raw()
	}
	return List(items...)
}

// Problems lists every validation problem in the value tree with its path.
func (v ParamValue) Problems(path string) []string {
	var out []string
	if v.Problem != "" {
		out = append(out, fmt.Sprintf("%s: %s", path, v.Problem))
	}
	for i, e := range v.Elems {
		out = append(out, e.Problems(fmt.Sprintf("%s[%d]", path, i))...)
	}
	return out
}

// AllValid reports whether values can be encoded for params: one valid value per
// parameter. Every ABI parameter is required, so an untouched parameter blocks.
func AllValid(params []Param, values []ParamValue) bool {
	if len(params) != len(values) {
		return false
	}
	for i, v := range values {
		if !v.Valid || !v.Type.Equal(params[i].Type) {
			return false
		}
	}
	return true
}
