package abi

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain"
)

// Interface is a parsed contract interface: its functions in declaration order.
type Interface struct {
	Functions []FunctionSignature
}

// MutatingFunctions returns the functions that can be bundled, excluding pure and
// view functions and keeping declaration order.
func (i *Interface) MutatingFunctions() []FunctionSignature {
	if i == nil {
		return nil
	}
	return lo.Filter(i.Functions, func(f FunctionSignature, _ int) bool {
		return f.IsMutating()
	})
}

// FindFunction looks a function up by full or canonical signature text, falling
// back to its name when the name is unambiguous.
func (i *Interface) FindFunction(ref string) (FunctionSignature, bool) {
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, "(") {
		if want, err := ParseSignature(ref); err == nil {
			return lo.Find(i.Functions, func(f FunctionSignature) bool {
				return f.Canonical() == want.Canonical()
			})
		}
		return FunctionSignature{}, false
	}

	matches := lo.Filter(i.Functions, func(f FunctionSignature, _ int) bool {
		return f.Name == ref
	})
	if len(matches) != 1 {
		return FunctionSignature{}, false
	}
	return matches[0], true
}

// artifact is the subset of a forge or hardhat build artifact that carries the ABI.
type artifact struct {
	ABI json.RawMessage `json:"abi"`
}

// entry holds the fields of a JSON ABI entry that fix declaration order.
type entry struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ParseJSON parses a JSON ABI array, or a build artifact object with an "abi" key.
// Entries without a type are functions, as in ABIs emitted before solc 0.5.
func ParseJSON(data []byte) (*Interface, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var art artifact
		if err := json.Unmarshal(data, &art); err != nil {
			return nil, &domain.MalformedInterfaceError{Reason: err.Error()}
		}
		if len(art.ABI) == 0 {
			return nil, &domain.MalformedInterfaceError{Reason: "artifact has no abi"}
		}
		data = art.ABI
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.MalformedInterfaceError{Reason: err.Error()}
	}
	entries := make([]entry, len(raw))
	for idx, fields := range raw {
		var e entry
		for key, dst := range map[string]*string{"type": &e.Type, "name": &e.Name} {
			if v, ok := fields[key]; ok {
				if err := json.Unmarshal(v, dst); err != nil {
					return nil, &domain.MalformedInterfaceError{Reason: "entry " + strconv.Itoa(idx) + ": " + err.Error()}
				}
			}
		}
		if e.Type == "" {
			e.Type = "function"
			fields["type"] = json.RawMessage(`"function"`)
		}
		if e.Type == "function" && e.Name == "" {
			return nil, &domain.MalformedInterfaceError{Reason: "function fragment " + strconv.Itoa(idx) + " has no name"}
		}
		entries[idx] = e
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, &domain.MalformedInterfaceError{Reason: err.Error()}
	}
	parsed, err := gethabi.JSON(bytes.NewReader(normalized))
	if err != nil {
		return nil, &domain.MalformedInterfaceError{Reason: err.Error()}
	}

	// go-ethereum keys overloads as name, name0, name1... in declaration order
	iface := &Interface{}
	used := make(map[string]bool)
	for _, e := range entries {
		if e.Type != "function" {
			continue
		}
		key := gethabi.ResolveNameConflict(e.Name, func(s string) bool { return used[s] })
		used[key] = true

		method, ok := parsed.Methods[key]
		if !ok {
			return nil, &domain.MalformedInterfaceError{Fragment: e.Name, Reason: "function missing from parsed abi"}
		}
		fn, err := functionFromGeth(method)
		if err != nil {
			return nil, &domain.MalformedInterfaceError{Fragment: method.Sig, Reason: err.Error()}
		}
		iface.Functions = append(iface.Functions, fn)
	}

	return iface, nil
}

func functionFromGeth(m gethabi.Method) (FunctionSignature, error) {
	inputs, err := paramsFromGeth(m.Inputs)
	if err != nil {
		return FunctionSignature{}, err
	}
	outputs, err := paramsFromGeth(m.Outputs)
	if err != nil {
		return FunctionSignature{}, err
	}
	return FunctionSignature{
		Name:       m.RawName,
		Inputs:     inputs,
		Outputs:    outputs,
		Mutability: mutabilityOf(m),
	}, nil
}

// ParseHumanReadable parses one function fragment per line. Blank lines, "//"
// comments and non-function fragments (events, errors) are skipped.
func ParseHumanReadable(text string) (*Interface, error) {
	iface := &Interface{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSuffix(line, ";")
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		first, _, _ := strings.Cut(line, " ")
		switch first {
		case "event", "error", "constructor", "fallback", "receive":
			continue
		}

		fn, err := ParseSignature(line)
		if err != nil {
			return nil, err
		}
		iface.Functions = append(iface.Functions, fn)
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.MalformedInterfaceError{Reason: err.Error()}
	}
	return iface, nil
}

// ParseInterface detects the description format and parses it.
func ParseInterface(data []byte) (*Interface, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return ParseJSON(trimmed)
	}
	return ParseHumanReadable(string(trimmed))
}

func mutabilityOf(m gethabi.Method) Mutability {
	switch m.StateMutability {
	case "pure":
		return Pure
	case "view":
		return View
	case "payable":
		return Payable
	case "nonpayable":
		return NonPayable
	}
	// pre-0.5 ABIs only carry the constant and payable flags
	if m.Constant {
		return View
	}
	if m.Payable {
		return Payable
	}
	return NonPayable
}
