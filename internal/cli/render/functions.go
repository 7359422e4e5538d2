package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// FunctionsRenderer renders interface function lists
type FunctionsRenderer struct {
	out  io.Writer
	json bool
}

// NewFunctionsRenderer creates a new functions renderer
func NewFunctionsRenderer(out io.Writer, json bool) *FunctionsRenderer {
	return &FunctionsRenderer{out: out, json: json}
}

type functionJSON struct {
	Name       string `json:"name"`
	Signature  string `json:"signature"`
	Selector   string `json:"selector"`
	Mutability string `json:"mutability"`
}

func functionsJSON(functions []abi.FunctionSignature) []functionJSON {
	out := make([]functionJSON, len(functions))
	for i, fn := range functions {
		sel := fn.Selector()
		out[i] = functionJSON{
			Name:       fn.Name,
			Signature:  fn.Full(),
			Selector:   hexutil.Encode(sel[:]),
			Mutability: string(fn.Mutability),
		}
	}
	return out
}

// Render renders the function list
func (r *FunctionsRenderer) Render(result *usecase.ListFunctionsResult) error {
	if r.json {
		return JSON(r.out, functionsJSON(result.Functions))
	}

	if len(result.Functions) == 0 {
		fmt.Fprintf(r.out, "No callable functions in %s\n", result.InterfaceRef)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{
		headerStyle.Sprint("SELECTOR"),
		headerStyle.Sprint("FUNCTION"),
		headerStyle.Sprint("MUTABILITY"),
	})
	for _, fn := range result.Functions {
		sel := fn.Selector()
		t.AppendRow(table.Row{
			faintStyle.Sprint(hexutil.Encode(sel[:])),
			idStyle.Sprint(fn.Name) + strings.TrimPrefix(fn.Full(), "function "+fn.Name),
			string(fn.Mutability),
		})
	}
	t.Render()

	if hidden := result.Total - len(result.Functions); hidden > 0 {
		fmt.Fprintln(r.out, faintStyle.Sprintf("\n%d read-only functions hidden, use --all to show them", hidden))
	}
	return nil
}

var _ Renderer[*usecase.ListFunctionsResult] = (*FunctionsRenderer)(nil)

// ValidationRenderer renders argument validation results
type ValidationRenderer struct {
	out  io.Writer
	json bool
}

// NewValidationRenderer creates a new validation renderer
func NewValidationRenderer(out io.Writer, json bool) *ValidationRenderer {
	return &ValidationRenderer{out: out, json: json}
}

type validationJSON struct {
	Function string        `json:"function"`
	Valid    bool          `json:"valid"`
	Args     []abi.Raw     `json:"args"`
	Problems []string      `json:"problems,omitempty"`
	Calldata hexutil.Bytes `json:"calldata,omitempty"`
}

// Render renders the validation result
func (r *ValidationRenderer) Render(result *usecase.ValidateArgumentsResult) error {
	if r.json {
		args := make([]abi.Raw, len(result.Values))
		for i, v := range result.Values {
			args[i] = v.Raw()
		}
		return JSON(r.out, validationJSON{
			Function: result.Function.Canonical(),
			Valid:    result.Valid,
			Args:     args,
			Problems: result.Problems,
			Calldata: result.Calldata,
		})
	}

	fmt.Fprintln(r.out, idStyle.Sprint(result.Function.Full()))
	for i, input := range result.Function.Inputs {
		name := input.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		var value abi.ParamValue
		if i < len(result.Values) {
			value = result.Values[i]
		}
		mark := validStyle.Sprint("✓")
		if !value.Valid {
			mark = invalidStyle.Sprint("✗")
		}
		fmt.Fprintf(r.out, "  %s %s %s = %s\n", mark, name, faintStyle.Sprintf("(%s)", input.Type.Canonical()), value.Raw())
	}

	if !result.Valid {
		fmt.Fprintln(r.out)
		for _, p := range result.Problems {
			fmt.Fprintln(r.out, invalidStyle.Sprintf("  %s", p))
		}
		return nil
	}

	fmt.Fprintf(r.out, "\nCalldata: %s\n", result.Calldata)
	return nil
}

var _ Renderer[*usecase.ValidateArgumentsResult] = (*ValidationRenderer)(nil)
