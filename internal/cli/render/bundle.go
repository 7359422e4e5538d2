package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain/abi"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// BundleRenderer renders the session bundle and its flattened calls
type BundleRenderer struct {
	out  io.Writer
	json bool
}

// NewBundleRenderer creates a new bundle renderer
func NewBundleRenderer(out io.Writer, json bool) *BundleRenderer {
	return &BundleRenderer{out: out, json: json}
}

type bundleEntryJSON struct {
	models.BundleRecord
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

type bundleJSON struct {
	Path    string            `json:"path"`
	Calls   []bundleEntryJSON `json:"calls"`
	Removed []string          `json:"removed,omitempty"`
}

// Render renders the bundle after an operation
func (r *BundleRenderer) Render(result *usecase.BundleResult) error {
	if r.json {
		return JSON(r.out, bundleJSON{
			Path: result.Path,
			Calls: lo.Map(result.Entries, func(e usecase.BundleEntry, _ int) bundleEntryJSON {
				return bundleEntryJSON{BundleRecord: models.RecordOf(e.Call), Valid: e.Valid, Problems: e.Problems}
			}),
			Removed: result.Removed,
		})
	}

	if result.Call != nil {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %s", result.Call.ID, result.Call.Function.Canonical())))
	}
	if len(result.Removed) > 0 {
		fmt.Fprintln(r.out, FormatSuccess("Removed "+strings.Join(result.Removed, ", ")))
	}

	if len(result.Entries) == 0 {
		fmt.Fprintln(r.out, "Bundle is empty")
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{
		headerStyle.Sprint("#"),
		headerStyle.Sprint("ID"),
		headerStyle.Sprint("CALL"),
		headerStyle.Sprint("TO"),
		headerStyle.Sprint("STATUS"),
	})
	for i, entry := range result.Entries {
		t.AppendRow(table.Row{
			i + 1,
			idStyle.Sprint(entry.Call.ID),
			callLabel(entry.Call),
			targetLabel(entry.Call),
			statusLabel(entry),
		})
	}
	t.Render()

	invalid := lo.Filter(result.Entries, func(e usecase.BundleEntry, _ int) bool { return !e.Valid })
	if len(invalid) > 0 {
		fmt.Fprintln(r.out)
		for _, entry := range invalid {
			for _, p := range entry.Problems {
				fmt.Fprintln(r.out, invalidStyle.Sprintf("  %s: %s", entry.Call.ID, p))
			}
		}
	}

	fmt.Fprintln(r.out, faintStyle.Sprintf("\n📁 %s", getRelativePath(result.Path)))
	return nil
}

func callLabel(call models.PendingCall) string {
	args := lo.Map(call.Args, func(v abi.ParamValue, _ int) string { return v.Raw().String() })
	return fmt.Sprintf("%s(%s)", call.Function.Name, strings.Join(args, ", "))
}

func targetLabel(call models.PendingCall) string {
	target := addressStyle.Sprint(call.To.Hex())
	if call.Module != nil {
		target += " " + moduleStyle.Sprintf("[%s]", call.Module.Type)
	}
	return target
}

func statusLabel(entry usecase.BundleEntry) string {
	if entry.Valid {
		return validStyle.Sprint("✓ valid")
	}
	return invalidStyle.Sprintf("✗ %d problem(s)", len(entry.Problems))
}

var _ Renderer[*usecase.BundleResult] = (*BundleRenderer)(nil)

// FlattenRenderer renders flattened calls
type FlattenRenderer struct {
	out  io.Writer
	json bool
}

// NewFlattenRenderer creates a new flatten renderer
func NewFlattenRenderer(out io.Writer, json bool) *FlattenRenderer {
	return &FlattenRenderer{out: out, json: json}
}

// Render renders the calls handed to the dispatcher
func (r *FlattenRenderer) Render(result *usecase.FlattenBundleResult) error {
	calls := result.Dispatch()
	if r.json {
		return JSON(r.out, calls)
	}

	if result.Packed != nil {
		fmt.Fprintf(r.out, "%d calls packed into multiSend on %s\n\n", len(result.Calls), result.MultiSend.Hex())
	}
	renderCalls(r.out, calls)
	return nil
}

var _ Renderer[*usecase.FlattenBundleResult] = (*FlattenRenderer)(nil)

// renderCalls prints executable calls as a table
func renderCalls(out io.Writer, calls []models.Call) {
	t := newTable(out)
	t.AppendHeader(table.Row{
		headerStyle.Sprint("#"),
		headerStyle.Sprint("OP"),
		headerStyle.Sprint("TO"),
		headerStyle.Sprint("VALUE"),
		headerStyle.Sprint("DATA"),
	})
	for i, call := range calls {
		t.AppendRow(table.Row{
			i + 1,
			call.Operation.String(),
			addressStyle.Sprint(call.To.Hex()),
			call.ValueOrZero().String(),
			faintStyle.Sprint(truncateHex(call.Data.String(), 66)),
		})
	}
	t.Render()
}

// ExportRenderer renders export results
type ExportRenderer struct {
	out io.Writer
}

// NewExportRenderer creates a new export renderer
func NewExportRenderer(out io.Writer) *ExportRenderer {
	return &ExportRenderer{out: out}
}

// Render reports where the batch went. Batches written to stdout print nothing more.
func (r *ExportRenderer) Render(result *usecase.ExportBundleResult) error {
	switch result.Output {
	case "-":
		return nil
	case "":
		return JSON(r.out, result.Batch)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Exported %d transaction(s) for chain %s", len(result.Batch.Transactions), result.Batch.ChainID)))
	fmt.Fprintf(r.out, "📁 %s (%s)\n", getRelativePath(result.Output), result.Format)
	return nil
}

var _ Renderer[*usecase.ExportBundleResult] = (*ExportRenderer)(nil)
