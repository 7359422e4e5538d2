package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ztx/internal/domain/config"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// moduleTitle title-cases a module type tag
func moduleTitle(moduleType string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(moduleType, "-", " "))
}

// PlanRenderer renders module deployment plans
type PlanRenderer struct {
	out  io.Writer
	json bool
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer, json bool) *PlanRenderer {
	return &PlanRenderer{out: out, json: json}
}

type planJSON struct {
	ModuleType       string            `json:"moduleType"`
	Kind             models.ModuleKind `json:"kind"`
	Account          string            `json:"account"`
	ChainID          uint64            `json:"chainId"`
	Module           string            `json:"module"`
	AlreadyDeployed  bool              `json:"alreadyDeployed"`
	SaltNonce        string            `json:"saltNonce,omitempty"`
	Factory          string            `json:"factory,omitempty"`
	Mastercopy       string            `json:"mastercopy,omitempty"`
	Initializer      hexutil.Bytes     `json:"initializer,omitempty"`
	Calls            []models.Call     `json:"calls"`
	Added            []string          `json:"added,omitempty"`
}

func planToJSON(plan *models.ModuleDeploymentPlan, added []string) planJSON {
	out := planJSON{
		ModuleType:      plan.ModuleType,
		Kind:            plan.Kind,
		Account:         plan.Account.Hex(),
		ChainID:         plan.ChainID,
		Module:          plan.ModuleAddress().Hex(),
		AlreadyDeployed: plan.AlreadyDeployed,
		Calls:           plan.Calls,
		Added:           added,
	}
	if plan.Kind == models.ModuleKindFactory {
		out.SaltNonce = plan.SaltNonce.Big().String()
		out.Factory = plan.Factory.Hex()
		out.Mastercopy = plan.Mastercopy.Hex()
		out.Initializer = plan.Initializer
	}
	return out
}

// Render renders the plan
func (r *PlanRenderer) Render(result *usecase.PlanModuleResult) error {
	added := lo.Map(result.Added, func(c models.PendingCall, _ int) string { return c.ID })
	if r.json {
		return JSON(r.out, planToJSON(result.Plan, added))
	}

	r.renderPlan(result.Plan)

	if len(added) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatSuccess("Added to bundle: "+strings.Join(added, ", ")))
		fmt.Fprintln(r.out, faintStyle.Sprintf("📁 %s", getRelativePath(result.BundlePath)))
	}
	return nil
}

func (r *PlanRenderer) renderPlan(plan *models.ModuleDeploymentPlan) {
	fmt.Fprintln(r.out, headerStyle.Sprintf("%s module (%s)", moduleTitle(plan.ModuleType), plan.Kind))
	fmt.Fprintf(r.out, "Account:  %s\n", addressStyle.Sprint(plan.Account.Hex()))
	fmt.Fprintf(r.out, "Chain:    %d\n", plan.ChainID)
	fmt.Fprintf(r.out, "Module:   %s\n", moduleStyle.Sprint(plan.ModuleAddress().Hex()))

	if len(plan.Params) > 0 {
		fmt.Fprintln(r.out)
		for i, p := range plan.Params {
			if i < len(plan.Values) {
				fmt.Fprintf(r.out, "  %s %s = %s\n", p.Name, faintStyle.Sprintf("(%s)", p.Type.Canonical()), plan.Values[i].Raw())
			}
		}
	}

	if plan.Kind == models.ModuleKindFactory {
		fmt.Fprintln(r.out)
		fmt.Fprintf(r.out, "Factory:     %s\n", plan.Factory.Hex())
		fmt.Fprintf(r.out, "Mastercopy:  %s\n", plan.Mastercopy.Hex())
		fmt.Fprintf(r.out, "Salt nonce:  %s\n", plan.SaltNonce.Big().String())
		if plan.AlreadyDeployed {
			fmt.Fprintln(r.out, FormatWarning("Module already deployed at the predicted address, only enabling it"))
		}
	}

	fmt.Fprintln(r.out)
	renderCalls(r.out, plan.Calls)
}

var _ Renderer[*usecase.PlanModuleResult] = (*PlanRenderer)(nil)

// RenderCustom renders a custom module enable
func (r *PlanRenderer) RenderCustom(result *usecase.AddCustomModuleResult) error {
	if result.Added != nil {
		if r.json {
			return JSON(r.out, models.RecordOf(*result.Added))
		}
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Queued %s for module %s", result.Added.ID, result.Module.Hex())))
		fmt.Fprintln(r.out, faintStyle.Sprintf("📁 %s", getRelativePath(result.BundlePath)))
		return nil
	}

	if r.json {
		return JSON(r.out, planToJSON(result.Plan, nil))
	}
	r.renderPlan(result.Plan)
	return nil
}

// ModulesRenderer renders the module catalog
type ModulesRenderer struct {
	out  io.Writer
	json bool
}

// NewModulesRenderer creates a new modules renderer
func NewModulesRenderer(out io.Writer, json bool) *ModulesRenderer {
	return &ModulesRenderer{out: out, json: json}
}

type moduleJSON struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Kind        string               `json:"kind"`
	ReadMore    string               `json:"readMore,omitempty"`
	Params      []config.ModuleParam `json:"params"`
	Supported   bool                 `json:"supported"`
	Problem     string               `json:"problem,omitempty"`
}

// Render renders the module list
func (r *ModulesRenderer) Render(result *usecase.ListModulesResult) error {
	if r.json {
		return JSON(r.out, lo.Map(result.Modules, func(m usecase.ModuleSummary, _ int) moduleJSON {
			return moduleJSON(m)
		}))
	}

	fmt.Fprintf(r.out, "Module types on chain %d (%s)\n\n", result.ChainID, result.Source)

	t := newTable(r.out)
	t.AppendHeader(table.Row{
		headerStyle.Sprint("TYPE"),
		headerStyle.Sprint("KIND"),
		headerStyle.Sprint("PARAMETERS"),
		headerStyle.Sprint("DESCRIPTION"),
	})
	for _, m := range result.Modules {
		name := idStyle.Sprint(moduleTitle(m.Name)) + faintStyle.Sprintf(" (%s)", m.Name)
		kind := m.Kind
		if !m.Supported {
			kind = invalidStyle.Sprint("unsupported")
		}
		params := lo.FilterMap(m.Params, func(p config.ModuleParam, _ int) (string, bool) {
			return fmt.Sprintf("%s %s", p.Type, p.Name), p.Source == ""
		})
		t.AppendRow(table.Row{name, kind, strings.Join(params, ", "), m.Description})
	}
	t.Render()

	for _, m := range result.Modules {
		if m.Problem != "" {
			fmt.Fprintln(r.out, FormatWarning(m.Problem))
		}
	}
	return nil
}

var _ Renderer[*usecase.ListModulesResult] = (*ModulesRenderer)(nil)
