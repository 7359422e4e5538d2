package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ztx/internal/cli/render"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// NewModuleCmd creates the module command
func NewModuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Plan Safe module deployments",
		Long: `Plan the calls that deploy and enable a Safe module on the account.

Module types come from the embedded catalog, extended by ztx.toml.`,
	}

	cmd.AddCommand(newModuleListCmd())
	cmd.AddCommand(newModulePlanCmd())
	cmd.AddCommand(newModuleAddCustomCmd())

	return cmd
}

func newModuleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the module types of the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListModules.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewModulesRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}
}

func newModulePlanCmd() *cobra.Command {
	var addToBundle bool

	cmd := &cobra.Command{
		Use:   "plan <type> [param=value...]",
		Short: "Plan the deployment of a module",
		Long: `Plan the deployment of a module for the account.

Factory modules get a deterministic address; when --rpc-url is set the
deployment is skipped if code already exists there.

Examples:
  ztx module plan exit tokenContract=0x...
  ztx module plan exit tokenContract=0x... --add`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			values, err := parseKeyValues(args[1:])
			if err != nil {
				return err
			}

			result, err := app.PlanModule.Run(cmd.Context(), usecase.PlanModuleParams{
				ModuleType:  args[0],
				Config:      values,
				AddToBundle: addToBundle,
			})
			if err != nil {
				return err
			}
			return render.NewPlanRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().BoolVar(&addToBundle, "add", false, "Queue the plan calls in the bundle")

	return cmd
}

// parseKeyValues reads name=value pairs. A repeated name is an error.
func parseKeyValues(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected param=value, got %q", arg)
		}
		if _, dup := values[key]; dup {
			return nil, fmt.Errorf("parameter %s given twice", key)
		}
		values[key] = value
	}
	return values, nil
}

func newModuleAddCustomCmd() *cobra.Command {
	var toBundle bool

	cmd := &cobra.Command{
		Use:   "add-custom <address>",
		Short: "Enable an already deployed module",
		Long: `Enable an existing module contract on the account, either as a direct
plan or queued as an enableModule call in the bundle.

Examples:
  ztx module add-custom 0x...
  ztx module add-custom 0x... --queue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.AddCustomModule.Run(cmd.Context(), usecase.AddCustomModuleParams{
				Address:  args[0],
				ToBundle: toBundle,
			})
			if err != nil {
				return err
			}
			return render.NewPlanRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderCustom(result)
		},
	}

	cmd.Flags().BoolVar(&toBundle, "queue", false, "Queue the enableModule call in the bundle")

	return cmd
}
