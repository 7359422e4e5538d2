package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ztx/internal/cli/render"
	"github.com/trebuchet-org/ztx/internal/domain"
	"github.com/trebuchet-org/ztx/internal/domain/models"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// NewBundleCmd creates the bundle command
func NewBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage the pending call bundle",
		Long: `Manage the bundle of pending calls stored in .ztx/bundle.json.

When run without subcommands, lists the bundle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBundle(cmd)
		},
	}

	cmd.AddCommand(newBundleAddCmd())
	cmd.AddCommand(newBundleRemoveCmd())
	cmd.AddCommand(newBundleReplaceCmd())
	cmd.AddCommand(newBundleReorderCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the pending calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBundle(cmd)
		},
	})
	cmd.AddCommand(newBundleFlattenCmd())
	cmd.AddCommand(newBundleExportCmd())
	cmd.AddCommand(newBundleClearCmd())

	return cmd
}

func listBundle(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageBundle.List(cmd.Context())
	if err != nil {
		return err
	}
	return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
}

func newBundleAddCmd() *cobra.Command {
	var (
		interfaceRef string
		to           string
		id           string
		module       string
	)

	cmd := &cobra.Command{
		Use:   "add [function] [args...]",
		Short: "Queue a call at the end of the bundle",
		Long: `Queue a call at the end of the bundle.

The function is a name from --abi or a full signature. Without a function
an interactive picker lists the state-changing functions of --abi. Missing
or invalid arguments are prompted for unless --non-interactive is set.

The call targets --to, else the module given with --module, else the account.

Examples:
  ztx bundle add transfer 0xdead...beef 1000 --abi Token --to 0x...
  ztx bundle add --abi Token
  ztx bundle add "function setTxCooldown(uint256 cooldown)" 3600 --module delay:0x...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ref, err := parseModuleRef(module)
			if err != nil {
				return err
			}

			params := usecase.AddCallParams{
				InterfaceRef: interfaceRef,
				To:           to,
				ID:           id,
				Module:       ref,
				Interactive:  !app.Config.NonInteractive,
			}
			if len(args) > 0 {
				params.Function = args[0]
				params.Args = args[1:]
			}

			result, err := app.ManageBundle.Add(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&interfaceRef, "abi", "", "Contract interface (file or contract name)")
	cmd.Flags().StringVar(&to, "to", "", "Call target address")
	cmd.Flags().StringVar(&id, "id", "", "Call id (generated when empty)")
	cmd.Flags().StringVar(&module, "module", "", "Owning module as <type>:<address>")

	return cmd
}

// parseModuleRef reads a <type>:<address> module reference
func parseModuleRef(s string) (*models.ModuleRef, error) {
	if s == "" {
		return nil, nil
	}
	moduleType, address, ok := strings.Cut(s, ":")
	if !ok || moduleType == "" {
		return nil, fmt.Errorf("module must be <type>:<address>, got %q", s)
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("module address %q: %w", address, domain.ErrInvalidAddress)
	}
	return &models.ModuleRef{Type: moduleType, Address: common.HexToAddress(address)}, nil
}

func newBundleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove calls from the bundle",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageBundle.Remove(cmd.Context(), args)
			if err != nil {
				return err
			}
			if len(result.Removed) == 0 && !app.Config.JSON {
				fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning("No matching calls in the bundle"))
			}
			return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}
}

func newBundleReplaceCmd() *cobra.Command {
	var (
		to          string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "replace <id> [args...]",
		Short: "Replace the arguments or target of a queued call",
		Long: `Replace a queued call in place, keeping its id, function and position.

Examples:
  ztx bundle replace transfer_1712345678901 0xdead...beef 2000
  ztx bundle replace transfer_1712345678901 --to 0x...
  ztx bundle replace transfer_1712345678901 -i`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageBundle.Replace(cmd.Context(), usecase.ReplaceCallParams{
				ID:          args[0],
				Args:        args[1:],
				To:          to,
				Interactive: interactive,
			})
			if err != nil {
				return err
			}
			return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New call target address")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit the arguments interactively")

	return cmd
}

func newBundleReorderCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "reorder [id...]",
		Short: "Reorder the bundle",
		Long: `Reorder the bundle. The ids must list every queued call exactly once.

Examples:
  ztx bundle reorder approve_1712345678901 transfer_1712345678902
  ztx bundle reorder -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 && !interactive {
				return fmt.Errorf("pass the new id order or use --interactive")
			}

			result, err := app.ManageBundle.Reorder(cmd.Context(), usecase.ReorderBundleParams{
				IDs:         args,
				Interactive: interactive,
			})
			if err != nil {
				return err
			}
			return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Reorder interactively")

	return cmd
}

func newBundleFlattenCmd() *cobra.Command {
	var multiSend bool

	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Print the executable calls of the bundle",
		Long: `Encode every queued call into (to, value, data). With --multisend the
calls are packed into a single delegatecall to the chain's MultiSend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.FlattenBundle.Run(cmd.Context(), usecase.FlattenBundleParams{MultiSend: multiSend})
			if err != nil {
				return err
			}
			return render.NewFlattenRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().BoolVar(&multiSend, "multisend", false, "Pack the calls into one MultiSend call")

	return cmd
}

func newBundleExportCmd() *cobra.Command {
	var (
		name        string
		description string
		multiSend   bool
		output      string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the bundle as a Safe Transaction Builder batch",
		Long: `Export the flattened bundle in the Safe Transaction Builder batch format.

Examples:
  ztx bundle export > batch.json
  ztx bundle export -o batch.yaml --format yaml --name "Enable exit module"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ExportBundle.Run(cmd.Context(), usecase.ExportBundleParams{
				Name:        name,
				Description: description,
				MultiSend:   multiSend,
				Output:      output,
				Format:      usecase.ExportFormat(format),
				CreatedAt:   time.Now(),
			})
			if err != nil {
				return err
			}
			return render.NewExportRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", usecase.DefaultBatchName, "Batch name")
	cmd.Flags().StringVar(&description, "description", "", "Batch description")
	cmd.Flags().BoolVar(&multiSend, "multisend", false, "Export a single MultiSend transaction")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", string(usecase.ExportFormatJSON), "Output format (json, yaml)")

	return cmd
}

func newBundleClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every call from the bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageBundle.Clear(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewBundleRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}
}
