package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ztx/internal/cli/render"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// NewFunctionsCmd creates the functions command
func NewFunctionsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "functions <interface>",
		Short: "List the callable functions of a contract interface",
		Long: `List the state-changing functions of a contract interface.

The interface is a JSON ABI file, a forge or hardhat artifact, a file of
human-readable signatures (one per line) or a contract name found in out/.

Examples:
  ztx functions out/Token.sol/Token.json
  ztx functions Token --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListFunctions.Run(cmd.Context(), usecase.ListFunctionsParams{
				InterfaceRef: args[0],
				All:          all,
			})
			if err != nil {
				return err
			}

			return render.NewFunctionsRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include view and pure functions")

	return cmd
}

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var interfaceRef string

	cmd := &cobra.Command{
		Use:   "validate <function> [args...]",
		Short: "Validate call arguments and print the calldata",
		Long: `Validate arguments against a function and print the encoded calldata.

The function is a name from --abi or a full signature. Array and tuple
arguments are JSON lists.

Examples:
  ztx validate transfer 0xdead...beef 1000 --abi Token
  ztx validate "function setOwners(address[] owners)" '["0x...","0x..."]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ValidateArguments.Run(cmd.Context(), usecase.ValidateArgumentsParams{
				InterfaceRef: interfaceRef,
				Function:     args[0],
				Args:         args[1:],
			})
			if err != nil {
				return err
			}

			return render.NewValidationRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVar(&interfaceRef, "abi", "", "Contract interface (file or contract name)")

	return cmd
}
