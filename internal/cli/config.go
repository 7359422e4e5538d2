package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ztx/internal/cli/render"
	"github.com/trebuchet-org/ztx/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ztx local config",
		Long: `Manage ztx local config stored in .ztx/config.local.json

The config defines default values for the account, chain id and RPC URL
that are used when these flags are not explicitly provided.

Available subcommands:
  config           Show current config
  config set       Set a config value
  config remove    Remove a config value

When run without subcommands, displays the current config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default action is to show config
			return showConfig(cmd)
		},
	}

	// Add subcommands
	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: `Set a config value in .ztx/config.local.json.
Available keys: account (safe), chain-id (chain), rpc-url (rpc)

Examples:
  ztx config set account 0x...
  ztx config set chain-id 100
  ztx config set rpc-url https://rpc.gnosischain.com`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			}

			result, err := app.SetConfig.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render result
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a config value",
		Long: `Remove a config value from .ztx/config.local.json.
Removed values fall back to flags, ZTX_* environment variables or defaults.

Examples:
  ztx config remove account
  ztx config remove rpc-url`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RemoveConfigParams{
				Key: args[0],
			}

			result, err := app.RemoveConfig.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			// Render result
			renderer := render.NewConfigRenderer(cmd.OutOrStdout())
			return renderer.RenderRemove(result)
		},
	}
}

// showConfig displays the current configuration
func showConfig(cmd *cobra.Command) error {
	// Get app from context
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	if app.Config.JSON {
		return render.JSON(cmd.OutOrStdout(), result.Config)
	}

	// Render result
	renderer := render.NewConfigRenderer(cmd.OutOrStdout())
	return renderer.RenderConfig(result)
}
