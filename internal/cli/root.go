package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/ztx/internal/adapters/progress"
	"github.com/trebuchet-org/ztx/internal/app"
	"github.com/trebuchet-org/ztx/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ztx",
		Short: "Transaction bundle and module deployment builder for Safe accounts",
		Long: `ztx builds batches of contract calls for a Safe account: it
validates arguments against contract interfaces, queues calls in a
persistent bundle, plans module deployments and exports the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper and bind flags
			v := config.SetupViper(projectRoot, cmd)

			sink := progress.NewSink(v.GetBool("non_interactive"), v.GetBool("json"))

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil {
				a.Close()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("account", "", "Safe account address")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Chain ID (defaults to 1)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC endpoint used to check deployed code")
	rootCmd.PersistentFlags().String("bundle", "", "Bundle file (defaults to .ztx/bundle.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	functionsCmd := NewFunctionsCmd()
	functionsCmd.GroupID = "main"
	rootCmd.AddCommand(functionsCmd)

	validateCmd := NewValidateCmd()
	validateCmd.GroupID = "main"
	rootCmd.AddCommand(validateCmd)

	bundleCmd := NewBundleCmd()
	bundleCmd.GroupID = "main"
	rootCmd.AddCommand(bundleCmd)

	moduleCmd := NewModuleCmd()
	moduleCmd.GroupID = "main"
	rootCmd.AddCommand(moduleCmd)

	// Management commands
	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// skipsApp reports whether cmd runs without project wiring
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "__complete":
		return true
	}
	return !cmd.Runnable()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
