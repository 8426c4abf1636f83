package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/progress"
	"github.com/trebuchet-org/tvk-deploy/internal/app"
	"github.com/trebuchet-org/tvk-deploy/internal/config"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// appInitializer builds the application from resolved configuration
type appInitializer func(v *viper.Viper, sink usecase.ProgressSink, logOutput io.Writer) (*app.App, error)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.InitApp)
}

func newRootCmd(initApp appInitializer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tvk-deploy",
		Short: "Deploy the TVKTest token contract",
		Long: `tvk-deploy deploys the compiled TVKTest token contract to a test network
(Polygon Mumbai by default), waits for the deployment to be mined and prints
the contract address.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, _ := cmd.Flags().GetString("project-root")
			if projectRoot == "" {
				root, err := config.FindProjectRoot()
				if err != nil {
					root = "."
				}
				projectRoot = root
			}

			v := config.SetupViper(projectRoot, cmd)
			if !cmd.Flags().Changed("project-root") {
				v.Set("project_root", projectRoot)
			}

			sink := progress.NewSink(cmd.ErrOrStderr(), !v.GetBool("non_interactive"))

			appInstance, err := initApp(v, sink, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "mumbai", "Network to deploy to (name or chain ID)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Override the network RPC URL")
	rootCmd.PersistentFlags().String("project-root", "", "Project directory (defaults to the nearest foundry.toml or hardhat.config)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable the progress spinner")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort if the deployment is not confirmed in time (0 waits forever)")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	rootCmd.AddCommand(NewNetworksCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the CLI and returns the process exit code
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, NewRootCmd(), args, stdout, stderr)
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
