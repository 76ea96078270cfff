package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zkmochi/mochi-cli/internal/app"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/config"
	"github.com/zkmochi/mochi-cli/internal/domain"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// appInitializer builds the app from viper, swapped in tests
var appInitializer = app.InitApp

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mochi",
		Short: "Deploy and batch mint the ZkMochi contract on zkSync",
		Long: `mochi deploys the ZkMochi contract to a zkSync network after showing the
estimated fee and asking for confirmation, then mints tokens in confirmed batches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			bindGlobalFlags(v, cmd)

			appInstance, err := appInitializer(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a, err := getApp(cmd); err == nil && a.Progress != nil {
				a.Progress.Stop()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (hardhat, zkSyncTestnet, zkSyncMainnet)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	mintCmd := NewMintCmd()
	mintCmd.GroupID = "main"
	rootCmd.AddCommand(mintCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "management"
	rootCmd.AddCommand(listCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// globalFlagKeys maps flag names to their viper keys.
var globalFlagKeys = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"network":         "network",
	"yes":             "yes",
}

// bindGlobalFlags copies explicitly set flags into viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := globalFlagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
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

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// HandleError prints err and returns the process exit code. A declined
// confirmation is a normal exit.
func HandleError(out, errOut io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if domain.IsDeclined(err) {
		fmt.Fprintln(out, "Exiting...")
		return 0
	}

	var cfgErr *domain.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(errOut, render.FormatError(err.Error()))
		return 2
	}

	fmt.Fprintln(errOut, render.FormatError(err.Error()))
	if domain.IsStage(err, domain.StageEstimate) {
		fmt.Fprintln(errOut, "No transaction was sent.")
	}
	var batchErr *domain.BatchError
	if errors.As(err, &batchErr) && batchErr.Index > 0 {
		color.New(color.FgYellow).Fprintf(errOut, "Batches 1 to %d were confirmed and remain on chain.\n", batchErr.Index)
	}
	return 1
}
