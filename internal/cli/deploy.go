package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		constructorArgs []string
		dryRun          bool
		noVerify        bool
	)

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy the contract after confirming the estimated fee",
		Long: `Estimate the deployment fee, ask for confirmation and deploy the contract.

The contract and its constructor arguments default to the [contract] section of
mochi.toml. On networks with an explorer the deployment is verified afterwards,
unless NODE_ENV=test.`,
		Example: `  # Deploy ZkMochi locally
  mochi deploy

  # Deploy to testnet with an explicit base URI
  mochi deploy --network zkSyncTestnet --arg ipfs://QmBase/

  # Only show the estimated fee
  mochi deploy --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployParams{
				ContractName:    app.Config.MochiFile.Contract.Name,
				ConstructorArgs: app.Config.MochiFile.Contract.ConstructorArgs,
				DryRun:          dryRun,
				SkipVerify:      noVerify,
			}
			if len(args) == 1 {
				params.ContractName = args[0]
			}
			if cmd.Flags().Changed("arg") {
				params.ConstructorArgs = constructorArgs
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			app.Progress.Stop()
			if err != nil {
				return err
			}

			renderer := render.NewDeployRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringArrayVar(&constructorArgs, "arg", nil, "Constructor argument, repeat in declaration order")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Estimate the fee without deploying")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip explorer verification")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
