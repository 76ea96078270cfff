package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		allFlag   bool
		forceFlag bool
	)

	cmd := &cobra.Command{
		Use:   "verify [contract]",
		Short: "Verify recorded deployments on the zkSync explorer",
		Long: `Verify a recorded deployment on the explorer of the selected network and
update its status in the registry. Without a contract name the deployment is
picked from the registry.`,
		Example: `  mochi verify ZkMochi --network zkSyncTestnet
  mochi verify --all --network zkSyncMainnet
  mochi verify ZkMochi --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			options := usecase.VerifyOptions{Force: forceFlag}
			renderer := render.NewVerifyRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)

			if allFlag {
				result, err := app.VerifyDeployment.VerifyAll(ctx, options)
				app.Progress.Stop()
				if err != nil {
					return fmt.Errorf("failed to verify contracts: %w", err)
				}
				return renderer.RenderVerifyAllResult(result, options)
			}

			var contractName string
			if len(args) == 1 {
				contractName = args[0]
			} else {
				record, err := pickDeployment(cmd, app.Config.Network.Name)
				if err != nil {
					return err
				}
				contractName = record.ContractName
			}

			result, err := app.VerifyDeployment.VerifySpecific(ctx, contractName, options)
			app.Progress.Stop()
			if err != nil {
				return err
			}
			return renderer.RenderVerifyResult(result, options)
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Verify every unverified deployment on the network")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Re-verify even if already verified")

	return cmd
}

// pickDeployment asks the selector for one of the deployments recorded on network
func pickDeployment(cmd *cobra.Command, network string) (*models.DeploymentRecord, error) {
	app, err := getApp(cmd)
	if err != nil {
		return nil, err
	}

	list, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{Network: network})
	app.Progress.Stop()
	if err != nil {
		return nil, err
	}
	if len(list.Deployments) == 0 {
		return nil, fmt.Errorf("no deployments recorded on %s", network)
	}

	unverified := lo.Filter(list.Deployments, func(r *models.DeploymentRecord, _ int) bool {
		return r.Verification.Status != models.VerificationStatusVerified
	})
	candidates := list.Deployments
	if len(unverified) > 0 {
		candidates = unverified
	}

	return app.Selector.SelectDeployment(cmd.Context(), candidates, "Select a deployment to verify")
}
