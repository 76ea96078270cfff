package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/usecase"
	"gopkg.in/yaml.v3"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		allNetworks  bool
		check        bool
		jsonOutput   bool
		yamlOutput   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from the registry",
		Long: `List deployments recorded in .mochi/deployments.json.

Only the selected network is shown unless --all is given.`,
		Example: `  mochi list
  mochi list --all
  mochi list --network zkSyncMainnet --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && yamlOutput {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{ContractName: contractName, Check: check}
			if !allNetworks && app.Config.Network != nil {
				params.Network = app.Config.Network.Name
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			app.Progress.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Deployments)
			case yamlOutput:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(result.Deployments)
			}

			renderer := render.NewDeploymentsRenderer(out, !app.Config.NonInteractive)
			return renderer.RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&allNetworks, "all", false, "Show deployments on every network")
	cmd.Flags().BoolVar(&check, "check", false, "Confirm each contract still has code on chain")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")

	return cmd
}
