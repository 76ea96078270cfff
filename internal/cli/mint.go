package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// NewMintCmd creates the mint command
func NewMintCmd() *cobra.Command {
	var (
		address   string
		recipient string
		total     uint64
		batchSize uint64
		method    string
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint tokens in sequential confirmed batches",
		Long: `Mint tokens to a recipient in batches. The fee of one batch is estimated and
the whole plan is confirmed once. Each batch is mined before the next one is sent.

The contract address is taken from --address, mochi.toml or the deployment
registry for the selected network, in that order.`,
		Example: `  # Mint the configured total to the wallet
  mochi mint --network zkSyncTestnet

  # Mint 1000 tokens in batches of 100 to another address
  mochi mint --total 1000 --batch-size 100 --to 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			defaults := app.Config.MochiFile.Mint
			params := usecase.MintParams{
				ContractName: app.Config.MochiFile.Contract.Name,
				Address:      address,
				Recipient:    defaults.Recipient,
				TotalUnits:   defaults.Total,
				BatchSize:    defaults.BatchSize,
				Method:       defaults.Method,
			}
			if cmd.Flags().Changed("to") {
				params.Recipient = recipient
			}
			if cmd.Flags().Changed("total") {
				params.TotalUnits = total
			}
			if cmd.Flags().Changed("batch-size") {
				params.BatchSize = batchSize
			}
			if cmd.Flags().Changed("method") {
				params.Method = method
			}

			result, err := app.MintTokens.Run(cmd.Context(), params)
			app.Progress.Stop()

			// Confirmed batches are shown even when a later batch failed
			if result != nil && (err == nil || len(result.Batches) > 0) {
				renderer := render.NewMintRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
				if renderErr := renderer.Render(result); err == nil {
					err = renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Deployed contract address")
	cmd.Flags().StringVar(&recipient, "to", "", "Recipient of the minted tokens (defaults to the wallet)")
	cmd.Flags().Uint64Var(&total, "total", 0, "Total number of tokens to mint")
	cmd.Flags().Uint64Var(&batchSize, "batch-size", 0, "Tokens minted per transaction")
	cmd.Flags().StringVar(&method, "method", "", "Mint method on the contract (defaults to mint)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
