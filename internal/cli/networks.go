package cli

import (
	"github.com/spf13/cobra"
	"github.com/zkmochi/mochi-cli/internal/cli/render"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks",
		Long: `List the built-in zkSync networks together with any [networks] entries from
mochi.toml. The selected network is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !app.Config.NonInteractive)
			return renderer.RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Query each RPC for its live chain ID")

	return cmd
}
