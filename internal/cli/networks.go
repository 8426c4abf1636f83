package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tvk-deploy/internal/cli/render"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks the token can be deployed to",
		Long: `List the built-in networks together with those configured in the
[rpc_endpoints] section of foundry.toml. The selected network is marked with *.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), !color.NoColor, a.Config.JSON)
			return renderer.Render(result)
		},
	}

	return cmd
}
