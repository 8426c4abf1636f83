package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/tvk-deploy/internal/cli/render"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

func runDeploy(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Config.SelectedNetwork(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if a.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancel()
	}

	result, err := a.DeployContract.Run(ctx, usecase.DeployContractParams{
		ContractName: a.Config.ContractName,
	})
	if err != nil {
		return err
	}

	if err := render.NewDeploymentRenderer(cmd.OutOrStdout()).Render(result); err != nil {
		return err
	}

	if n := a.Config.Network; n != nil && n.ExplorerURL != "" {
		a.Log.Info("view on explorer", "url", n.AddressURL(result.Contract.Address))
	}
	return nil
}
