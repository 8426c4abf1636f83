package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// DeploymentRenderer writes the confirmation line of a successful deployment
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// Render writes exactly one line: "<Contract> token deployed to <address>"
func (r *DeploymentRenderer) Render(result *usecase.DeployContractResult) error {
	if result == nil || result.Contract == nil {
		return fmt.Errorf("no deployment to render")
	}
	_, err := fmt.Fprintf(r.out, "%s token deployed to %s\n", result.Contract.ContractName, result.Contract.Address)
	return err
}

var _ Renderer[*usecase.DeployContractResult] = (*DeploymentRenderer)(nil)
