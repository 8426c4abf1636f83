package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/tvk-deploy/internal/domain"
)

// DeployContractParams is a single deployment request.
// Contracts are always deployed without constructor arguments.
type DeployContractParams struct {
	ContractName string
}

// DeployContractResult contains the confirmed deployment
type DeployContractResult struct {
	Contract *domain.DeployedContract
	Stage    domain.DeploymentStage
}

// DeployContract runs one deploy-and-confirm sequence
type DeployContract struct {
	factories ContractFactoryProvider
	selector  ArtifactSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case.
// selector may be nil, in which case ambiguous artifacts fail the run.
func NewDeployContract(factories ContractFactoryProvider, selector ArtifactSelector, progress ProgressSink, log *slog.Logger) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeployContract{
		factories: factories,
		selector:  selector,
		progress:  progress,
		log:       log,
	}
}

// Run deploys the contract exactly once and waits for confirmation.
// Any failure is returned as a *domain.DeploymentError.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	name := params.ContractName
	stage := domain.StageNotStarted

	if name == "" {
		return nil, uc.fail(ctx, stage, name, errors.New("contract name is required"))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressLoading,
		Message: fmt.Sprintf("Loading %s", name),
		Spinner: true,
	})

	factory, err := uc.contractFactory(ctx, name)
	if err != nil {
		return nil, uc.fail(ctx, stage, name, fmt.Errorf("failed to get contract factory: %w", err))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressDeploying,
		Message: fmt.Sprintf("Deploying %s", name),
		Spinner: true,
	})

	pending, err := factory.Deploy(ctx)
	if err != nil {
		return nil, uc.fail(ctx, stage, name, fmt.Errorf("failed to submit deployment: %w", err))
	}

	stage = domain.StageAwaitingConfirmation
	uc.log.Debug("deployment submitted", "contract", name, "tx", pending.TxHash())

	deployed, err := uc.awaitConfirmation(ctx, name, pending)
	if err != nil {
		return nil, uc.fail(ctx, stage, name, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressComplete,
		Message: fmt.Sprintf("%s confirmed", name),
	})
	uc.log.Debug("deployment confirmed", "contract", name, "address", deployed.Address)

	return &DeployContractResult{
		Contract: deployed,
		Stage:    domain.StageSucceeded,
	}, nil
}

// contractFactory obtains the factory, asking the selector to pick one
// artifact when the bare name matches several
func (uc *DeployContract) contractFactory(ctx context.Context, name string) (ContractFactory, error) {
	factory, err := uc.factories.GetContractFactory(ctx, name)

	var ambiguous domain.AmbiguousContractErr
	if err == nil || uc.selector == nil || !errors.As(err, &ambiguous) {
		return factory, err
	}

	// Selection is interactive, the spinner must not draw over the prompt
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressLoading,
		Message: fmt.Sprintf("Select %s artifact", name),
	})

	ref, err := uc.selector.SelectArtifact(ctx, ambiguous)
	if err != nil {
		return nil, err
	}
	uc.log.Debug("artifact selected", "contract", name, "source", ref.SourceName)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressLoading,
		Message: fmt.Sprintf("Loading %s", name),
		Spinner: true,
	})
	return uc.factories.GetContractFactory(ctx, ref.SourceName+":"+ref.ContractName)
}

// awaitConfirmation is the only suspension point of a run
func (uc *DeployContract) awaitConfirmation(ctx context.Context, name string, pending PendingDeployment) (*domain.DeployedContract, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressConfirming,
		Message: fmt.Sprintf("Waiting for %s confirmation (tx %s)", name, pending.TxHash()),
		Spinner: true,
	})

	deployed, err := pending.Deployed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm deployment: %w", err)
	}
	if deployed == nil || deployed.Address == "" {
		return nil, errors.New("confirmation returned no contract address")
	}
	if deployed.ContractName == "" {
		deployed.ContractName = name
	}

	return deployed, nil
}

func (uc *DeployContract) fail(ctx context.Context, stage domain.DeploymentStage, name string, err error) error {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   ProgressFailed,
		Message: err.Error(),
	})
	uc.log.Debug("deployment failed", "contract", name, "stage", stage, "error", err)

	return &domain.DeploymentError{
		ContractName: name,
		Stage:        stage,
		Err:          err,
	}
}
