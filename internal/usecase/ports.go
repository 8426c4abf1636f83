package usecase

import (
	"context"

	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// ContractFactoryProvider hands out deployable factories keyed by contract name
type ContractFactoryProvider interface {
	GetContractFactory(ctx context.Context, contractName string) (ContractFactory, error)
}

// ContractFactory issues contract-creation transactions for one contract
type ContractFactory interface {
	// Deploy submits a creation transaction with no constructor arguments
	Deploy(ctx context.Context) (PendingDeployment, error)
}

// PendingDeployment is a submitted but unconfirmed contract creation
type PendingDeployment interface {
	TxHash() string
	// Deployed blocks until the network confirms the deployment
	Deployed(ctx context.Context) (*domain.DeployedContract, error)
}

// NetworkResolver resolves configured networks
type NetworkResolver interface {
	Networks() []string
	Resolve(name string) (*config.Network, error)
}

// ArtifactSelector picks one artifact when a contract name is ambiguous
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, ambiguous domain.AmbiguousContractErr) (domain.ArtifactRef, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// Progress stages reported by DeployContract
const (
	ProgressLoading    = "loading"
	ProgressDeploying  = "deploying"
	ProgressConfirming = "confirming"
	ProgressComplete   = "complete"
	ProgressFailed     = "failed"
)

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
