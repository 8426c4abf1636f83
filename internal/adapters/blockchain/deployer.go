package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// Backend is the chain access needed to submit and confirm a deployment
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC URL
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// ArtifactLoader resolves compiled contracts by name
type ArtifactLoader interface {
	LoadArtifact(key string) (*domain.Artifact, error)
}

// Signer provides transaction options for a chain
type Signer interface {
	TransactOpts(chainID *big.Int) (*bind.TransactOpts, error)
}

// Deployer implements ContractFactoryProvider on top of go-ethereum
type Deployer struct {
	network    *config.Network
	networkErr error
	artifacts  ArtifactLoader
	signer     Signer
	dial       Dialer
	log        *slog.Logger

	backend Backend
	chainID *big.Int
}

// NewDeployer creates a deployer for the configured network
func NewDeployer(cfg *config.RuntimeConfig, artifacts ArtifactLoader, signer Signer, log *slog.Logger) *Deployer {
	return &Deployer{
		network:    cfg.Network,
		networkErr: cfg.NetworkError,
		artifacts:  artifacts,
		signer:     signer,
		dial:       dialEthclient,
		log:        log,
	}
}

// WithDialer replaces how the RPC backend is opened
func (d *Deployer) WithDialer(dial Dialer) *Deployer {
	d.dial = dial
	return d
}

// GetContractFactory loads the artifact, connects and prepares the signer
func (d *Deployer) GetContractFactory(ctx context.Context, contractName string) (usecase.ContractFactory, error) {
	artifact, err := d.artifacts.LoadArtifact(contractName)
	if err != nil {
		return nil, err
	}
	if inputs := artifact.ABI.Constructor.Inputs; len(inputs) > 0 {
		return nil, fmt.Errorf("%w: %s constructor expects %d argument(s)",
			domain.ErrConstructorArgs, artifact.ContractName, len(inputs))
	}
	d.log.Debug("loaded artifact", "contract", artifact.FullName(), "path", artifact.Path, "size", len(artifact.Bytecode))

	if err := d.connect(ctx); err != nil {
		return nil, err
	}

	opts, err := d.signer.TransactOpts(d.chainID)
	if err != nil {
		return nil, err
	}

	return &contractFactory{
		artifact: artifact,
		backend:  d.backend,
		opts:     opts,
		chainID:  d.chainID.Uint64(),
		network:  d.network.Name,
		log:      d.log,
	}, nil
}

// connect establishes connection to the blockchain and checks the chain ID
func (d *Deployer) connect(ctx context.Context) error {
	if d.backend != nil {
		return nil
	}
	if d.network == nil {
		if d.networkErr != nil {
			return d.networkErr
		}
		return fmt.Errorf("%w: no network selected", domain.ErrNetworkNotFound)
	}

	backend, err := d.dial(ctx, d.network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if expected := d.network.ChainID; expected != 0 && networkChainID.Uint64() != expected {
		closeBackend(backend)
		return fmt.Errorf("%w: %s expects chain ID %d, RPC reports %d",
			domain.ErrNetworkMismatch, d.network.Name, expected, networkChainID.Uint64())
	}

	d.backend = backend
	d.chainID = networkChainID
	d.log.Debug("connected", "network", d.network.Name, "chainId", networkChainID, "rpc", d.network.RPCSource)

	return nil
}

// Close releases the RPC connection
func (d *Deployer) Close() {
	if d.backend != nil {
		closeBackend(d.backend)
		d.backend = nil
	}
}

func dialEthclient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func closeBackend(b Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}

// contractFactory deploys one artifact
type contractFactory struct {
	artifact *domain.Artifact
	backend  Backend
	opts     *bind.TransactOpts
	chainID  uint64
	network  string
	log      *slog.Logger
}

// Deploy submits the creation transaction without constructor arguments
func (f *contractFactory) Deploy(ctx context.Context) (usecase.PendingDeployment, error) {
	opts := *f.opts
	opts.Context = ctx

	address, tx, err := bind.DeployContract(&opts, f.artifact.Bytecode, f.backend, nil)
	if err != nil {
		return nil, err
	}
	f.log.Debug("creation transaction sent", "contract", f.artifact.ContractName, "tx", tx.Hash().Hex(), "expected", address.Hex())

	return &pendingDeployment{
		contractName: f.artifact.ContractName,
		hash:         tx.Hash(),
		backend:      f.backend,
		chainID:      f.chainID,
		network:      f.network,
	}, nil
}

// pendingDeployment waits for a submitted creation transaction
type pendingDeployment struct {
	contractName string
	hash         common.Hash
	backend      Backend
	chainID      uint64
	network      string
}

func (p *pendingDeployment) TxHash() string {
	return p.hash.Hex()
}

// Deployed blocks until the receipt is mined and code exists at the address
func (p *pendingDeployment) Deployed(ctx context.Context) (*domain.DeployedContract, error) {
	address, err := bind.WaitDeployed(ctx, p.backend, p.hash)
	if err != nil {
		return nil, err
	}

	return &domain.DeployedContract{
		ContractName: p.contractName,
		Address:      address.Hex(),
		TxHash:       p.hash.Hex(),
		ChainID:      p.chainID,
		Network:      p.network,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractFactoryProvider = (*Deployer)(nil)
