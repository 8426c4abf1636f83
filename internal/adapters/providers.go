package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/artifacts"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/signer"
	"github.com/trebuchet-org/tvk-deploy/internal/config"
	"github.com/trebuchet-org/tvk-deploy/internal/usecase"
)

// ArtifactSet provides the compiled-artifact loader
var ArtifactSet = wire.NewSet(
	artifacts.NewLoader,
	wire.Bind(new(blockchain.ArtifactLoader), new(*artifacts.Loader)),
)

// SignerSet provides the deployer key
var SignerSet = wire.NewSet(
	signer.NewKeyedSigner,
	wire.Bind(new(blockchain.Signer), new(*signer.KeyedSigner)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractFactoryProvider), new(*blockchain.Deployer)),
)

// InteractiveSet provides the artifact selector
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ArtifactSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	SignerSet,
	BlockchainSet,
	InteractiveSet,
	ConfigSet,
)
