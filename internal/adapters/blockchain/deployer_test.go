package blockchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tvk-deploy/internal/adapters/signer"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

var (
	// init code copying a 10-byte runtime that returns 42
	answerInitCode = common.FromHex("0x600a600c600039600a6000f3602a60005260206000f3")
	answerRuntime  = common.FromHex("0x602a60005260206000f3")
)

// simulatedChainID is the chain ID used by ethclient/simulated
const simulatedChainID = 1337

type stubLoader struct {
	artifacts map[string]*domain.Artifact
	calls     int
}

func (s *stubLoader) LoadArtifact(key string) (*domain.Artifact, error) {
	s.calls++
	if a, ok := s.artifacts[key]; ok {
		return a, nil
	}
	return nil, domain.ErrContractNotFound
}

func mustABI(t *testing.T, raw string) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(raw))
	require.NoError(t, err)
	return parsed
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSimulatedDeployer(t *testing.T, chainID uint64, funded bool) (*Deployer, *simulated.Backend, common.Address) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	alloc := types.GenesisAlloc{}
	if funded {
		alloc[from] = types.Account{Balance: new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18))}
	}
	sim := simulated.NewBackend(alloc)
	t.Cleanup(func() { _ = sim.Close() })

	loader := &stubLoader{artifacts: map[string]*domain.Artifact{
		"Answer": {
			ContractName: "Answer",
			SourceName:   "contracts/Answer.sol",
			ABI:          mustABI(t, `[]`),
			Bytecode:     answerInitCode,
		},
		"NeedsArgs": {
			ContractName: "NeedsArgs",
			SourceName:   "contracts/NeedsArgs.sol",
			ABI:          mustABI(t, `[{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"}]`),
			Bytecode:     answerInitCode,
		},
	}}

	cfg := &config.RuntimeConfig{
		Network: &config.Network{Name: "simulated", ChainID: chainID, RPCURL: "simulated://"},
	}
	d := NewDeployer(cfg, loader, signer.NewKeyedSignerFromKey(key), discardLogger()).
		WithDialer(func(ctx context.Context, rpcURL string) (Backend, error) {
			return sim.Client(), nil
		})

	return d, sim, from
}

func TestDeployer_DeploysToSimulatedChain(t *testing.T) {
	ctx := context.Background()
	d, sim, from := newSimulatedDeployer(t, simulatedChainID, true)
	defer d.Close()

	factory, err := d.GetContractFactory(ctx, "Answer")
	require.NoError(t, err)

	pending, err := factory.Deploy(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pending.TxHash(), "0x"))

	sim.Commit()

	deployed, err := pending.Deployed(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Answer", deployed.ContractName)
	assert.Equal(t, crypto.CreateAddress(from, 0).Hex(), deployed.Address)
	assert.Equal(t, pending.TxHash(), deployed.TxHash)
	assert.Equal(t, uint64(simulatedChainID), deployed.ChainID)
	assert.Equal(t, "simulated", deployed.Network)

	code, err := sim.Client().CodeAt(ctx, common.HexToAddress(deployed.Address), nil)
	require.NoError(t, err)
	assert.Equal(t, answerRuntime, code)
}

func TestDeployer_TwoRunsGiveTwoAddresses(t *testing.T) {
	ctx := context.Background()
	d, sim, _ := newSimulatedDeployer(t, 0, true)

	var addresses []string
	for i := 0; i < 2; i++ {
		factory, err := d.GetContractFactory(ctx, "Answer")
		require.NoError(t, err)
		pending, err := factory.Deploy(ctx)
		require.NoError(t, err)
		sim.Commit()
		deployed, err := pending.Deployed(ctx)
		require.NoError(t, err)
		addresses = append(addresses, deployed.Address)
	}

	assert.NotEqual(t, addresses[0], addresses[1])
}

func TestDeployer_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("chain ID mismatch", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, 80001, true)

		_, err := d.GetContractFactory(ctx, "Answer")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
		assert.Contains(t, err.Error(), "80001")
	})

	t.Run("constructor arguments are rejected before connecting", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, simulatedChainID, true)
		dialed := false
		d.WithDialer(func(ctx context.Context, rpcURL string) (Backend, error) {
			dialed = true
			return nil, errors.New("unexpected dial")
		})

		_, err := d.GetContractFactory(ctx, "NeedsArgs")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConstructorArgs)
		assert.False(t, dialed)
	})

	t.Run("unknown contract", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, simulatedChainID, true)

		_, err := d.GetContractFactory(ctx, "Missing")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("dial failure", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, simulatedChainID, true)
		d.WithDialer(func(ctx context.Context, rpcURL string) (Backend, error) {
			return nil, errors.New("connection refused")
		})

		_, err := d.GetContractFactory(ctx, "Answer")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("missing private key", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, simulatedChainID, true)
		d.signer = signer.NewKeyedSigner(&config.RuntimeConfig{})

		_, err := d.GetContractFactory(ctx, "Answer")
		assert.ErrorIs(t, err, domain.ErrMissingPrivateKey)
	})

	t.Run("no network", func(t *testing.T) {
		d := NewDeployer(&config.RuntimeConfig{}, &stubLoader{artifacts: map[string]*domain.Artifact{
			"Answer": {ContractName: "Answer", ABI: mustABI(t, `[]`), Bytecode: answerInitCode},
		}}, signer.NewKeyedSigner(&config.RuntimeConfig{}), discardLogger())

		_, err := d.GetContractFactory(ctx, "Answer")
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
	})

	t.Run("unresolved network reports why", func(t *testing.T) {
		cfg := &config.RuntimeConfig{
			NetworkName:  "devnet",
			NetworkError: fmt.Errorf("failed to resolve network devnet: %w", domain.ErrNetworkNotFound),
		}
		d := NewDeployer(cfg, &stubLoader{artifacts: map[string]*domain.Artifact{
			"Answer": {ContractName: "Answer", ABI: mustABI(t, `[]`), Bytecode: answerInitCode},
		}}, signer.NewKeyedSigner(&config.RuntimeConfig{}), discardLogger())

		_, err := d.GetContractFactory(ctx, "Answer")
		assert.ErrorIs(t, err, domain.ErrNetworkNotFound)
		assert.Contains(t, err.Error(), "devnet")
	})

	t.Run("unfunded deployer cannot submit", func(t *testing.T) {
		d, _, _ := newSimulatedDeployer(t, simulatedChainID, false)

		factory, err := d.GetContractFactory(ctx, "Answer")
		require.NoError(t, err)

		_, err = factory.Deploy(ctx)
		assert.Error(t, err)
	})
}
