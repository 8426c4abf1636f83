package signer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// Well-known Hardhat/Anvil account #0
const (
	devKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestKeyedSigner(t *testing.T) {
	t.Run("with and without 0x prefix", func(t *testing.T) {
		for _, raw := range []string{devKey, "0x" + devKey, "  0x" + devKey + "\n"} {
			s := NewKeyedSigner(&config.RuntimeConfig{PrivateKey: raw})

			addr, err := s.Address()
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress(devAddress), addr)
		}
	})

	t.Run("transact opts carry the deployer", func(t *testing.T) {
		s := NewKeyedSigner(&config.RuntimeConfig{PrivateKey: devKey})

		opts, err := s.TransactOpts(big.NewInt(80001))
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(devAddress), opts.From)
		assert.NotNil(t, opts.Signer)
	})

	t.Run("missing key", func(t *testing.T) {
		s := NewKeyedSigner(&config.RuntimeConfig{})

		_, err := s.TransactOpts(big.NewInt(1))
		assert.ErrorIs(t, err, domain.ErrMissingPrivateKey)
	})

	t.Run("invalid key is not echoed", func(t *testing.T) {
		s := NewKeyedSigner(&config.RuntimeConfig{PrivateKey: "0xdeadbeef"})

		_, err := s.Address()
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "deadbeef")
	})

	t.Run("from existing key", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		addr, err := NewKeyedSignerFromKey(key).Address()
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), addr)
	})
}
