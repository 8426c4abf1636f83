package signer

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// KeyedSigner signs deployments with a hex-encoded private key
type KeyedSigner struct {
	hexKey string
}

// NewKeyedSigner creates a signer from the configured private key.
// A missing key is reported when signing, not at construction.
func NewKeyedSigner(cfg *config.RuntimeConfig) *KeyedSigner {
	return &KeyedSigner{hexKey: cfg.PrivateKey}
}

// NewKeyedSignerFromKey wraps an existing key
func NewKeyedSignerFromKey(key *ecdsa.PrivateKey) *KeyedSigner {
	return &KeyedSigner{hexKey: common.Bytes2Hex(crypto.FromECDSA(key))}
}

// TransactOpts returns transaction options bound to chainID
func (s *KeyedSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	return bind.NewKeyedTransactor(key, chainID), nil
}

// Address returns the deployer address
func (s *KeyedSigner) Address() (common.Address, error) {
	key, err := s.key()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

func (s *KeyedSigner) key() (*ecdsa.PrivateKey, error) {
	hexKey := strings.TrimSpace(s.hexKey)
	if hexKey == "" {
		return nil, fmt.Errorf("%w: set TVK_PRIVATE_KEY or PRIVATE_KEY", domain.ErrMissingPrivateKey)
	}
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		// Never echo the key itself
		return nil, fmt.Errorf("invalid deployer private key: %w", err)
	}
	return key, nil
}
