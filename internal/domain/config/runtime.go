package config

import (
	"fmt"
	"time"
)

// DeployedContractName is the contract every run deploys. Operators select
// the network and signer; the contract itself is fixed.
const DeployedContractName = "TVKTest"

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// What to deploy and where
	ContractName string
	NetworkName  string   // as requested by the operator
	Network      *Network // nil if the network could not be resolved
	NetworkError error    // why Network is nil

	// Signing
	PrivateKey string //nolint:gosec // loaded from the environment, never logged

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration // zero disables the deadline

	// Resolved configurations
	FoundryConfig *FoundryConfig

	// Problems found while loading, logged once the logger exists
	Warnings []string
}

// SelectedNetwork returns the resolved network or the reason it is missing
func (c *RuntimeConfig) SelectedNetwork() (*Network, error) {
	if c.Network != nil {
		return c.Network, nil
	}
	if c.NetworkError != nil {
		return nil, c.NetworkError
	}
	return nil, fmt.Errorf("no network selected")
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"` // 0 accepts whatever the node reports
	RPCURL      string `json:"rpcUrl"`
	RPCSource   string `json:"rpcSource,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// AddressURL returns the explorer page for an address, or "" without an explorer
func (n *Network) AddressURL(address string) string {
	if n == nil || n.ExplorerURL == "" {
		return ""
	}
	return n.ExplorerURL + "/address/" + address
}
