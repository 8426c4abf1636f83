package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// RPC URL sources, in order of precedence
const (
	SourceFlag    = "flag"
	SourceFoundry = "foundry.toml"
	SourceEnv     = "env"
	SourceDefault = "default"
)

// defaultNetworks are the well-known networks available without configuration
var defaultNetworks = []config.Network{
	{Name: "mumbai", ChainID: 80001, RPCURL: "https://rpc-mumbai.maticvigil.com", ExplorerURL: "https://mumbai.polygonscan.com"},
	{Name: "amoy", ChainID: 80002, RPCURL: "https://rpc-amoy.polygon.technology", ExplorerURL: "https://amoy.polygonscan.com"},
	{Name: "polygon", ChainID: 137, RPCURL: "https://polygon-rpc.com", ExplorerURL: "https://polygonscan.com"},
	{Name: "sepolia", ChainID: 11155111, RPCURL: "https://rpc.sepolia.org", ExplorerURL: "https://sepolia.etherscan.io"},
	{Name: "mainnet", ChainID: 1, ExplorerURL: "https://etherscan.io"},
	{Name: "localhost", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
	{Name: "hardhat", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
	{Name: "anvil", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
}

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	defaults      map[string]config.Network
	chainIDLookup map[uint64]string // chainID -> first network name
	getenv        func(string) string
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	if foundryConfig == nil {
		foundryConfig = &config.FoundryConfig{}
	}

	r := &NetworkResolver{
		foundryConfig: foundryConfig,
		defaults:      make(map[string]config.Network),
		chainIDLookup: make(map[uint64]string),
		getenv:        os.Getenv,
	}

	for _, n := range defaultNetworks {
		r.defaults[n.Name] = n
		if _, ok := r.chainIDLookup[n.ChainID]; !ok {
			r.chainIDLookup[n.ChainID] = n.Name
		}
	}

	return r
}

// Resolve resolves a network name or chain ID to its configuration.
// RPC URL precedence: foundry.toml [rpc_endpoints], <NAME>_RPC_URL, built-in default.
func (r *NetworkResolver) Resolve(input string) (*config.Network, error) {
	return r.ResolveWithRPC(input, "")
}

// ResolveWithRPC resolves like Resolve, but a non-empty rpcURL wins over every
// other source. Networks unknown to foundry.toml, env and the built-ins are
// accepted with it and keep chain ID 0, or the chain ID given as input.
func (r *NetworkResolver) ResolveWithRPC(input, rpcURL string) (*config.Network, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: network not specified", domain.ErrNetworkNotFound)
	}

	name := input
	chainID, numeric := parseChainID(input)
	if numeric {
		known, ok := r.chainIDLookup[chainID]
		switch {
		case ok:
			name = known
		case rpcURL == "":
			return nil, fmt.Errorf("%w: no known network for chain ID %d", domain.ErrNetworkNotFound, chainID)
		}
	}

	base, known := r.defaults[strings.ToLower(name)]

	// Keep the caller's spelling for foundry.toml and env lookups
	network := base
	network.Name = name
	network.RPCSource = SourceDefault
	if numeric && !known {
		network.ChainID = chainID
	}

	switch {
	case rpcURL != "":
		network.RPCURL = rpcURL
		network.RPCSource = SourceFlag
	case r.foundryConfig.RpcEndpoints[name] != "":
		network.RPCURL = r.foundryConfig.RpcEndpoints[name]
		network.RPCSource = SourceFoundry
	case r.getenv(GenerateEnvVarName(name)) != "":
		network.RPCURL = r.getenv(GenerateEnvVarName(name))
		network.RPCSource = SourceEnv
	case !known:
		if envVar, ok := r.foundryConfig.UnresolvedRPC[name]; ok {
			return nil, fmt.Errorf("%w: %s (rpc_endpoints.%s references ${%s}, which is not set)",
				domain.ErrNetworkNotFound, name, name, envVar)
		}
		return nil, fmt.Errorf("%w: %s (add it to foundry.toml [rpc_endpoints] or set %s)",
			domain.ErrNetworkNotFound, name, GenerateEnvVarName(name))
	}

	if network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for network %s (set %s)", name, GenerateEnvVarName(name))
	}

	if es, ok := r.foundryConfig.Etherscan[name]; ok && es.URL != "" {
		network.ExplorerURL = es.URL
	}

	return &network, nil
}

func parseChainID(input string) (uint64, bool) {
	chainID, err := strconv.ParseUint(input, 10, 64)
	return chainID, err == nil
}

// Networks returns all known network names, sorted
func (r *NetworkResolver) Networks() []string {
	names := append(lo.Keys(r.defaults), lo.Keys(r.foundryConfig.RpcEndpoints)...)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}
