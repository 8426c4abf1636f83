package config

// FoundryConfig represents the parts of foundry.toml this tool reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig   `toml:"profile"`
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`

	// UnresolvedRPC maps network name -> env var for endpoints whose
	// ${VAR} reference was empty at load time
	UnresolvedRPC map[string]string `toml:"-"`
}

// EtherscanConfig represents Etherscan configuration for a network
// This matches Foundry's expected structure
type EtherscanConfig struct {
	Key string `toml:"key,omitempty"` // API key for verification
	URL string `toml:"url,omitempty"` // API URL (for custom explorers)
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}

// OutDir returns the artifact directory configured for the default profile
func (c *FoundryConfig) OutDir() string {
	if c == nil {
		return ""
	}
	if p, ok := c.Profile["default"]; ok {
		return p.OutPath
	}
	return ""
}
