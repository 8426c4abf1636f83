package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// ConfigSet provides the runtime configuration and the network resolver
var ConfigSet = wire.NewSet(
	Provider,
	ProvideNetworkResolver,
)

// projectMarkers identify the root of a Foundry or Hardhat project
var projectMarkers = []string{
	"foundry.toml",
	"hardhat.config.ts",
	"hardhat.config.js",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ContractName:   config.DeployedContractName,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
	}

	foundryConfig, warnings, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig
	cfg.Warnings = warnings

	// Read after loadFoundryConfig so keys from .env are visible
	cfg.PrivateKey = v.GetString("private_key")

	// Resolution failures only matter to commands that use the network
	cfg.NetworkName = v.GetString("network")
	network, err := NewNetworkResolver(foundryConfig).ResolveWithRPC(cfg.NetworkName, v.GetString("rpc_url"))
	if err != nil {
		cfg.NetworkError = fmt.Errorf("failed to resolve network %s: %w", cfg.NetworkName, err)
	} else {
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find a project marker
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry or Hardhat project (no %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Optional tvk-deploy.toml next to the project markers
	v.SetConfigName("tvk-deploy")
	v.SetConfigType("toml")
	v.AddConfigPath(projectRoot)

	v.SetEnvPrefix("TVK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	_ = v.BindEnv("private_key", "TVK_PRIVATE_KEY", "PRIVATE_KEY")

	v.SetDefault("network", "mumbai")
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.FoundryConfig)
}
