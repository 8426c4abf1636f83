package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// loadFoundryConfig loads .env files and parses foundry.toml when present.
// Hardhat projects have no foundry.toml and get an empty config.
// Unreadable .env files are returned as warnings.
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, []string, error) {
	// Load .env files first for variable expansion
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	var warnings []string
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to load %s: %v", envFile, err))
			}
		}
	}

	cfg := &config.FoundryConfig{
		Profile:       make(map[string]config.ProfileConfig),
		RpcEndpoints:  make(map[string]string),
		Etherscan:     make(map[string]config.EtherscanConfig),
		UnresolvedRPC: make(map[string]string),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, warnings, nil
	}

	var raw config.FoundryConfig
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, profile := range raw.Profile {
		cfg.Profile[name] = profile
	}
	for name, url := range raw.RpcEndpoints {
		if envVar, ok := DetectEnvVar(url); ok && os.Getenv(envVar) == "" {
			cfg.UnresolvedRPC[name] = envVar
		}
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}
	for name, es := range raw.Etherscan {
		es.Key = os.ExpandEnv(es.Key)
		es.URL = os.ExpandEnv(es.URL)
		cfg.Etherscan[name] = es
	}

	return cfg, warnings, nil
}
