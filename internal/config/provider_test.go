package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// unsetEnv clears a variable for the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "tvk-deploy"}
	cmd.Flags().String("network", "", "")
	cmd.Flags().String("rpc-url", "", "")
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().Duration("timeout", 0, "")
	return cmd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProvider(t *testing.T) {
	unsetEnv(t, "TVK_PRIVATE_KEY")
	unsetEnv(t, "PRIVATE_KEY")
	unsetEnv(t, "TVK_NETWORK")
	unsetEnv(t, "TVK_RPC_URL")
	unsetEnv(t, "TVK_PROVIDER_TEST_RPC")
	unsetEnv(t, "MUMBAI_RPC_URL")
	unsetEnv(t, "MAINNET_RPC_URL")
	unsetEnv(t, "DEVNET_RPC_URL")
	unsetEnv(t, "NOWHERE_RPC_URL")

	t.Run("hardhat project with defaults", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "hardhat.config.ts"), "export default {}\n")

		cmd := newTestCommand()
		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)

		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, config.DeployedContractName, cfg.ContractName)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "mumbai", cfg.Network.Name)
		assert.Equal(t, uint64(80001), cfg.Network.ChainID)
		assert.Equal(t, time.Duration(0), cfg.Timeout)
		assert.Empty(t, cfg.PrivateKey)
	})

	t.Run("foundry.toml endpoint expanded from .env", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "foundry.toml"), `
[profile.default]
out = "build"

[rpc_endpoints]
mumbai = "${TVK_PROVIDER_TEST_RPC}"

[etherscan]
mumbai = { key = "abc", url = "https://scan.example.org" }
`)
		writeFile(t, filepath.Join(dir, ".env"), "TVK_PROVIDER_TEST_RPC=https://mumbai.example.org\nTVK_PRIVATE_KEY=0x01\n")

		cmd := newTestCommand()
		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)

		assert.Equal(t, "https://mumbai.example.org", cfg.Network.RPCURL)
		assert.Equal(t, SourceFoundry, cfg.Network.RPCSource)
		assert.Equal(t, "https://scan.example.org", cfg.Network.ExplorerURL)
		assert.Equal(t, "build", cfg.FoundryConfig.OutDir())
		assert.Equal(t, "0x01", cfg.PrivateKey)
	})

	t.Run("flags override network and rpc url", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "hardhat.config.js"), "module.exports = {}\n")

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("network", "localhost"))
		require.NoError(t, cmd.Flags().Set("rpc-url", "http://127.0.0.1:9545"))
		require.NoError(t, cmd.Flags().Set("non-interactive", "true"))
		require.NoError(t, cmd.Flags().Set("timeout", "2m"))

		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.Network.Name)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
		assert.Equal(t, "http://127.0.0.1:9545", cfg.Network.RPCURL)
		assert.Equal(t, SourceFlag, cfg.Network.RPCSource)
		assert.True(t, cfg.NonInteractive)
		assert.Equal(t, 2*time.Minute, cfg.Timeout)
	})

	t.Run("rpc url flag rescues networks without an endpoint", func(t *testing.T) {
		for _, tt := range []struct {
			network     string
			wantChainID uint64
		}{
			{network: "mainnet", wantChainID: 1},
			{network: "devnet", wantChainID: 0},
		} {
			dir := t.TempDir()

			cmd := newTestCommand()
			require.NoError(t, cmd.Flags().Set("network", tt.network))
			require.NoError(t, cmd.Flags().Set("rpc-url", "http://127.0.0.1:9545"))

			cfg, err := Provider(SetupViper(dir, cmd))
			require.NoError(t, err, tt.network)
			require.NoError(t, cfg.NetworkError, tt.network)

			assert.Equal(t, tt.network, cfg.Network.Name)
			assert.Equal(t, "http://127.0.0.1:9545", cfg.Network.RPCURL)
			assert.Equal(t, SourceFlag, cfg.Network.RPCSource)
			assert.Equal(t, tt.wantChainID, cfg.Network.ChainID)
		}
	})

	t.Run("unknown network is kept as a network error", func(t *testing.T) {
		dir := t.TempDir()

		cmd := newTestCommand()
		require.NoError(t, cmd.Flags().Set("network", "nowhere"))

		cfg, err := Provider(SetupViper(dir, cmd))
		require.NoError(t, err)

		assert.Nil(t, cfg.Network)
		assert.Equal(t, "nowhere", cfg.NetworkName)
		require.Error(t, cfg.NetworkError)
		assert.ErrorIs(t, cfg.NetworkError, domain.ErrNetworkNotFound)
		assert.Contains(t, cfg.NetworkError.Error(), "nowhere")

		_, err = cfg.SelectedNetwork()
		assert.Equal(t, cfg.NetworkError, err)
	})

	t.Run("unreadable .env becomes a warning", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".env"), "TVK_BROKEN=\"unterminated\n")

		cfg, err := Provider(SetupViper(dir, newTestCommand()))
		require.NoError(t, err)

		require.Len(t, cfg.Warnings, 1)
		assert.Contains(t, cfg.Warnings[0], ".env")
	})

	t.Run("invalid foundry.toml fails", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "foundry.toml"), "[rpc_endpoints\n")

		_, err := Provider(SetupViper(dir, newTestCommand()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foundry.toml")
	})
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hardhat.config.ts"), "export default {}\n")
	nested := filepath.Join(dir, "scripts", "deploy")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Chdir(nested)

	root, err := FindProjectRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
