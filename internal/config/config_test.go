package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
	assert.Equal(t, 5, cfg.PollInterval)
	assert.Equal(t, int64(1), cfg.Sale.ChainID)
	assert.Equal(t, "ETH", cfg.Sale.Symbol)
	assert.Equal(t, uint64(1000), cfg.Sale.FreeThreshold)
	assert.Equal(t, uint64(5), cfg.Sale.MaxPurchase)
	assert.True(t, cfg.Sale.MusicEnabled)
	assert.False(t, cfg.Sale.SalePaused)
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	cfg.DefaultWallet = "minter"
	cfg.RPCAlgorithm = "failover"
	cfg.Sale.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	cfg.Sale.SalePaused = true

	require.NoError(t, cfg.Save())

	reloaded, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "minter", reloaded.DefaultWallet)
	assert.Equal(t, "failover", reloaded.RPCAlgorithm)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", reloaded.Sale.ContractAddress)
	assert.True(t, reloaded.Sale.SalePaused)
}

func TestLoadFillsMissingPollInterval(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"poll_interval":0}`), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Poll())
	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{`), 0o600))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestAddAndRemoveRPC(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.AddRPC("https://rpc1"))
	require.NoError(t, cfg.AddRPC("https://rpc2"))
	assert.Error(t, cfg.AddRPC("https://rpc1"), "duplicate should fail")

	require.NoError(t, cfg.RemoveRPC("https://rpc1"))
	assert.Equal(t, []string{"https://rpc2"}, cfg.RPCs)
	assert.Error(t, cfg.RemoveRPC("https://nope"))
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := config.Load(dir)
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
}

func TestLoadFromNonExistentDir(t *testing.T) {
	dir := t.TempDir() + "/subdir"
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "fastest", cfg.RPCAlgorithm)
}

func TestApplyEnv(t *testing.T) {
	cfg, _ := config.Load(t.TempDir())

	t.Setenv(config.EnvContract, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	t.Setenv(config.EnvChainID, "11155111")
	t.Setenv(config.EnvSalePaused, "true")
	t.Setenv(config.EnvMusicEnable, "false")
	t.Setenv(config.EnvTokenPrice, "0.02")
	t.Setenv(config.EnvMaxTokens, "5000")

	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(11155111), cfg.Sale.ChainID)
	assert.True(t, cfg.Sale.SalePaused)
	assert.False(t, cfg.Sale.MusicEnabled)
	assert.Equal(t, "0.02", cfg.Sale.TokenPrice)
	assert.Equal(t, uint64(5000), cfg.Sale.MaxTokens)
}

func TestApplyEnvBadBool(t *testing.T) {
	cfg, _ := config.Load(t.TempDir())
	t.Setenv(config.EnvSalePaused, "maybe")
	assert.Error(t, cfg.ApplyEnv())
}
