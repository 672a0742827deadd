package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"
)

const (
	defaultAlgorithm     = "fastest"
	defaultPollInterval  = 5
	defaultChainID       = 1
	defaultTokenPrice    = "0.01"
	defaultSymbol        = "ETH"
	defaultMaxTokens     = 10_000
	defaultFreeThreshold = 1_000
	defaultMaxPurchase   = 5

	configFile  = "config.json"
	walletsFile = "wallets.json"
)

// Environment overrides for the sale section. They win over config.json so a
// launch can be flipped (e.g. paused) without editing the file.
const (
	EnvConfigDir   = "MINTPAD_CONFIG_DIR"
	EnvContract    = "MINTPAD_CONTRACT"
	EnvChainID     = "MINTPAD_CHAIN_ID"
	EnvTokenPrice  = "MINTPAD_TOKEN_PRICE"
	EnvMaxTokens   = "MINTPAD_MAX_TOKENS"
	EnvSalePaused  = "MINTPAD_SALE_PAUSED"
	EnvMusicEnable = "MINTPAD_USE_MUSIC"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.mintpad.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".mintpad")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.RPCAlgorithm == "" {
		cfg.RPCAlgorithm = defaultAlgorithm
	}

	return cfg, nil
}

// ApplyEnv overlays MINTPAD_* environment variables onto the sale section.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvContract); v != "" {
		c.Sale.ContractAddress = v
	}
	if v := os.Getenv(EnvTokenPrice); v != "" {
		c.Sale.TokenPrice = v
	}
	if v := os.Getenv(EnvChainID); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvChainID, err)
		}
		c.Sale.ChainID = id
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTokens, err)
		}
		c.Sale.MaxTokens = n
	}
	if v := os.Getenv(EnvSalePaused); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSalePaused, err)
		}
		c.Sale.SalePaused = b
	}
	if v := os.Getenv(EnvMusicEnable); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMusicEnable, err)
		}
		c.Sale.MusicEnabled = b
	}
	return nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// AddRPC adds an RPC URL.
func (c *Config) AddRPC(url string) error {
	if slices.Contains(c.RPCs, url) {
		return fmt.Errorf("RPC %s already configured", url)
	}
	c.RPCs = append(c.RPCs, url)
	return nil
}

// RemoveRPC removes an RPC URL.
func (c *Config) RemoveRPC(url string) error {
	idx := slices.Index(c.RPCs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found", url)
	}
	c.RPCs = slices.Delete(c.RPCs, idx, idx+1)
	return nil
}

// Poll returns the supply refresh interval.
func (c *Config) Poll() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollInterval) * time.Second
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of wallets.json.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		RPCAlgorithm: defaultAlgorithm,
		PollInterval: defaultPollInterval,
		Sale: Sale{
			ChainID:       defaultChainID,
			TokenPrice:    defaultTokenPrice,
			Symbol:        defaultSymbol,
			MaxTokens:     defaultMaxTokens,
			FreeThreshold: defaultFreeThreshold,
			MaxPurchase:   defaultMaxPurchase,
			MusicEnabled:  true,
		},
		configDir: dir,
	}
}
