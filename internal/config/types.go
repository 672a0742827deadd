package config

// Config holds all mintpad configuration.
type Config struct {
	DefaultWallet string   `json:"default_wallet"`
	RPCAlgorithm  string   `json:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	RPCs          []string `json:"rpcs"`
	PollInterval  int      `json:"poll_interval"` // seconds
	Sale          Sale     `json:"sale"`

	// internal: config dir path used for Save()
	configDir string
}

// Sale is the static description of the collection being minted. It is read
// once at startup and passed by value; nothing mutates it afterwards.
type Sale struct {
	ChainID         int64  `json:"chain_id"`
	ContractAddress string `json:"contract_address"`
	TokenPrice      string `json:"token_price"` // decimal ether, e.g. "0.05"
	Symbol          string `json:"symbol"`      // native currency label
	MaxTokens       uint64 `json:"max_tokens"`
	FreeThreshold   uint64 `json:"free_threshold"` // first N tokens are free
	MaxPurchase     uint64 `json:"max_purchase"`   // per-wallet cap, 0 = uncapped
	SalePaused      bool   `json:"sale_paused"`
	MusicEnabled    bool   `json:"music_enabled"`
}
