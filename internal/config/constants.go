package config

import "time"

// Gas limits used as EstimateGas fallbacks when the node cannot simulate the tx.
const (
	GasLimitMint         = uint64(250_000) // per-token mint on a typical ERC-721A
	GasLimitMintPerToken = uint64(60_000)  // added per extra token in a batch
)

// Timeouts and intervals.
const (
	RPCSelectTimeout    = 10 * time.Second // endpoint benchmark
	ConnectTimeout      = 15 * time.Second // wallet connect handshake
	ReadTimeout         = 10 * time.Second // single contract read
	TxConfirmTimeout    = 3 * time.Minute  // mint confirmation wait
	ReceiptPollInterval = 2 * time.Second
	DefaultPollInterval = 5 * time.Second // supply refresh
)
