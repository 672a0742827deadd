package contract

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

// defaultTip is used when the node does not support eth_maxPriorityFeePerGas.
var defaultTip = big.NewInt(1_500_000_000)

// TxClient is the write side of chain.EVMClient.
type TxClient interface {
	EstimateGas(ctx context.Context, msg chain.CallMsg) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	MaxPriorityFee(ctx context.Context) (*big.Int, error)
	PendingNonce(ctx context.Context, address common.Address) (uint64, error)
	SendRawTransaction(ctx context.Context, raw []byte) (string, error)
	WaitForReceipt(ctx context.Context, hash string, interval time.Duration) (*chain.TxReceipt, error)
}

// TxSigner signs transactions for the connected wallet.
type TxSigner interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// Quote is what the user approves before anything is signed.
type Quote struct {
	Quantity uint64
	Value    *big.Int // wei attached to the call
	Gas      uint64
	MaxFee   *big.Int // per gas
}

// MaxCost is the worst-case wei spent: value + gas × max fee.
func (q Quote) MaxCost() *big.Int {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(q.Gas), q.MaxFee)
	return cost.Add(cost, q.Value)
}

// Hooks let the caller observe the two pending phases of a mint.
// Confirm returning false aborts with ErrUserRejected; nil approves.
type Hooks struct {
	Confirm   func(Quote) bool
	Submitted func(hash string)
}

// Receipt is a confirmed mint.
type Receipt struct {
	Hash        string
	BlockNumber uint64
	Quantity    uint64 // tokens actually minted to the wallet
}

// Minter sends mint transactions for one wallet.
type Minter struct {
	client   TxClient
	signer   TxSigner
	address  common.Address
	chainID  *big.Int
	interval time.Duration
}

// NewMinter creates a Minter for the collection at address.
func NewMinter(client TxClient, signer TxSigner, address common.Address, chainID int64) *Minter {
	return &Minter{
		client:   client,
		signer:   signer,
		address:  address,
		chainID:  big.NewInt(chainID),
		interval: config.ReceiptPollInterval,
	}
}

// Mint calls mint(quantity) with value wei attached, waits for the receipt and
// reports how many tokens landed in the wallet. Every failure is a *TxError.
func (m *Minter) Mint(ctx context.Context, quantity uint64, value *big.Int, hooks Hooks) (*Receipt, error) {
	if quantity == 0 {
		return nil, chainErr("", "quantity must be at least 1")
	}
	if value == nil {
		value = new(big.Int)
	}
	from := m.signer.Address()

	data, err := CollectionABI.Pack("mint", new(big.Int).SetUint64(quantity))
	if err != nil {
		return nil, chainErr("", "encoding mint: %w", err)
	}

	gas, err := m.client.EstimateGas(ctx, chain.CallMsg{From: from, To: m.address, Data: data, Value: value})
	if err != nil {
		if chain.IsRevert(err) {
			return nil, chainErr("", "mint would revert: %w", err)
		}
		gas = config.GasLimitMint + config.GasLimitMintPerToken*(quantity-1)
		log.Debug("Gas estimate failed, using fallback", "gas", gas, "err", err)
	}

	tip, err := m.client.MaxPriorityFee(ctx)
	if err != nil {
		tip = new(big.Int).Set(defaultTip)
	}
	gasPrice, err := m.client.GasPrice(ctx)
	if err != nil {
		return nil, chainErr("", "getting gas price: %w", err)
	}
	feeCap := new(big.Int).Mul(gasPrice, big.NewInt(2))
	feeCap.Add(feeCap, tip)

	quote := Quote{Quantity: quantity, Value: value, Gas: gas, MaxFee: feeCap}
	if hooks.Confirm != nil && !hooks.Confirm(quote) {
		return nil, &TxError{Kind: UserRejected, Err: ErrUserRejected}
	}

	nonce, err := m.client.PendingNonce(ctx, from)
	if err != nil {
		return nil, chainErr("", "getting nonce: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   m.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &m.address,
		Value:     value,
		Data:      data,
	})

	raw, err := m.signer.SignTx(tx, m.chainID)
	if err != nil {
		return nil, chainErr("", "signing transaction: %w", err)
	}

	hash, err := m.client.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, chainErr("", "broadcasting transaction: %w", err)
	}
	log.Info("Mint transaction sent", "hash", hash, "quantity", quantity, "nonce", nonce)
	if hooks.Submitted != nil {
		hooks.Submitted(hash)
	}

	receipt, err := m.client.WaitForReceipt(ctx, hash, m.interval)
	if err != nil {
		return nil, chainErr(hash, "%w", err)
	}

	minted := countMinted(receipt.Logs, m.address, from)
	if minted == 0 {
		// Non-standard collection without Transfer logs; trust the request.
		minted = quantity
	}
	return &Receipt{Hash: hash, BlockNumber: receipt.BlockNumber, Quantity: minted}, nil
}

// countMinted counts Transfer(0x0 → to) logs emitted by collection.
func countMinted(logs []chain.LogEntry, collection, to common.Address) uint64 {
	zero := common.Hash{}.Hex()
	toTopic := common.BytesToHash(to.Bytes()).Hex()

	var n uint64
	for _, l := range logs {
		if len(l.Topics) != 4 || !strings.EqualFold(l.Topics[0], transferTopic) {
			continue
		}
		if common.HexToAddress(l.Address) != collection {
			continue
		}
		if strings.EqualFold(l.Topics[1], zero) && strings.EqualFold(l.Topics[2], toTopic) {
			n++
		}
	}
	return n
}
