package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrReceiptTimeout is returned by WaitForReceipt when the context ends
// before the transaction is mined.
var ErrReceiptTimeout = errors.New("transaction not mined in time")

// EVMClient is a minimal JSON-RPC client for EVM chains.
type EVMClient struct {
	url    string
	client *http.Client
	nextID atomic.Int64
}

// CallMsg describes an eth_call / eth_estimateGas request.
type CallMsg struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
}

// TxReceipt holds the on-chain receipt of a mined transaction.
type TxReceipt struct {
	Hash        string
	Status      uint64 // 1 = success, 0 = reverted
	BlockNumber uint64
	GasUsed     uint64
	Logs        []LogEntry
}

// Succeeded reports whether the transaction executed without reverting.
func (r *TxReceipt) Succeeded() bool { return r != nil && r.Status == 1 }

// LogEntry holds one event log.
type LogEntry struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	TxHash  string   `json:"transactionHash"`
}

// RPCError is a JSON-RPC error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// IsRevert reports whether err is an execution revert reported by the node.
func IsRevert(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	// Geth reports reverts with code 3; other clients only say so in the text.
	return rpcErr.Code == 3 || strings.Contains(strings.ToLower(rpcErr.Message), "revert")
}

// NewEVMClient creates a new EVM JSON-RPC client pointed at url.
func NewEVMClient(url string) *EVMClient {
	return &EVMClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// URL returns the endpoint the client talks to.
func (c *EVMClient) URL() string { return c.url }

// BlockNumber returns the latest block number.
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	var res hexutil.Uint64
	if err := c.call(ctx, &res, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(res), nil
}

// ChainID returns the chain's ID.
func (c *EVMClient) ChainID(ctx context.Context) (int64, error) {
	var res hexutil.Big
	if err := c.call(ctx, &res, "eth_chainId"); err != nil {
		return 0, err
	}
	return res.ToInt().Int64(), nil
}

// CallContract runs a read-only call against the latest block.
func (c *EVMClient) CallContract(ctx context.Context, msg CallMsg) ([]byte, error) {
	var res hexutil.Bytes
	if err := c.call(ctx, &res, "eth_call", toCallArg(msg), "latest"); err != nil {
		return nil, err
	}
	return res, nil
}

// EstimateGas estimates gas for a transaction.
func (c *EVMClient) EstimateGas(ctx context.Context, msg CallMsg) (uint64, error) {
	var res hexutil.Uint64
	if err := c.call(ctx, &res, "eth_estimateGas", toCallArg(msg)); err != nil {
		return 0, err
	}
	return uint64(res), nil
}

// GasPrice returns the current legacy gas price.
func (c *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	var res hexutil.Big
	if err := c.call(ctx, &res, "eth_gasPrice"); err != nil {
		return nil, err
	}
	return res.ToInt(), nil
}

// MaxPriorityFee returns the node's suggested EIP-1559 tip.
func (c *EVMClient) MaxPriorityFee(ctx context.Context) (*big.Int, error) {
	var res hexutil.Big
	if err := c.call(ctx, &res, "eth_maxPriorityFeePerGas"); err != nil {
		return nil, err
	}
	return res.ToInt(), nil
}

// PendingNonce returns the next nonce for address, counting queued transactions.
func (c *EVMClient) PendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	var res hexutil.Uint64
	if err := c.call(ctx, &res, "eth_getTransactionCount", address, "pending"); err != nil {
		return 0, err
	}
	return uint64(res), nil
}

// SendRawTransaction broadcasts a signed raw transaction and returns its hash.
func (c *EVMClient) SendRawTransaction(ctx context.Context, raw []byte) (string, error) {
	var hash string
	if err := c.call(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(raw)); err != nil {
		return "", err
	}
	return hash, nil
}

// GetTransactionReceipt fetches the receipt for hash.
// Returns nil, nil if the transaction is still pending.
func (c *EVMClient) GetTransactionReceipt(ctx context.Context, hash string) (*TxReceipt, error) {
	var r *struct {
		Status      hexutil.Uint64 `json:"status"`
		BlockNumber hexutil.Uint64 `json:"blockNumber"`
		GasUsed     hexutil.Uint64 `json:"gasUsed"`
		Logs        []LogEntry     `json:"logs"`
	}
	if err := c.call(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil // still pending
	}
	return &TxReceipt{
		Hash:        hash,
		Status:      uint64(r.Status),
		BlockNumber: uint64(r.BlockNumber),
		GasUsed:     uint64(r.GasUsed),
		Logs:        r.Logs,
	}, nil
}

// WaitForReceipt polls every interval until the transaction is mined or ctx
// ends. A reverted transaction returns its receipt together with an error.
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash string, interval time.Duration) (*TxReceipt, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		receipt, err := c.GetTransactionReceipt(ctx, hash)
		if err != nil && ctx.Err() == nil {
			return nil, err
		}
		if receipt != nil {
			if !receipt.Succeeded() {
				return receipt, fmt.Errorf("transaction reverted (hash: %s)", hash)
			}
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, hash)
		case <-ticker.C:
		}
	}
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *EVMClient) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// --- internal JSON-RPC plumbing ---

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int64         `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

type callArg struct {
	From  *common.Address `json:"from,omitempty"`
	To    common.Address  `json:"to"`
	Data  hexutil.Bytes   `json:"data,omitempty"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

func toCallArg(msg CallMsg) callArg {
	arg := callArg{To: msg.To, Data: msg.Data}
	if msg.From != (common.Address{}) {
		from := msg.From
		arg.From = &from
	}
	if msg.Value != nil && msg.Value.Sign() > 0 {
		arg.Value = (*hexutil.Big)(msg.Value)
	}
	return arg
}

func (c *EVMClient) call(ctx context.Context, result interface{}, method string, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parsing response (HTTP %d): %w", resp.StatusCode, err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if len(rpcResp.Result) == 0 {
		return fmt.Errorf("%s: empty result", method)
	}

	if err := json.Unmarshal(rpcResp.Result, result); err != nil {
		return fmt.Errorf("parsing %s result: %w", method, err)
	}
	return nil
}
