package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Pass method→result pairs; any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int64  `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
		} else {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
		}
	}))
}

// rpcErrorServer creates a test HTTP server that always returns a JSON-RPC error.
func rpcErrorServer(t *testing.T, code int, msg string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": code, "message": msg},
		})
	}))
}

// ---------------------------------------------------------------------------
// simple reads
// ---------------------------------------------------------------------------

func TestBlockNumber(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x1b4"})
	defer srv.Close()

	n, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(436), n)
}

func TestChainID(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_chainId": "0xaa36a7"})
	defer srv.Close()

	id, err := NewEVMClient(srv.URL).ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11155111), id)
}

func TestCallContract(t *testing.T) {
	word := "0x00000000000000000000000000000000000000000000000000000000000003e7"
	srv := rpcMock(t, map[string]interface{}{"eth_call": word})
	defer srv.Close()

	out, err := NewEVMClient(srv.URL).CallContract(context.Background(), CallMsg{
		To:   common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Data: []byte{0x18, 0x16, 0x0d, 0xdd},
	})
	require.NoError(t, err)
	require.Len(t, out, 32)
	assert.Equal(t, int64(999), new(big.Int).SetBytes(out).Int64())
}

func TestEstimateGas(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_estimateGas": "0x5208"})
	defer srv.Close()

	gas, err := NewEVMClient(srv.URL).EstimateGas(context.Background(), CallMsg{Value: big.NewInt(1)})
	require.NoError(t, err)
	assert.Equal(t, uint64(21000), gas)
}

func TestPendingNonceAndFees(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionCount":  "0x7",
		"eth_gasPrice":             "0x3b9aca00",
		"eth_maxPriorityFeePerGas": "0x59682f00",
	})
	defer srv.Close()
	c := NewEVMClient(srv.URL)
	ctx := context.Background()

	nonce, err := c.PendingNonce(ctx, common.Address{})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)

	gp, err := c.GasPrice(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000_000), gp.Int64())

	tip, err := c.MaxPriorityFee(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000_000), tip.Int64())
}

func TestSendRawTransaction(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_sendRawTransaction": "0xfeed"})
	defer srv.Close()

	hash, err := NewEVMClient(srv.URL).SendRawTransaction(context.Background(), []byte{0x02, 0xf8})
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", hash)
}

// ---------------------------------------------------------------------------
// errors
// ---------------------------------------------------------------------------

func TestRPCErrorIsTyped(t *testing.T) {
	srv := rpcErrorServer(t, -32000, "header not found")
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).BlockNumber(context.Background())
	require.Error(t, err)
	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32000, rpcErr.Code)
	assert.False(t, IsRevert(err))
}

func TestIsRevert(t *testing.T) {
	srv := rpcErrorServer(t, 3, "execution reverted: Sale not active")
	defer srv.Close()

	_, err := NewEVMClient(srv.URL).EstimateGas(context.Background(), CallMsg{})
	assert.True(t, IsRevert(err))
	assert.True(t, IsRevert(&RPCError{Code: -32000, Message: "VM Exception: revert"}))
	assert.False(t, IsRevert(context.Canceled))
}

func TestUnreachableEndpoint(t *testing.T) {
	_, err := NewEVMClient("http://127.0.0.1:1").BlockNumber(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RPC request failed")
}

// ---------------------------------------------------------------------------
// receipts
// ---------------------------------------------------------------------------

func TestGetTransactionReceiptSuccess(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{
			"status":      "0x1",
			"blockNumber": "0x100",
			"gasUsed":     "0x5208",
			"logs": []map[string]interface{}{{
				"address": "0x5fbdb2315678afecb367f032d93f642f64180aa3",
				"topics":  []string{"0xddf2"},
				"data":    "0x",
			}},
		},
	})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).GetTransactionReceipt(context.Background(), "0xtxhash")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, uint64(256), receipt.BlockNumber)
	assert.Equal(t, uint64(21000), receipt.GasUsed)
	assert.Equal(t, "0xtxhash", receipt.Hash)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, []string{"0xddf2"}, receipt.Logs[0].Topics)
}

func TestGetTransactionReceiptPending(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).GetTransactionReceipt(context.Background(), "0xtxhash")
	require.NoError(t, err)
	assert.Nil(t, receipt)
}

func TestWaitForReceiptMinesAfterPending(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) < 3 {
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":null}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"status":"0x1","blockNumber":"0x2","gasUsed":"0x1","logs":[]}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), receipt.BlockNumber)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitForReceiptReverted(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{
		"eth_getTransactionReceipt": map[string]interface{}{"status": "0x0", "blockNumber": "0x1", "gasUsed": "0x1"},
	})
	defer srv.Close()

	receipt, err := NewEVMClient(srv.URL).WaitForReceipt(context.Background(), "0xabc", 10*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reverted")
	require.NotNil(t, receipt)
	assert.False(t, receipt.Succeeded())
}

func TestWaitForReceiptTimeout(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_getTransactionReceipt": nil})
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewEVMClient(srv.URL).WaitForReceipt(ctx, "0xabc", 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrReceiptTimeout)
}

func TestPing(t *testing.T) {
	srv := rpcMock(t, map[string]interface{}{"eth_blockNumber": "0x10"})
	defer srv.Close()

	latency, block, err := NewEVMClient(srv.URL).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), block)
	assert.Greater(t, latency, time.Duration(0))
}
