package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

// CallClient is the read side of chain.EVMClient.
type CallClient interface {
	CallContract(ctx context.Context, msg chain.CallMsg) ([]byte, error)
}

// Reader reads supply figures from the collection contract.
type Reader struct {
	client  CallClient
	address common.Address
}

// NewReader creates a Reader for the collection at address.
func NewReader(client CallClient, address common.Address) *Reader {
	return &Reader{client: client, address: address}
}

// TotalSupply returns the number of tokens minted so far.
func (r *Reader) TotalSupply(ctx context.Context) (uint64, error) {
	return r.readUint(ctx, "totalSupply")
}

// MaximumTokens returns the collection's supply cap.
func (r *Reader) MaximumTokens(ctx context.Context) (uint64, error) {
	return r.readUint(ctx, "maximumTokens")
}

func (r *Reader) readUint(ctx context.Context, method string) (uint64, error) {
	data, err := CollectionABI.Pack(method)
	if err != nil {
		return 0, &ReadError{Method: method, Err: err}
	}

	out, err := r.client.CallContract(ctx, chain.CallMsg{To: r.address, Data: data})
	if err != nil {
		return 0, &ReadError{Method: method, Err: err}
	}
	if len(out) == 0 {
		// eth_call on an address without code returns "0x".
		return 0, &ReadError{Method: method, Err: fmt.Errorf("empty result, is %s a contract?", r.address.Hex())}
	}

	vals, err := CollectionABI.Unpack(method, out)
	if err != nil {
		return 0, &ReadError{Method: method, Err: err}
	}
	n, ok := vals[0].(*big.Int)
	if !ok || !n.IsUint64() {
		return 0, &ReadError{Method: method, Err: fmt.Errorf("unexpected value %v", vals[0])}
	}
	return n.Uint64(), nil
}
