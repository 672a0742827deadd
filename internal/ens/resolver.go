// Package ens resolves ENS names so watch-only wallets can be added by name.
package ens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
)

// RegistryAddress is the ENS registry on Ethereum mainnet and Sepolia.
var RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// ErrNotFound is returned when a name has no resolver or no address record.
var ErrNotFound = errors.New("ens name not found")

const ensABIJSON = `[
  {"type":"function","name":"resolver","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"addr","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}
]`

var ensABI = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(ensABIJSON))
	if err != nil {
		panic(err)
	}
	return a
}()

// CallClient is the eth_call side of chain.EVMClient.
type CallClient interface {
	CallContract(ctx context.Context, msg chain.CallMsg) ([]byte, error)
}

// IsName reports whether s looks like an ENS name rather than an address.
func IsName(s string) bool {
	return strings.Contains(s, ".") && !strings.HasPrefix(s, "0x")
}

// Resolve looks up the address record for name via the registry.
func Resolve(ctx context.Context, client CallClient, name string) (common.Address, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	node := Namehash(name)

	resolver, err := callAddress(ctx, client, RegistryAddress, "resolver", node)
	if err != nil {
		return common.Address{}, fmt.Errorf("querying ENS registry: %w", err)
	}
	if resolver == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: no resolver for %q", ErrNotFound, name)
	}

	addr, err := callAddress(ctx, client, resolver, "addr", node)
	if err != nil {
		return common.Address{}, fmt.Errorf("querying ENS resolver: %w", err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: no address record for %q", ErrNotFound, name)
	}
	return addr, nil
}

// Namehash implements EIP-137. Labels are hashed right to left.
func Namehash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := keccak256([]byte(labels[i]))
		node = common.BytesToHash(keccak256(node[:], label))
	}
	return node
}

func callAddress(ctx context.Context, client CallClient, to common.Address, method string, node common.Hash) (common.Address, error) {
	data, err := ensABI.Pack(method, node)
	if err != nil {
		return common.Address{}, err
	}
	out, err := client.CallContract(ctx, chain.CallMsg{To: to, Data: data})
	if err != nil {
		return common.Address{}, err
	}
	if len(out) == 0 {
		return common.Address{}, nil
	}
	vals, err := ensABI.Unpack(method, out)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := vals[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected %s result %T", method, vals[0])
	}
	return addr, nil
}

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
