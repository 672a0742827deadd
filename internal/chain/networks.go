package chain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownNetwork is returned for a chain id that is not in the table.
var ErrUnknownNetwork = errors.New("unknown network")

// Network is static metadata for an EVM chain the minter can target.
type Network struct {
	ChainID        int64
	Name           string
	NativeCurrency string
	Explorer       string   // base URL, no trailing slash; empty = none
	PublicRPCs     []string // used when the config lists no RPCs
}

var networks = map[int64]Network{
	1: {
		ChainID: 1, Name: "Ethereum", NativeCurrency: "ETH",
		Explorer:   "https://etherscan.io",
		PublicRPCs: []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com", "https://rpc.ankr.com/eth"},
	},
	5: {
		ChainID: 5, Name: "Goerli", NativeCurrency: "ETH",
		Explorer:   "https://goerli.etherscan.io",
		PublicRPCs: []string{"https://ethereum-goerli-rpc.publicnode.com"},
	},
	11155111: {
		ChainID: 11155111, Name: "Sepolia", NativeCurrency: "ETH",
		Explorer:   "https://sepolia.etherscan.io",
		PublicRPCs: []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://rpc.sepolia.org"},
	},
	137: {
		ChainID: 137, Name: "Polygon", NativeCurrency: "POL",
		Explorer:   "https://polygonscan.com",
		PublicRPCs: []string{"https://polygon-rpc.com", "https://polygon-bor-rpc.publicnode.com"},
	},
	8453: {
		ChainID: 8453, Name: "Base", NativeCurrency: "ETH",
		Explorer:   "https://basescan.org",
		PublicRPCs: []string{"https://mainnet.base.org", "https://base-rpc.publicnode.com"},
	},
	31337: {
		ChainID: 31337, Name: "Local (Anvil/Hardhat)", NativeCurrency: "ETH",
		PublicRPCs: []string{"http://127.0.0.1:8545"},
	},
}

// LookupNetwork returns metadata for chainID.
func LookupNetwork(chainID int64) (Network, error) {
	n, ok := networks[chainID]
	if !ok {
		return Network{}, fmt.Errorf("%w: chain id %d", ErrUnknownNetwork, chainID)
	}
	return n, nil
}

// AllNetworks returns every known network sorted by chain id.
func AllNetworks() []Network {
	out := make([]Network, 0, len(networks))
	for _, n := range networks {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// ExplorerAddressURL links to an address page, or "" when the chain has no
// known explorer.
func ExplorerAddressURL(chainID int64, address string) string {
	n, ok := networks[chainID]
	if !ok || n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/address/" + address
}

// ExplorerTxURL links to a transaction page, or "".
func ExplorerTxURL(chainID int64, hash string) string {
	n, ok := networks[chainID]
	if !ok || n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/tx/" + hash
}
