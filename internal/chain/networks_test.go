package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

func TestExplorerAddressURLMainnet(t *testing.T) {
	assert.Equal(t, "https://etherscan.io/address/"+testContract, ExplorerAddressURL(1, testContract))
}

func TestExplorerAddressURLGoerli(t *testing.T) {
	assert.Equal(t, "https://goerli.etherscan.io/address/"+testContract, ExplorerAddressURL(5, testContract))
}

func TestExplorerURLUnknownChain(t *testing.T) {
	assert.Empty(t, ExplorerAddressURL(424242, testContract))
	assert.Empty(t, ExplorerTxURL(424242, "0xabc"))
}

func TestExplorerURLLocalChainHasNone(t *testing.T) {
	assert.Empty(t, ExplorerTxURL(31337, "0xabc"))
}

func TestExplorerTxURL(t *testing.T) {
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", ExplorerTxURL(11155111, "0xabc"))
}

func TestLookupNetwork(t *testing.T) {
	n, err := LookupNetwork(8453)
	require.NoError(t, err)
	assert.Equal(t, "Base", n.Name)
	assert.NotEmpty(t, n.PublicRPCs)

	_, err = LookupNetwork(99)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestAllNetworksSorted(t *testing.T) {
	all := AllNetworks()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ChainID, all[i].ChainID)
	}
}
