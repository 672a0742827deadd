package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// collectionABIJSON is the subset of the collection contract mintpad talks to.
//
//	totalSupply()       → 0x18160ddd
//	maximumTokens()     → see Selector("maximumTokens()")
//	mint(uint256)       → payable, value = price × paid quantity
//	Transfer(a,a,u256)  → emitted once per minted token (from = 0x0)
const collectionABIJSON = `[
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"maximumTokens","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"mint","stateMutability":"payable","inputs":[{"name":"numberOfTokens","type":"uint256"}],"outputs":[]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[
    {"name":"from","type":"address","indexed":true},
    {"name":"to","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true}
  ]}
]`

// CollectionABI is the parsed collection ABI.
var CollectionABI = mustParseABI(collectionABIJSON)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("contract: bad embedded ABI: " + err.Error())
	}
	return parsed
}
