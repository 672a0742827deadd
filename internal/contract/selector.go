package contract

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Selector returns the 4-byte function selector for a canonical signature,
// e.g. Selector("mint(uint256)").
func Selector(sig string) string {
	return "0x" + hex.EncodeToString(keccak([]byte(sig))[:4])
}

// EventTopic returns topic0 for an event signature.
func EventTopic(sig string) string {
	return "0x" + hex.EncodeToString(keccak([]byte(sig)))
}

func keccak(b []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil)
}

// transferTopic is topic0 of Transfer(address,address,uint256).
var transferTopic = EventTopic("Transfer(address,address,uint256)")
