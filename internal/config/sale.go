package config

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sale validation errors.
var (
	ErrNoContract      = errors.New("no contract address configured")
	ErrInvalidContract = errors.New("invalid contract address")
	ErrInvalidPrice    = errors.New("invalid token price")
)

var weiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Validate reports whether the sale section is usable for reading and minting.
func (s Sale) Validate() error {
	if s.ContractAddress == "" {
		return ErrNoContract
	}
	if !common.IsHexAddress(s.ContractAddress) {
		return fmt.Errorf("%w: %s", ErrInvalidContract, s.ContractAddress)
	}
	if s.ChainID <= 0 {
		return fmt.Errorf("invalid chain id %d", s.ChainID)
	}
	if _, err := s.PriceWei(); err != nil {
		return err
	}
	return nil
}

// Contract returns the collection address.
func (s Sale) Contract() common.Address {
	return common.HexToAddress(s.ContractAddress)
}

// PriceWei parses TokenPrice (decimal ether) into wei.
func (s Sale) PriceWei() (*big.Int, error) {
	return EtherToWei(s.TokenPrice)
}

// PriceLabel renders the cost of qty tokens, e.g. "0.03 ETH". A zero qty
// renders the unit price.
func (s Sale) PriceLabel(qty uint64) string {
	wei, err := s.PriceWei()
	if err != nil {
		return s.TokenPrice + " " + s.Symbol
	}
	if qty > 1 {
		wei.Mul(wei, new(big.Int).SetUint64(qty))
	}
	return FormatEther(wei) + " " + s.Symbol
}

// EtherToWei converts a decimal ether string ("0.05") to wei. More than 18
// fractional digits is an error rather than a silent truncation.
func EtherToWei(v string) (*big.Int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}
	r, ok := new(big.Rat).SetString(v)
	if !ok || r.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, v)
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerEther))
	if !r.IsInt() {
		return nil, fmt.Errorf("%w: %q has more than 18 decimals", ErrInvalidPrice, v)
	}
	return new(big.Int).Set(r.Num()), nil
}

// FormatEther renders wei as a trimmed decimal ether string: 1.5e16 → "0.015".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	s := new(big.Rat).SetFrac(wei, weiPerEther).FloatString(18)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
