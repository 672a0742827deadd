package mint

import (
	"math/big"

	"github.com/Mohsinsiddi/mintpad/internal/config"
)

// Button labels.
const (
	LabelMintFree    = "Mint for Free"
	LabelMintPrefix  = "Mint for "
	LabelExceeds     = "Token exceeds limit"
	LabelTransaction = "Confirm Transaction"
	LabelMinting     = "Minting..."
	LabelSoldOut     = "Sold Out"
	LabelNoSale      = "Coming Soon, Stay Tuned"
)

// Affordance is what the mint controls should look like right now.
// Visible=false means the caller shows its connect prompt instead.
type Affordance struct {
	Visible       bool
	ButtonLabel   string
	ButtonEnabled bool
	InputEnabled  bool
}

// Derive computes the affordance for s. It is a pure function of its inputs;
// rules are checked in order and the first match wins.
func Derive(sale config.Sale, s Session) Affordance {
	switch {
	case sale.SalePaused:
		return Affordance{Visible: true, ButtonLabel: LabelNoSale}
	case !s.Connected:
		return Affordance{}
	case s.Phase == PhaseConfirming:
		return Affordance{Visible: true, ButtonLabel: LabelTransaction}
	case s.Phase == PhaseMinting:
		return Affordance{Visible: true, ButtonLabel: LabelMinting}
	case s.SoldOut():
		return Affordance{Visible: true, ButtonLabel: LabelSoldOut}
	}

	qty, ok := ParseQuantity(s.RequestedQuantity)
	if !ok {
		label := LabelMintPrefix + sale.PriceLabel(1)
		if freeRemaining(sale, s.TotalSupply) {
			label = LabelMintFree
		}
		return Affordance{Visible: true, ButtonLabel: label, InputEnabled: true}
	}

	if s.MaxPurchasePerWallet != nil && qty > *s.MaxPurchasePerWallet {
		return Affordance{Visible: true, ButtonLabel: LabelExceeds, InputEnabled: true}
	}

	label := LabelMintPrefix + sale.PriceLabel(qty)
	if IsFree(sale, s.TotalSupply, qty) {
		label = LabelMintFree
	}
	return Affordance{Visible: true, ButtonLabel: label, ButtonEnabled: true, InputEnabled: true}
}

// IsFree reports whether qty tokens fit entirely inside the free allocation.
// An unknown supply is never free: the chain decides, and underpaying only
// costs a failed estimate while overpaying cannot be undone.
func IsFree(sale config.Sale, total *uint64, qty uint64) bool {
	if sale.FreeThreshold == 0 || total == nil {
		return false
	}
	return *total+qty <= sale.FreeThreshold
}

// Cost is the wei to attach to mint(qty).
func Cost(sale config.Sale, total *uint64, qty uint64) (*big.Int, error) {
	if IsFree(sale, total, qty) {
		return new(big.Int), nil
	}
	price, err := sale.PriceWei()
	if err != nil {
		return nil, err
	}
	return price.Mul(price, new(big.Int).SetUint64(qty)), nil
}

func freeRemaining(sale config.Sale, total *uint64) bool {
	return sale.FreeThreshold > 0 && total != nil && *total < sale.FreeThreshold
}
