// Package mint holds the minting screen's state and the rules that turn it
// into button and input affordances.
package mint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mohsinsiddi/mintpad/internal/config"
)

// Phase is the mint transaction's progress as seen by the screen.
type Phase int

const (
	PhaseIdle       Phase = iota
	PhaseConfirming       // waiting for the user to approve the quote
	PhaseMinting          // broadcast, waiting for the receipt
)

func (p Phase) String() string {
	switch p {
	case PhaseConfirming:
		return "confirming"
	case PhaseMinting:
		return "minting"
	}
	return "idle"
}

// Session is everything the minting screen knows. It lives for one screen
// mount and is only touched from the UI loop.
type Session struct {
	Connected            bool
	WalletAddress        string
	TotalSupply          *uint64
	MaximumSupply        *uint64
	MaxPurchasePerWallet *uint64
	RequestedQuantity    string
	SoundEnabled         bool
	Phase                Phase
	SupplyStale          bool
}

// NewSession returns the mount-time state for sale.
func NewSession(sale config.Sale) Session {
	s := Session{SoundEnabled: true}
	if sale.MaxPurchase > 0 {
		s.MaxPurchasePerWallet = ptr(sale.MaxPurchase)
	}
	return s
}

// Connect records a successful wallet connection.
func (s *Session) Connect(address string) {
	s.Connected = true
	s.WalletAddress = address
}

// SetQuantity stores the raw quantity text.
func (s *Session) SetQuantity(raw string) {
	s.RequestedQuantity = raw
}

// ToggleSound flips the music switch.
func (s *Session) ToggleSound() {
	s.SoundEnabled = !s.SoundEnabled
}

// ApplySupply merges a poll result. Nil fields keep the last known value.
func (s *Session) ApplySupply(u SupplyUpdate) {
	if u.Total != nil {
		s.TotalSupply = ptr(*u.Total)
	}
	if u.Max != nil {
		s.MaximumSupply = ptr(*u.Max)
	}
	s.SupplyStale = u.Stale
}

// BeginConfirm enters the approval phase.
func (s *Session) BeginConfirm() { s.Phase = PhaseConfirming }

// BeginMinting enters the broadcast phase.
func (s *Session) BeginMinting() { s.Phase = PhaseMinting }

// Minted ends a successful mint and bumps the local supply by qty. The bump
// is provisional: the next supply poll overwrites it with the chain's value.
func (s *Session) Minted(qty uint64) {
	s.Phase = PhaseIdle
	if s.TotalSupply != nil {
		s.TotalSupply = ptr(*s.TotalSupply + qty)
	}
}

// Failed ends a rejected or failed mint; the button becomes usable again.
func (s *Session) Failed() { s.Phase = PhaseIdle }

// Pending reports whether a mint is in flight.
func (s Session) Pending() bool { return s.Phase != PhaseIdle }

// SoldOut reports total >= max with both known.
func (s Session) SoldOut() bool {
	return s.TotalSupply != nil && s.MaximumSupply != nil && *s.TotalSupply >= *s.MaximumSupply
}

// SupplyDisplay renders "Tokens Claimed: n/m", or "" until both are known.
func SupplyDisplay(s Session) string {
	if s.TotalSupply == nil || s.MaximumSupply == nil {
		return ""
	}
	return fmt.Sprintf("Tokens Claimed: %d/%d", *s.TotalSupply, *s.MaximumSupply)
}

// ParseQuantity parses the raw input. Only whole numbers >= 1 are valid.
func ParseQuantity(raw string) (uint64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	q, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || q == 0 {
		return 0, false
	}
	return q, true
}

func ptr(v uint64) *uint64 { return &v }
