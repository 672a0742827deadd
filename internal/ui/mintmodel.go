package ui

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/contract"
	"github.com/Mohsinsiddi/mintpad/internal/mint"
	"github.com/Mohsinsiddi/mintpad/internal/price"
)

// maxQuantityDigits bounds the quantity field.
const maxQuantityDigits = 4

// SupplyMsg carries one supply poll result.
type SupplyMsg struct{ Update mint.SupplyUpdate }

// ConnectedMsg reports a finished wallet handshake.
type ConnectedMsg struct{ Address string }

// ConnectFailedMsg reports a failed handshake.
type ConnectFailedMsg struct{ Err error }

// ConfirmRequestMsg asks the user to approve a quote. Reply must be buffered;
// the model sends exactly one answer.
type ConfirmRequestMsg struct {
	Quote contract.Quote
	Reply chan<- bool
}

// TxPhaseMsg moves the screen to a new pending phase.
type TxPhaseMsg struct {
	Phase mint.Phase
	Hash  string
}

// MintedMsg reports a confirmed mint.
type MintedMsg struct{ Receipt *contract.Receipt }

// MintFailedMsg reports a rejected or failed mint.
type MintFailedMsg struct{ Err error }

// RateMsg carries the native coin's fiat price for cost estimates.
type RateMsg struct {
	Rate     float64
	Currency string
}

type mintTickMsg struct{}

type toastKind int

const (
	toastInfo toastKind = iota
	toastOK
	toastWarn
	toastErr
)

// MintModel is the interactive minting screen. All session changes happen in
// Update; the button and input are always rendered from mint.Derive.
type MintModel struct {
	Sale    config.Sale
	Session mint.Session

	// OnConnect starts the wallet handshake; it must eventually produce a
	// ConnectedMsg or ConnectFailedMsg.
	OnConnect func() tea.Cmd
	// OnMint starts a mint; it must eventually produce MintedMsg or
	// MintFailedMsg, and may send ConfirmRequestMsg and TxPhaseMsg before.
	OnMint func(qty uint64, value *big.Int) tea.Cmd
	// Open and Copy default to the desktop helpers.
	Open func(url string) error
	Copy func(text string) error

	rate       RateMsg
	connecting bool
	quote      *contract.Quote
	reply      chan<- bool
	txHash     string
	toast      string
	toastKind  toastKind
	frame      int
	Quitting   bool
}

// NewMintModel returns the screen in its mount-time state.
func NewMintModel(sale config.Sale, onConnect func() tea.Cmd, onMint func(uint64, *big.Int) tea.Cmd) MintModel {
	return MintModel{
		Sale:      sale,
		Session:   mint.NewSession(sale),
		OnConnect: onConnect,
		OnMint:    onMint,
		Open:      OpenBrowser,
		Copy:      CopyToClipboard,
	}
}

func mintTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return mintTickMsg{} })
}

// Affordance is the current button/input state.
func (m MintModel) Affordance() mint.Affordance {
	return mint.Derive(m.Sale, m.Session)
}

func (m MintModel) Init() tea.Cmd { return mintTick() }

func (m MintModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case mintTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, mintTick()

	case SupplyMsg:
		m.Session.ApplySupply(msg.Update)

	case RateMsg:
		m.rate = msg

	case ConnectedMsg:
		m.connecting = false
		m.Session.Connect(msg.Address)
		m.setToast(toastOK, "Connected "+Condense(msg.Address))

	case ConnectFailedMsg:
		m.connecting = false
		m.setToast(toastErr, msg.Err.Error())

	case ConfirmRequestMsg:
		q := msg.Quote
		m.quote = &q
		m.reply = msg.Reply
		m.Session.BeginConfirm()

	case TxPhaseMsg:
		switch msg.Phase {
		case mint.PhaseConfirming:
			m.Session.BeginConfirm()
		case mint.PhaseMinting:
			m.Session.BeginMinting()
		}
		if msg.Hash != "" {
			m.txHash = msg.Hash
			m.setToast(toastInfo, "Submitted "+TruncateAddr(msg.Hash))
		}

	case MintedMsg:
		m.quote, m.reply = nil, nil
		qty := msg.Receipt.Quantity
		m.Session.Minted(qty)
		m.txHash = msg.Receipt.Hash
		m.setToast(toastOK, fmt.Sprintf("Minted %d token(s) in block #%d", qty, msg.Receipt.BlockNumber))

	case MintFailedMsg:
		m.quote, m.reply = nil, nil
		m.Session.Failed()
		if errors.Is(msg.Err, contract.ErrUserRejected) {
			m.setToast(toastWarn, "Transaction rejected")
		} else {
			m.setToast(toastErr, msg.Err.Error())
		}
	}
	return m, nil
}

func (m MintModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		m.answer(false)
		m.Quitting = true
		return m, tea.Quit
	}

	// A quote on screen captures the keyboard.
	if m.reply != nil {
		switch key {
		case "y", "enter":
			m.answer(true)
			m.Session.BeginMinting()
		case "n", "esc":
			m.answer(false)
		}
		return m, nil
	}

	a := m.Affordance()
	switch key {
	case "c":
		if m.Session.Connected || m.connecting || m.Sale.SalePaused || m.OnConnect == nil {
			break
		}
		m.connecting = true
		m.toast = ""
		return m, m.OnConnect()

	case "backspace":
		if a.InputEnabled && m.Session.RequestedQuantity != "" {
			q := m.Session.RequestedQuantity
			m.Session.SetQuantity(q[:len(q)-1])
		}

	case "enter":
		if !a.ButtonEnabled || m.OnMint == nil {
			break
		}
		qty, _ := mint.ParseQuantity(m.Session.RequestedQuantity)
		value, err := mint.Cost(m.Sale, m.Session.TotalSupply, qty)
		if err != nil {
			m.setToast(toastErr, err.Error())
			break
		}
		m.toast = ""
		m.Session.BeginConfirm()
		return m, m.OnMint(qty, value)

	case "s":
		if m.Sale.MusicEnabled {
			m.Session.ToggleSound()
		}

	case "o":
		url := chain.ExplorerAddressURL(m.Sale.ChainID, m.Sale.ContractAddress)
		if m.txHash != "" {
			url = chain.ExplorerTxURL(m.Sale.ChainID, m.txHash)
		}
		if url == "" || m.Open == nil {
			m.setToast(toastWarn, "No explorer for this chain")
			break
		}
		if err := m.Open(url); err != nil {
			m.setToast(toastErr, err.Error())
		} else {
			m.setToast(toastInfo, "Opening "+url)
		}

	case "y":
		if !m.Session.Connected || m.Copy == nil {
			break
		}
		if err := m.Copy(m.Session.WalletAddress); err != nil {
			m.setToast(toastErr, "Copy failed")
		} else {
			m.setToast(toastOK, "Copied "+Condense(m.Session.WalletAddress))
		}

	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' && a.InputEnabled &&
			len(m.Session.RequestedQuantity) < maxQuantityDigits {
			m.Session.SetQuantity(m.Session.RequestedQuantity + key)
		}
	}
	return m, nil
}

// answer replies to an open confirmation at most once.
func (m *MintModel) answer(ok bool) {
	if m.reply == nil {
		return
	}
	select {
	case m.reply <- ok:
	default:
	}
	m.reply = nil
}

func (m *MintModel) setToast(k toastKind, s string) {
	m.toastKind = k
	m.toast = s
}

func (m MintModel) View() string {
	if m.Quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(Banner() + "\n")

	a := m.Affordance()
	if !a.Visible {
		m.viewConnect(&sb)
	} else {
		m.viewMint(&sb, a)
	}

	if m.toast != "" {
		sb.WriteString("\n" + m.renderToast() + "\n")
	}
	sb.WriteString("\n" + m.controls(a) + "\n")
	return sb.String()
}

func (m MintModel) viewConnect(sb *strings.Builder) {
	if m.connecting {
		sb.WriteString(StyleBrand.Render(spinnerFrames[m.frame]) + " Connecting wallet…\n")
		return
	}
	sb.WriteString(StyleValue.Render("Connect your wallet to mint") + "\n")
	sb.WriteString(Hint("press c to connect") + "\n")
}

func (m MintModel) viewMint(sb *strings.Builder, a mint.Affordance) {
	s := m.Session
	if s.Connected {
		sb.WriteString(Meta("Wallet  ") + Addr(Condense(s.WalletAddress)) + "\n")
	}

	if supply := mint.SupplyDisplay(s); supply != "" {
		sb.WriteString(Val(supply))
		if s.SupplyStale {
			sb.WriteString("  " + StyleWarning.Render("(may be out of date)"))
		}
		sb.WriteString("\n")
	} else if s.Connected {
		sb.WriteString(Meta("Tokens Claimed: loading…") + "\n")
	}

	if m.Sale.FreeThreshold > 0 {
		sb.WriteString(Meta(fmt.Sprintf("First %d = free, then %s each", m.Sale.FreeThreshold, m.Sale.PriceLabel(1))) + "\n")
	} else {
		sb.WriteString(Meta("Price  "+m.Sale.PriceLabel(1)) + "\n")
	}
	sb.WriteString("\n")

	input := s.RequestedQuantity
	if input == "" {
		input = StyleDim.Render("qty")
	}
	if !a.InputEnabled {
		input = StyleDim.Render(s.RequestedQuantity)
	}
	limit := ""
	if s.MaxPurchasePerWallet != nil {
		limit = Meta(fmt.Sprintf(" max %d", *s.MaxPurchasePerWallet))
	}
	sb.WriteString(StyleInput.Render(input) + limit + "\n")

	label := a.ButtonLabel
	if s.Pending() {
		label = spinnerFrames[m.frame] + " " + label
	}
	if a.ButtonEnabled {
		sb.WriteString(StyleButton.Render(label) + "\n")
	} else {
		sb.WriteString(StyleButtonOff.Render(label) + "\n")
	}

	if m.quote != nil && m.reply != nil {
		sb.WriteString("\n" + m.viewQuote(*m.quote) + "\n")
	}

	if m.Sale.MusicEnabled {
		state := "off"
		if s.SoundEnabled {
			state = "on"
		}
		sb.WriteString(Meta("♪ sound "+state) + "\n")
	}
}

func (m MintModel) viewQuote(q contract.Quote) string {
	sym := m.Sale.Symbol
	maxCost := config.FormatEther(q.MaxCost()) + " " + sym
	if m.rate.Rate > 0 {
		maxCost += " " + price.Format(price.Convert(q.MaxCost(), m.rate.Rate), m.rate.Currency)
	}
	return KeyValueBlock("Confirm Transaction", [][2]string{
		{"Quantity", fmt.Sprintf("%d", q.Quantity)},
		{"Value", config.FormatEther(q.Value) + " " + sym},
		{"Gas limit", fmt.Sprintf("%d", q.Gas)},
		{"Max cost", maxCost},
	}) + "\n" + StyleSuccess.Render("[ y ] approve") + "   " + StyleError.Render("[ n ] reject")
}

func (m MintModel) renderToast() string {
	switch m.toastKind {
	case toastOK:
		return Success(m.toast)
	case toastWarn:
		return Warn(m.toast)
	case toastErr:
		return Err(m.toast)
	}
	return Info(m.toast)
}

func (m MintModel) controls(a mint.Affordance) string {
	sep := Meta("   ")
	var parts []string
	if !m.Session.Connected && !m.Sale.SalePaused {
		parts = append(parts, StyleInfo.Render("[ c ]")+Meta(" connect"))
	}
	if a.InputEnabled {
		parts = append(parts, Meta("[ 0-9 ] quantity"), StyleKey.Render("[ enter ]")+Meta(" mint"))
	}
	if m.Sale.MusicEnabled && a.Visible {
		parts = append(parts, Meta("[ s ] sound"))
	}
	if m.Session.Connected {
		parts = append(parts, Meta("[ y ] copy address"))
	}
	parts = append(parts, StyleInfo.Render("[ o ]")+Meta(" explorer"), Meta("[ q ] quit"))
	return strings.Join(parts, sep)
}
