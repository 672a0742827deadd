package ui

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/contract"
	"github.com/Mohsinsiddi/mintpad/internal/mint"
	"github.com/Mohsinsiddi/mintpad/internal/wallet"
)

const testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

type connectMarker struct{}

type mintCall struct {
	qty   uint64
	value *big.Int
}

func testSale() config.Sale {
	return config.Sale{
		ChainID:         1,
		ContractAddress: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		TokenPrice:      "0.01",
		Symbol:          "ETH",
		MaxTokens:       10000,
		FreeThreshold:   1000,
		MaxPurchase:     5,
		MusicEnabled:    true,
	}
}

func newTestModel(sale config.Sale, calls *[]mintCall) MintModel {
	m := NewMintModel(sale,
		func() tea.Cmd { return func() tea.Msg { return connectMarker{} } },
		func(qty uint64, value *big.Int) tea.Cmd {
			*calls = append(*calls, mintCall{qty, value})
			return nil
		})
	m.Open = func(string) error { return nil }
	m.Copy = func(string) error { return nil }
	return m
}

func send(t *testing.T, m MintModel, msgs ...tea.Msg) MintModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MintModel)
	}
	return m
}

func keys(s string) []tea.Msg {
	var out []tea.Msg
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func u64(v uint64) *uint64 { return &v }

func connectedModel(t *testing.T, calls *[]mintCall, total uint64) MintModel {
	m := newTestModel(testSale(), calls)
	return send(t, m,
		ConnectedMsg{Address: testAddr},
		SupplyMsg{Update: mint.SupplyUpdate{Total: u64(total), Max: u64(10000)}},
	)
}

func TestMintModelShowsConnectPrompt(t *testing.T) {
	var calls []mintCall
	m := newTestModel(testSale(), &calls)
	view := m.View()
	assert.Contains(t, view, "Connect your wallet")
	assert.NotContains(t, view, mint.LabelMintFree)
}

func TestMintModelConnectKeyStartsHandshake(t *testing.T) {
	var calls []mintCall
	m := newTestModel(testSale(), &calls)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	require.NotNil(t, cmd)
	assert.IsType(t, connectMarker{}, cmd())
	m = next.(MintModel)
	assert.Contains(t, m.View(), "Connecting")

	// a second press while connecting is ignored
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
}

func TestMintModelConnectFailureToast(t *testing.T) {
	var calls []mintCall
	m := newTestModel(testSale(), &calls)
	m = send(t, m, ConnectFailedMsg{Err: &wallet.ConnectionError{Stage: "rpc", Err: errors.New("no healthy rpc")}})
	view := m.View()
	assert.Contains(t, view, "no healthy rpc")
	assert.Contains(t, view, "Connect your wallet")
	assert.False(t, m.Session.Connected)
}

func TestMintModelConnectedView(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	view := m.View()
	assert.Contains(t, view, Condense(testAddr))
	assert.Contains(t, view, "Tokens Claimed: 12/10000")
	assert.Contains(t, view, mint.LabelMintFree)
	assert.False(t, m.Affordance().ButtonEnabled)
}

func TestMintModelQuantityInput(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)

	m = send(t, m, keys("3")...)
	assert.Equal(t, "3", m.Session.RequestedQuantity)
	assert.True(t, m.Affordance().ButtonEnabled)

	m = send(t, m, keys("x")...)
	assert.Equal(t, "3", m.Session.RequestedQuantity)

	m = send(t, m, keys("0")...)
	assert.Equal(t, mint.LabelExceeds, m.Affordance().ButtonLabel)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "3", m.Session.RequestedQuantity)

	m = send(t, m, keys("99999")...)
	assert.Len(t, m.Session.RequestedQuantity, maxQuantityDigits)
}

func TestMintModelEnterStartsFreeMint(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, keys("2")...)
	m = send(t, m, enter)

	require.Len(t, calls, 1)
	assert.Equal(t, uint64(2), calls[0].qty)
	assert.Equal(t, 0, calls[0].value.Sign())
	assert.Equal(t, mint.PhaseConfirming, m.Session.Phase)
	assert.Equal(t, mint.LabelTransaction, m.Affordance().ButtonLabel)
	assert.False(t, m.Affordance().ButtonEnabled)

	// pending: enter does nothing
	m = send(t, m, enter)
	assert.Len(t, calls, 1)
}

func TestMintModelEnterPaidMint(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 5000)
	m = send(t, m, keys("3")...)
	assert.Contains(t, m.View(), "Mint for 0.03 ETH")
	m = send(t, m, enter)

	require.Len(t, calls, 1)
	want, _ := new(big.Int).SetString("30000000000000000", 10)
	assert.Equal(t, want, calls[0].value)
}

func TestMintModelConfirmApprove(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, keys("1")...)
	m = send(t, m, enter)

	reply := make(chan bool, 1)
	m = send(t, m, ConfirmRequestMsg{
		Quote: contract.Quote{Quantity: 1, Value: new(big.Int), Gas: 250000, MaxFee: big.NewInt(2_000_000_000)},
		Reply: reply,
	})
	view := m.View()
	assert.Contains(t, view, "Max cost")
	assert.Contains(t, view, "0.0005 ETH")

	m = send(t, m, keys("y")...)
	assert.True(t, <-reply)
	assert.Equal(t, mint.PhaseMinting, m.Session.Phase)
	assert.Equal(t, mint.LabelMinting, m.Affordance().ButtonLabel)

	m = send(t, m, TxPhaseMsg{Phase: mint.PhaseMinting, Hash: "0xabc123"})
	m = send(t, m, MintedMsg{Receipt: &contract.Receipt{Hash: "0xabc123", BlockNumber: 77, Quantity: 1}})
	assert.Equal(t, mint.PhaseIdle, m.Session.Phase)
	assert.Equal(t, uint64(13), *m.Session.TotalSupply)
	assert.Contains(t, m.View(), "Minted 1 token(s) in block #77")
	assert.True(t, m.Affordance().ButtonEnabled)
}

func TestMintModelConfirmReject(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, keys("1")...)
	m = send(t, m, enter)

	reply := make(chan bool, 1)
	m = send(t, m, ConfirmRequestMsg{Quote: contract.Quote{Quantity: 1, Value: new(big.Int), MaxFee: new(big.Int)}, Reply: reply})
	m = send(t, m, keys("n")...)
	assert.False(t, <-reply)

	m = send(t, m, MintFailedMsg{Err: &contract.TxError{Kind: contract.UserRejected, Err: contract.ErrUserRejected}})
	assert.Equal(t, mint.PhaseIdle, m.Session.Phase)
	assert.True(t, m.Affordance().ButtonEnabled)
	assert.Contains(t, m.View(), "Transaction rejected")
}

func TestMintModelChainFailureReEnables(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, keys("1")...)
	m = send(t, m, enter, TxPhaseMsg{Phase: mint.PhaseMinting, Hash: "0xdead"})
	m = send(t, m, MintFailedMsg{Err: &contract.TxError{Kind: contract.ChainError, Hash: "0xdead", Err: errors.New("reverted")}})

	assert.True(t, m.Affordance().ButtonEnabled)
	assert.Contains(t, m.View(), "reverted")
}

func TestMintModelQuitRejectsOpenQuote(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	reply := make(chan bool, 1)
	m = send(t, m, ConfirmRequestMsg{Quote: contract.Quote{Value: new(big.Int), MaxFee: new(big.Int)}, Reply: reply})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, <-reply)
	assert.Empty(t, next.View())
}

func TestMintModelSoldOut(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 10000)
	assert.Contains(t, m.View(), mint.LabelSoldOut)
	m = send(t, m, keys("1")...)
	assert.Empty(t, m.Session.RequestedQuantity)
}

func TestMintModelPaused(t *testing.T) {
	sale := testSale()
	sale.SalePaused = true
	var calls []mintCall
	m := newTestModel(sale, &calls)

	assert.Contains(t, m.View(), mint.LabelNoSale)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
}

func TestMintModelStaleHint(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, SupplyMsg{Update: mint.SupplyUpdate{Stale: true}})
	view := m.View()
	assert.Contains(t, view, "Tokens Claimed: 12/10000")
	assert.Contains(t, view, "out of date")
}

func TestMintModelSoundToggle(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	assert.Contains(t, m.View(), "sound on")
	m = send(t, m, keys("s")...)
	assert.Contains(t, m.View(), "sound off")

	sale := testSale()
	sale.MusicEnabled = false
	quiet := newTestModel(sale, &calls)
	quiet = send(t, quiet, ConnectedMsg{Address: testAddr})
	quiet = send(t, quiet, keys("s")...)
	assert.True(t, quiet.Session.SoundEnabled)
	assert.NotContains(t, quiet.View(), "sound")
}

func TestMintModelOpenExplorer(t *testing.T) {
	var calls []mintCall
	var opened []string
	m := connectedModel(t, &calls, 12)
	m.Open = func(url string) error { opened = append(opened, url); return nil }

	m = send(t, m, keys("o")...)
	require.Len(t, opened, 1)
	assert.True(t, strings.HasSuffix(opened[0], "/address/"+testSale().ContractAddress))

	m = send(t, m, TxPhaseMsg{Phase: mint.PhaseMinting, Hash: "0xfeed"})
	send(t, m, keys("o")...)
	require.Len(t, opened, 2)
	assert.True(t, strings.HasSuffix(opened[1], "/tx/0xfeed"))
}

func TestMintModelCopyAddress(t *testing.T) {
	var calls []mintCall
	var copied string
	m := connectedModel(t, &calls, 12)
	m.Copy = func(s string) error { copied = s; return nil }
	m = send(t, m, keys("y")...)
	assert.Equal(t, testAddr, copied)
	assert.Contains(t, m.View(), "Copied")
}

func TestMintModelQuoteShowsFiatEstimate(t *testing.T) {
	var calls []mintCall
	m := connectedModel(t, &calls, 12)
	m = send(t, m, RateMsg{Rate: 2000, Currency: "usd"})
	reply := make(chan bool, 1)
	m = send(t, m, ConfirmRequestMsg{
		Quote: contract.Quote{Quantity: 1, Value: new(big.Int), Gas: 250000, MaxFee: big.NewInt(2_000_000_000)},
		Reply: reply,
	})
	// 0.0005 ETH at 2000
	assert.Contains(t, m.View(), "~$1.00")
}
