package cmd

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/contract"
	"github.com/Mohsinsiddi/mintpad/internal/mint"
	"github.com/Mohsinsiddi/mintpad/internal/price"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
	"github.com/Mohsinsiddi/mintpad/internal/wallet"
)

var errNotConnected = errors.New("wallet not connected")

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Open the interactive mint screen",
	Long: `Open the mint screen for the configured collection.

  c       connect the default wallet (or --wallet)
  0-9     quantity
  enter   mint, then y/n to approve the quote
  s       sound on/off (when the sale has music)
  o       open the contract or last tx in the block explorer
  y       copy the connected address
  q       quit

Supply refreshes every poll interval while the screen is open.
Use --log-file to keep a log; nothing is written to the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Sale.SalePaused {
			if err := cfg.Sale.Validate(); err != nil {
				return err
			}
		}
		connector, err := wallet.NewConnector(newWalletManager(), cfg, walletFlag)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		screen := &mintScreen{ctx: ctx, sale: cfg.Sale, poll: cfg.Poll(), connector: connector}
		defer screen.close()

		model := ui.NewMintModel(cfg.Sale, screen.connect, screen.mint)
		screen.prog = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = screen.prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	},
}

// mintScreen runs the side effects behind the mint screen: the connect
// handshake, the supply poller and mint transactions. Results reach the
// model as messages.
type mintScreen struct {
	ctx       context.Context
	sale      config.Sale
	poll      time.Duration
	connector *wallet.Connector
	prog      *tea.Program

	mu       sync.Mutex
	conn     *wallet.Connection
	stopPoll func()
}

func (s *mintScreen) connect() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(s.ctx, config.ConnectTimeout)
		defer cancel()

		conn, err := s.connector.Connect(ctx)
		if err != nil {
			log.Warn("Wallet connect failed", "err", err)
			return ui.ConnectFailedMsg{Err: err}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.conn = conn
		if s.stopPoll != nil {
			s.stopPoll()
		}
		poller := &mint.Poller{
			Reader:   contract.NewReader(conn.Client, s.sale.Contract()),
			Interval: s.poll,
		}
		s.stopPoll = poller.Start(s.ctx, func(u mint.SupplyUpdate) {
			s.prog.Send(ui.SupplyMsg{Update: u})
		})
		go s.fetchRate()
		return ui.ConnectedMsg{Address: conn.Address.Hex()}
	}
}

func (s *mintScreen) mint(qty uint64, value *big.Int) tea.Cmd {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	return func() tea.Msg {
		if conn == nil {
			return ui.MintFailedMsg{Err: errNotConnected}
		}
		ctx, cancel := context.WithTimeout(s.ctx, config.TxConfirmTimeout)
		defer cancel()

		minter := contract.NewMinter(conn.Client, conn.Signer, s.sale.Contract(), s.sale.ChainID)
		receipt, err := minter.Mint(ctx, qty, value, contract.Hooks{
			Confirm: func(q contract.Quote) bool {
				reply := make(chan bool, 1)
				s.prog.Send(ui.ConfirmRequestMsg{Quote: q, Reply: reply})
				select {
				case ok := <-reply:
					return ok
				case <-ctx.Done():
					return false
				}
			},
			Submitted: func(hash string) {
				s.prog.Send(ui.TxPhaseMsg{Phase: mint.PhaseMinting, Hash: hash})
			},
		})
		if err != nil {
			log.Warn("Mint failed", "quantity", qty, "err", err)
			return ui.MintFailedMsg{Err: err}
		}
		return ui.MintedMsg{Receipt: receipt}
	}
}

// fetchRate sends the fiat rate once; estimates are simply omitted on failure.
func (s *mintScreen) fetchRate() {
	ctx, cancel := context.WithTimeout(s.ctx, config.ReadTimeout)
	defer cancel()
	f := price.NewFetcher("usd")
	rate, err := f.NativePrice(ctx, s.sale.ChainID)
	if err != nil {
		log.Debug("No fiat rate", "chain", s.sale.ChainID, "err", err)
		return
	}
	s.prog.Send(ui.RateMsg{Rate: rate, Currency: f.Currency()})
}

// close stops the supply poller.
func (s *mintScreen) close() {
	s.mu.Lock()
	stop := s.stopPoll
	s.stopPoll = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func init() {
	mintCmd.Flags().StringVarP(&walletFlag, "wallet", "w", "", "wallet to connect (default: configured default)")
}
