package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// ErrNoWallet is returned when no wallet was named and no default exists.
var ErrNoWallet = errors.New("no wallet configured")

// ConnectionError is any failure of the connect handshake. The caller stays
// on its connect screen and may retry.
type ConnectionError struct {
	Stage string // "wallet", "rpc" or "chain"
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect (%s): %v", e.Stage, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Connection is a connected wallet: address, provider and signer.
type Connection struct {
	Address common.Address
	Client  *chain.EVMClient
	Signer  *Signer
}

// Connector performs the wallet-connect handshake.
type Connector struct {
	Manager    *Manager
	WalletName string // empty = default wallet
	RPCs       []string
	Algorithm  rpc.Algorithm
	ChainID    int64
}

// NewConnector builds a Connector from loaded config.
func NewConnector(mgr *Manager, cfg *config.Config, walletName string) (*Connector, error) {
	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return nil, err
	}
	if walletName == "" {
		walletName = cfg.DefaultWallet
	}
	return &Connector{
		Manager:    mgr,
		WalletName: walletName,
		RPCs:       cfg.RPCs,
		Algorithm:  algo,
		ChainID:    cfg.Sale.ChainID,
	}, nil
}

// Connect resolves the signing wallet, selects an RPC endpoint and checks it
// serves the configured chain. Every failure is a *ConnectionError.
func (c *Connector) Connect(ctx context.Context) (*Connection, error) {
	w, err := c.resolveWallet()
	if err != nil {
		return nil, &ConnectionError{Stage: "wallet", Err: err}
	}
	if !w.CanSign() {
		return nil, &ConnectionError{Stage: "wallet", Err: fmt.Errorf("wallet %q is watch-only, add it with --key to mint", w.Name)}
	}

	urls := c.RPCs
	if len(urls) == 0 {
		n, err := chain.LookupNetwork(c.ChainID)
		if err != nil {
			return nil, &ConnectionError{Stage: "rpc", Err: fmt.Errorf("%w; add one with `mintpad config set-rpc <url>`", err)}
		}
		urls = n.PublicRPCs
	}

	selectCtx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.SelectBest(selectCtx, urls, c.Algorithm, c.ChainID)
	if err != nil {
		return nil, &ConnectionError{Stage: "rpc", Err: err}
	}

	client := chain.NewEVMClient(url)
	got, err := client.ChainID(ctx)
	if err != nil {
		return nil, &ConnectionError{Stage: "rpc", Err: err}
	}
	if got != c.ChainID {
		return nil, &ConnectionError{Stage: "chain", Err: &rpc.ErrWrongChain{Want: c.ChainID, Got: got}}
	}

	log.Info("Wallet connected", "wallet", w.Name, "address", w.Address, "rpc", url, "chain", got)
	return &Connection{
		Address: common.HexToAddress(w.Address),
		Client:  client,
		Signer:  NewSigner(w, c.Manager.Keys()),
	}, nil
}

func (c *Connector) resolveWallet() (*Wallet, error) {
	if c.WalletName != "" {
		w, err := c.Manager.Get(c.WalletName)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", c.WalletName, err)
		}
		return w, nil
	}
	if w := c.Manager.Default(); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w; add one with `mintpad wallet add <name> --key <hex>`", ErrNoWallet)
}
