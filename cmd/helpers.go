package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/contract"
	"github.com/Mohsinsiddi/mintpad/internal/ens"
	"github.com/Mohsinsiddi/mintpad/internal/rpc"
	"github.com/Mohsinsiddi/mintpad/internal/wallet"
)

func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeys(wallet.DefaultKeystore(filepath.Join(cfg.Dir(), "keys"))),
	)
}

// rpcURLs returns the configured endpoints, or the sale chain's public ones.
func rpcURLs() ([]string, error) {
	if len(cfg.RPCs) > 0 {
		return cfg.RPCs, nil
	}
	n, err := chain.LookupNetwork(cfg.Sale.ChainID)
	if err != nil {
		return nil, fmt.Errorf("%w; add one with `mintpad config set-rpc <url>`", err)
	}
	return n.PublicRPCs, nil
}

// dialReader picks an RPC for the sale chain and returns a supply reader on
// the collection. No wallet is needed for reads.
func dialReader(ctx context.Context) (*contract.Reader, string, error) {
	if err := cfg.Sale.Validate(); err != nil {
		return nil, "", err
	}
	urls, err := rpcURLs()
	if err != nil {
		return nil, "", err
	}
	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return nil, "", err
	}

	sctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.SelectBest(sctx, urls, algo, cfg.Sale.ChainID)
	if err != nil {
		return nil, "", err
	}
	return contract.NewReader(chain.NewEVMClient(url), cfg.Sale.Contract()), url, nil
}

// resolveENS resolves name on mainnet, using the configured RPCs when the sale
// itself is on mainnet.
func resolveENS(ctx context.Context, name string) (common.Address, error) {
	urls := cfg.RPCs
	if cfg.Sale.ChainID != 1 || len(urls) == 0 {
		n, err := chain.LookupNetwork(1)
		if err != nil {
			return common.Address{}, err
		}
		urls = n.PublicRPCs
	}

	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout+config.ReadTimeout)
	defer cancel()
	url, err := rpc.SelectBest(ctx, urls, rpc.AlgorithmFastest, 1)
	if err != nil {
		return common.Address{}, err
	}
	return ens.Resolve(ctx, chain.NewEVMClient(url), name)
}
