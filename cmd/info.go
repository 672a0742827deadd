package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/chain"
	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/contract"
	"github.com/Mohsinsiddi/mintpad/internal/price"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the configured sale and the contract interface mintpad uses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sale := cfg.Sale
		network := fmt.Sprintf("chain %d", sale.ChainID)
		if n, err := chain.LookupNetwork(sale.ChainID); err == nil {
			network = fmt.Sprintf("%s (%d)", n.Name, n.ChainID)
		}

		contractAddr := sale.ContractAddress
		if contractAddr == "" {
			contractAddr = "not set"
		}
		free := "none"
		if sale.FreeThreshold > 0 {
			free = fmt.Sprintf("first %d", sale.FreeThreshold)
		}
		limit := "unlimited"
		if sale.MaxPurchase > 0 {
			limit = fmt.Sprintf("%d per mint", sale.MaxPurchase)
		}
		status := ui.StyleSuccess.Render("live")
		if sale.SalePaused {
			status = ui.StyleWarning.Render("paused")
		}

		priceLabel := sale.PriceLabel(1)
		if est := fiatEstimate(cmd.Context(), sale); est != "" {
			priceLabel += "  " + est
		}

		pairs := [][2]string{
			{"Network", network},
			{"Contract", contractAddr},
			{"Price", priceLabel},
			{"Free", free},
			{"Max tokens", fmt.Sprintf("%d", sale.MaxTokens)},
			{"Limit", limit},
			{"Sale", status},
			{"Music", fmt.Sprintf("%t", sale.MusicEnabled)},
			{"Poll", cfg.Poll().String()},
		}
		if url := chain.ExplorerAddressURL(sale.ChainID, sale.ContractAddress); url != "" && sale.ContractAddress != "" {
			pairs = append(pairs, [2]string{"Explorer", url})
		}
		fmt.Println(ui.KeyValueBlock("Sale", pairs))

		if err := sale.Validate(); err != nil {
			fmt.Println(ui.Warn(err.Error()))
			fmt.Println(ui.Hint("mintpad config set-sale --contract 0x... --chain-id 1"))
		}

		fmt.Println()
		fmt.Println(ui.StyleTitle.Render("Contract interface"))
		fmt.Println(abiTable().Render())
		return nil
	},
}

// fiatEstimate prices one token in USD, or "" when no rate is available.
func fiatEstimate(ctx context.Context, sale config.Sale) string {
	wei, err := sale.PriceWei()
	if err != nil || wei.Sign() == 0 {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	f := price.NewFetcher("usd")
	rate, err := f.NativePrice(ctx, sale.ChainID)
	if err != nil {
		log.Debug("No fiat rate", "chain", sale.ChainID, "err", err)
		return ""
	}
	return ui.Meta(price.Format(price.Convert(wei, rate), f.Currency()))
}

func abiTable() *ui.Table {
	t := ui.NewTable([]ui.Column{{Title: "Kind"}, {Title: "Signature"}, {Title: "Selector / topic"}})

	methods := make([]string, 0, len(contract.CollectionABI.Methods))
	for _, m := range contract.CollectionABI.Methods {
		methods = append(methods, m.Sig)
	}
	sort.Strings(methods)
	for _, sig := range methods {
		t.AddRow(ui.Row{"function", sig, contract.Selector(sig)})
	}

	for _, e := range contract.CollectionABI.Events {
		topic := contract.EventTopic(e.Sig)
		t.AddRow(ui.Row{"event", e.Sig, topic[:10] + "…" + topic[len(topic)-4:]})
	}
	return t
}
