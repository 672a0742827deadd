package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/rpc"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Inspect RPC endpoints",
}

var rpcTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Probe every RPC endpoint for the sale chain",
	Long: `Ping each configured endpoint (or the chain's public ones), check it
serves the sale chain and show which one mint would use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := rpcURLs()
		if err != nil {
			return err
		}
		algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()

		sp := ui.NewSpinner(fmt.Sprintf("Probing %d endpoint(s)…", len(urls)))
		sp.Start()
		results := rpc.Probe(ctx, urls, cfg.Sale.ChainID)
		sp.Stop()

		winner, pickErr := rpc.Pick(results, algo)

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL"},
			{Title: "Latency", Right: true},
			{Title: "Block #", Right: true},
			{Title: "Status"},
		})
		for _, r := range results {
			latency, block, status := "-", "-", "healthy"
			if r.Healthy() {
				latency = fmt.Sprintf("%dms", r.Latency.Milliseconds())
				block = fmt.Sprintf("%d", r.BlockNumber)
			} else {
				status = "down: " + r.Err.Error()
			}
			if pickErr == nil && r.URL == winner.URL {
				status += " (selected)"
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Println(t.Render())

		if pickErr != nil {
			return pickErr
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s picks %s", algo, winner.URL)))
		return nil
	},
}

func init() {
	rpcCmd.AddCommand(rpcTestCmd)
}
