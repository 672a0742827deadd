package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/mint"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
)

var supplyWatch bool

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Show tokens claimed out of the collection maximum",
	Long: `Read totalSupply() and maximumTokens() from the collection contract.

With --watch the total is re-read every poll interval until Ctrl+C. Failed
reads keep the last value and are logged; repeated failures are flagged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		reader, url, err := dialReader(ctx)
		if err != nil {
			return err
		}
		fmt.Println(ui.Meta("RPC: " + url))

		if !supplyWatch {
			rctx, cancel := context.WithTimeout(ctx, config.ReadTimeout)
			defer cancel()
			total, err := reader.TotalSupply(rctx)
			if err != nil {
				return err
			}
			maxTokens, err := reader.MaximumTokens(rctx)
			if err != nil {
				return err
			}
			s := mint.NewSession(cfg.Sale)
			s.ApplySupply(mint.SupplyUpdate{Total: &total, Max: &maxTokens})
			fmt.Println(renderSupply(s))
			return nil
		}

		s := mint.NewSession(cfg.Sale)
		p := &mint.Poller{Reader: reader, Interval: cfg.Poll()}
		p.Run(ctx, func(u mint.SupplyUpdate) {
			s.ApplySupply(u)
			line := renderSupply(s)
			if line == "" {
				return
			}
			fmt.Printf("%s  %s\n", ui.Meta(time.Now().Format("15:04:05")), line)
		})
		return nil
	},
}

func renderSupply(s mint.Session) string {
	line := mint.SupplyDisplay(s)
	if line == "" {
		return ""
	}
	out := ui.Val(line)
	if s.SoldOut() {
		out += "  " + ui.Err(mint.LabelSoldOut)
	} else if s.TotalSupply != nil && cfg.Sale.FreeThreshold > *s.TotalSupply {
		out += "  " + ui.Success(fmt.Sprintf("%d free left", cfg.Sale.FreeThreshold-*s.TotalSupply))
	}
	if s.SupplyStale {
		out += "  " + ui.Warn("may be out of date")
	}
	return out
}

func init() {
	supplyCmd.Flags().BoolVarP(&supplyWatch, "watch", "w", false, "keep polling until interrupted")
}
