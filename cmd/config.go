package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/config"
	"github.com/Mohsinsiddi/mintpad/internal/rpc"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the effective configuration (config.json plus env overrides)",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetDefaultWalletCmd = &cobra.Command{
	Use:   "set-default-wallet <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.DefaultWallet = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q", args[0])))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <url>",
	Short: "Add an RPC endpoint for the sale chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddRPC(args[0]); err != nil {
			// already present
			fmt.Println(ui.Warn(err.Error()))
			return nil
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC added: " + args[0]))
		return nil
	},
}

var configRemoveRPCCmd = &cobra.Command{
	Use:   "remove-rpc <url>",
	Short: "Remove an RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC removed: " + args[0]))
		return nil
	},
}

var configSetAlgorithmCmd = &cobra.Command{
	Use:   "set-rpc-algorithm <fastest|failover>",
	Short: "Choose how an RPC endpoint is picked when several are configured",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("RPC algorithm set to " + string(algo)))
		return nil
	},
}

var saleFlags struct {
	contract    string
	chainID     int64
	price       string
	symbol      string
	maxTokens   uint64
	free        uint64
	maxPurchase uint64
	paused      bool
	music       bool
	poll        int
}

var configSetSaleCmd = &cobra.Command{
	Use:   "set-sale",
	Short: "Update the sale settings",
	Example: `  mintpad config set-sale --contract 0x5FbDB2315678afecb367f032d93F642f64180aa3 --chain-id 11155111
  mintpad config set-sale --price 0.02 --free 500 --max-purchase 3
  mintpad config set-sale --paused`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		if f.NFlag() == 0 {
			return fmt.Errorf("nothing to set; see --help")
		}
		sale := cfg.Sale
		if f.Changed("contract") {
			sale.ContractAddress = saleFlags.contract
		}
		if f.Changed("chain-id") {
			sale.ChainID = saleFlags.chainID
		}
		if f.Changed("price") {
			if _, err := config.EtherToWei(saleFlags.price); err != nil {
				return err
			}
			sale.TokenPrice = saleFlags.price
		}
		if f.Changed("symbol") {
			sale.Symbol = saleFlags.symbol
		}
		if f.Changed("max-tokens") {
			sale.MaxTokens = saleFlags.maxTokens
		}
		if f.Changed("free") {
			sale.FreeThreshold = saleFlags.free
		}
		if f.Changed("max-purchase") {
			sale.MaxPurchase = saleFlags.maxPurchase
		}
		if f.Changed("paused") {
			sale.SalePaused = saleFlags.paused
		}
		if f.Changed("music") {
			sale.MusicEnabled = saleFlags.music
		}
		if f.Changed("poll") {
			cfg.PollInterval = saleFlags.poll
		}
		if sale.ContractAddress != "" {
			if err := sale.Validate(); err != nil {
				return err
			}
		}

		cfg.Sale = sale
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Sale updated."))
		fmt.Println(ui.Hint("Review with: mintpad info"))
		return nil
	},
}

func init() {
	f := configSetSaleCmd.Flags()
	f.StringVar(&saleFlags.contract, "contract", "", "collection contract address")
	f.Int64Var(&saleFlags.chainID, "chain-id", 0, "chain id the collection lives on")
	f.StringVar(&saleFlags.price, "price", "", "price per token in ether, e.g. 0.01")
	f.StringVar(&saleFlags.symbol, "symbol", "", "currency symbol shown next to prices")
	f.Uint64Var(&saleFlags.maxTokens, "max-tokens", 0, "collection size")
	f.Uint64Var(&saleFlags.free, "free", 0, "number of tokens minted for free before the price applies")
	f.Uint64Var(&saleFlags.maxPurchase, "max-purchase", 0, "tokens per mint (0 = no limit)")
	f.BoolVar(&saleFlags.paused, "paused", false, "pause the sale")
	f.BoolVar(&saleFlags.music, "music", true, "enable the sound toggle")
	f.IntVar(&saleFlags.poll, "poll", 0, "supply poll interval in seconds")

	configCmd.AddCommand(
		configListCmd,
		configSetDefaultWalletCmd,
		configSetRPCCmd,
		configRemoveRPCCmd,
		configSetAlgorithmCmd,
		configSetSaleCmd,
	)
}
