package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/ens"
	"github.com/Mohsinsiddi/mintpad/internal/ui"
)

var walletKeyFlag string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a signing wallet (private key stored in the OS keychain):

  mintpad wallet add alice --key 0x...

or a watch-only wallet, which can read supply but not mint:

  mintpad wallet add cold 0xAbC...
  mintpad wallet add vitalik vitalik.eth`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		if walletKeyFlag != "" {
			if err := mgr.AddWithKey(name, walletKeyFlag); err != nil {
				return err
			}
			w, err := mgr.Get(name)
			if err != nil {
				return err
			}
			fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
			fmt.Println(ui.Hint("Set as default with: mintpad wallet use " + name))
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("address required for a watch-only wallet\n  Usage: mintpad wallet add <name> <address>\n  Or for signing: mintpad wallet add <name> --key <private-key>")
		}
		address := args[1]
		if ens.IsName(address) {
			resolved, err := resolveENS(cmd.Context(), address)
			if err != nil {
				return err
			}
			fmt.Println(ui.Meta(fmt.Sprintf("%s → %s", address, resolved.Hex())))
			address = resolved.Hex()
		}
		if err := mgr.AddWatchOnly(name, address); err != nil {
			return err
		}
		w, err := mgr.Get(name)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(w.Address))))
		fmt.Println(ui.Warn("Watch-only wallets cannot mint."))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, err := newWalletManager().List()
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: mintpad wallet add alice --key 0x..."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 42},
			{Title: "Type", Width: 10},
			{Title: "Default"},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault || w.Name == cfg.DefaultWallet {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address, w.Type, def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveYes bool

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !walletRemoveYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := newWalletManager().SetDefault(name); err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key (hex) for a signing wallet")
	walletRemoveCmd.Flags().BoolVarP(&walletRemoveYes, "yes", "y", false, "skip confirmation")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd)
}
