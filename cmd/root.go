package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/mintpad/internal/config"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/mintpad/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir     string
	cfg        *config.Config
	verbose    bool
	logFile    string
	walletFlag string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "mintpad",
	Short: "Mint from an NFT collection in your terminal",
	Long: `mintpad connects a locally stored wallet to an EVM collection contract,
shows live supply and sends mint transactions.

The sale (contract, chain, price, limits) lives in config.json and can be
overridden per launch with MINTPAD_CONTRACT, MINTPAD_CHAIN_ID,
MINTPAD_TOKEN_PRICE, MINTPAD_MAX_TOKENS, MINTPAD_SALE_PAUSED and
MINTPAD_USE_MUSIC.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		// The mint screen owns the terminal, so its logs only go to --log-file.
		return setupLogging(cmd == mintCmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogging()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	if envDir := os.Getenv(config.EnvConfigDir); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.mintpad)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(
		mintCmd,
		supplyCmd,
		infoCmd,
		walletCmd,
		configCmd,
		rpcCmd,
	)
}
