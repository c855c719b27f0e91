package main

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/usdc-delegate/internal/client"
	"github.com/AlexZinkM/usdc-delegate/internal/config"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"
	"github.com/AlexZinkM/usdc-delegate/internal/network"
	"github.com/AlexZinkM/usdc-delegate/internal/session"
	"github.com/AlexZinkM/usdc-delegate/internal/wallet"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var (
	networkName string
	walletName  string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "usdc-delegate",
	Short: "Approve and revoke USDC delegations on Solana",
	Long: `Usdc-delegate grants or cancels a spending allowance on your USDC token account.

Wallets are detected from SOLANA_FILE_PATH (encrypted .cwt keystore) and from the
OS keyring item KEYRING_KEY under service KEYRING_SERVICE. Settings are read from
the environment and from a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		level := config.Get().LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		return logging.Initialize(level)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", string(network.Mainnet), "Network: "+network.Names())
	rootCmd.PersistentFlags().StringVarP(&walletName, "wallet", "w", "", "Wallet to use when more than one is detected")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, off)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(importKeyCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(delegationCmd)
}

// keystorePassword returns the password held in memory, prompting once if needed.
func keystorePassword() ([]byte, error) {
	if pw, err := config.GetSolanaPasswordBytes(); err == nil {
		return pw, nil
	}
	if err := config.PromptForPassword(); err != nil {
		return nil, err
	}
	return config.GetSolanaPasswordBytes()
}

func keyringOpener() wallet.KeyringOpener {
	return wallet.DefaultKeyringOpener(config.Get().KeyringService)
}

// newController probes wallets and starts a session on the --network cluster.
func newController() (*session.Controller, error) {
	cfg := config.Get()

	name, err := network.Parse(networkName)
	if err != nil {
		return nil, err
	}

	slots := wallet.Probe(wallet.ProbeConfig{
		KeystorePath: cfg.SolanaFilePath,
		Password:     keystorePassword,
		OpenKeyring:  keyringOpener(),
		KeyringKey:   cfg.KeyringKey,
	})

	return session.New(session.Config{
		Slots: slots,
		Endpoints: network.Endpoints{
			Mainnet: cfg.SolanaRPCMainnet,
			Devnet:  cfg.SolanaRPCDevnet,
		},
		Dial:    client.NewDialer(cfg.ConfirmTimeout),
		Network: name,
	})
}

// chooseWallet selects --wallet, or asks when several wallets were detected and none is selected.
func chooseWallet(c *session.Controller) error {
	if walletName != "" {
		return c.SelectWallet(walletName)
	}
	if c.State().Selected != "" {
		return nil
	}

	wallets := c.Wallets()
	if len(wallets) == 0 {
		return errors.New("no wallet detected: set SOLANA_FILE_PATH or run 'usdc-delegate import-key'")
	}

	options := make([]string, 0, len(wallets))
	byLabel := make(map[string]string, len(wallets))
	for _, w := range wallets {
		label := fmt.Sprintf("%s %s", w.Icon, w.Name)
		options = append(options, label)
		byLabel[label] = w.Name
	}

	selection := ""
	prompt := &survey.Select{
		Message: promptStyle.Render("Choose a wallet:"),
		Options: options,
	}
	if err := survey.AskOne(prompt, &selection); err != nil {
		return err
	}
	return c.SelectWallet(byLabel[selection])
}
