package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/usdc-delegate/internal/config"
	"github.com/AlexZinkM/usdc-delegate/internal/wallet"
	"github.com/AlexZinkM/usdc-delegate/solana"

	"github.com/AlecAivazis/survey/v2"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var (
	generatePath string
	qrOut        string
	importFrom   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a new encrypted keystore (.cwt)",
	Long: `Generate a new Solana keypair and save it to an encrypted .cwt keystore.

The file defaults to SOLANA_FILE_PATH. Existing non-empty files are never overwritten.`,
	Example: `  usdc-delegate generate --file ./wallet.cwt
  usdc-delegate generate --file ./wallet.cwt --qr address.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := generatePath
		if path == "" {
			path = config.GetSolanaFilePath()
		}
		if path == "" {
			return errors.New("no keystore path: pass --file or set SOLANA_FILE_PATH")
		}

		if err := config.PromptForPassword(); err != nil {
			return err
		}
		password, err := config.GetSolanaPasswordBytes()
		if err != nil {
			return err
		}
		defer clear(password)

		resp, err := solana.GenerateWallet(path, password)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(resp.Message))
		fmt.Println(keyValue("File", path))
		fmt.Println(keyValue("Address", resp.Address))

		if qrOut != "" {
			png, err := base64.StdEncoding.DecodeString(resp.QR)
			if err != nil {
				return fmt.Errorf("failed to decode QR code: %w", err)
			}
			if err := os.WriteFile(qrOut, png, 0o644); err != nil {
				return fmt.Errorf("failed to write QR code: %w", err)
			}
			fmt.Println(keyValue("QR code", qrOut))
		}
		return nil
	},
}

var importKeyCmd = &cobra.Command{
	Use:   "import-key",
	Short: "Store a base58 private key in the OS keyring",
	Long: `Import a Solana private key (base58, as exported by most wallets) into the OS keyring.

The key is stored under KEYRING_SERVICE / KEYRING_KEY and becomes the "OS Keyring" wallet.`,
	Example: `  usdc-delegate import-key
  usdc-delegate import-key --from ./key.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var encoded string
		if importFrom != "" {
			data, err := os.ReadFile(importFrom)
			if err != nil {
				return fmt.Errorf("failed to read key file: %w", err)
			}
			encoded = string(data)
		} else {
			prompt := &survey.Password{Message: promptStyle.Render("Private key (base58):")}
			if err := survey.AskOne(prompt, &encoded, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		key, err := solanago.PrivateKeyFromBase58(strings.TrimSpace(encoded))
		if err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}
		defer clear(key)

		if err := wallet.ImportKey(keyringOpener(), config.Get().KeyringKey, key); err != nil {
			return err
		}

		fmt.Println(successStyle.Render("Key imported into OS keyring"))
		fmt.Println(keyValue("Address", key.PublicKey().String()))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generatePath, "file", "f", "", "Keystore file (.cwt), defaults to SOLANA_FILE_PATH")
	generateCmd.Flags().StringVar(&qrOut, "qr", "", "Also write the address QR code to this PNG file")
	importKeyCmd.Flags().StringVar(&importFrom, "from", "", "Read the key from a file instead of prompting")
}
