// Usdc-delegate approves and revokes USDC spending delegations on Solana.
//
// It detects the wallets available on this machine (an encrypted .cwt keystore and
// the OS keyring), connects one, and signs SPL Token approve or revoke transactions
// for the wallet's USDC account on mainnet or devnet.
//
// Usage:
//
//	usdc-delegate serve
//	usdc-delegate approve --delegate <address> --amount 25
//	usdc-delegate revoke
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
