package network

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// Name identifies one of the supported clusters.
type Name string

const (
	Mainnet Name = "mainnet"
	Devnet  Name = "devnet"
)

var (
	// USDCMainnet is the USDC mint on Solana mainnet.
	USDCMainnet = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	// USDCDevnet is Circle's USDC test mint on devnet.
	USDCDevnet = solana.MustPublicKeyFromBase58("4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU")
)

const explorerBaseURL = "https://explorer.solana.com/tx/"

// Network is a cluster together with its USDC mint and RPC endpoint.
type Network struct {
	Name     Name
	Mint     solana.PublicKey
	Endpoint string
}

// Endpoints holds the RPC URL for each supported cluster.
type Endpoints struct {
	Mainnet string
	Devnet  string
}

// All returns the supported cluster names in display order.
func All() []Name {
	return []Name{Mainnet, Devnet}
}

// Parse validates a cluster name.
func Parse(s string) (Name, error) {
	for _, name := range All() {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown network %q: must be one of %s", s, Names())
}

// Names lists the supported cluster names for help and error text.
func Names() string {
	names := make([]string, 0, len(All()))
	for _, name := range All() {
		names = append(names, string(name))
	}
	return strings.Join(names, ", ")
}

// Resolve returns the Network for name using the given endpoints.
func Resolve(name Name, endpoints Endpoints) (Network, error) {
	switch name {
	case Mainnet:
		return Network{Name: Mainnet, Mint: USDCMainnet, Endpoint: endpoints.Mainnet}, nil
	case Devnet:
		return Network{Name: Devnet, Mint: USDCDevnet, Endpoint: endpoints.Devnet}, nil
	}
	return Network{}, fmt.Errorf("unknown network %q: must be one of %s", name, Names())
}

// ExplorerURL links to a transaction on the public explorer for this cluster.
func (n Network) ExplorerURL(signature string) string {
	url := explorerBaseURL + signature
	if n.Name == Devnet {
		url += "?cluster=devnet"
	}
	return url
}
