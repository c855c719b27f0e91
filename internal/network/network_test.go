package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpoints = Endpoints{Mainnet: "https://main.example", Devnet: "https://dev.example"}

func TestResolveYieldsOneOfTwoMints(t *testing.T) {
	for _, name := range All() {
		n, err := Resolve(name, testEndpoints)
		require.NoError(t, err)
		assert.True(t, n.Mint.Equals(USDCMainnet) || n.Mint.Equals(USDCDevnet))
	}

	main, _ := Resolve(Mainnet, testEndpoints)
	dev, _ := Resolve(Devnet, testEndpoints)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", main.Mint.String())
	assert.Equal(t, "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU", dev.Mint.String())
	assert.Equal(t, "https://main.example", main.Endpoint)
	assert.Equal(t, "https://dev.example", dev.Endpoint)
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("testnet", testEndpoints)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	n, err := Parse("devnet")
	require.NoError(t, err)
	assert.Equal(t, Devnet, n)

	_, err = Parse("Mainnet")
	assert.Error(t, err)
}

func TestExplorerURL(t *testing.T) {
	main, _ := Resolve(Mainnet, testEndpoints)
	dev, _ := Resolve(Devnet, testEndpoints)

	assert.Equal(t, "https://explorer.solana.com/tx/abc", main.ExplorerURL("abc"))
	assert.Equal(t, "https://explorer.solana.com/tx/abc?cluster=devnet", dev.ExplorerURL("abc"))
}

func TestParseErrorListsNetworks(t *testing.T) {
	_, err := Parse("testnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mainnet, devnet")
	assert.Equal(t, "mainnet, devnet", Names())
}
