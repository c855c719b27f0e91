package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "usdc-delegate", c.KeyringService)
	assert.Equal(t, "solana", c.KeyringKey)
	assert.Equal(t, 90*time.Second, c.ConfirmTimeout)
}

func TestLoadEndpointOverrides(t *testing.T) {
	t.Setenv("SOLANA_RPC_MAINNET", "https://mainnet.example.org")
	t.Setenv("SOLANA_RPC_DEVNET", "https://devnet.example.org")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.example.org", c.SolanaRPCMainnet)
	assert.Equal(t, "https://devnet.example.org", c.SolanaRPCDevnet)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("CONFIRM_TIMEOUT", "0s")
	_, err := Load()
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	SetPassword([]byte("hunter2"))
	t.Cleanup(func() { SetPassword(nil) })

	got, err := GetSolanaPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), got)

	// callers zero their copy, the stored one must survive
	clear(got)
	again, err := GetSolanaPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), again)
}

func TestGetPasswordUnset(t *testing.T) {
	SetPassword(nil)
	_, err := GetSolanaPasswordBytes()
	assert.Error(t, err)
}
