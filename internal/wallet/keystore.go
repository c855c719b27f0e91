package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/usdc-delegate/internal/crypto"

	"github.com/gagliardetto/solana-go"
)

// PasswordFunc returns a copy of the keystore password. The caller zeroes it after use.
type PasswordFunc func() ([]byte, error)

// KeystoreProvider signs with a key decrypted from a .cwt file on Connect.
// The key stays in memory only while connected.
type KeystoreProvider struct {
	path     string
	password PasswordFunc

	mu  sync.RWMutex
	key solana.PrivateKey
}

// NewKeystoreProvider creates a provider for the .cwt file at path.
func NewKeystoreProvider(path string, password PasswordFunc) *KeystoreProvider {
	return &KeystoreProvider{path: path, password: password}
}

// Connect decrypts the keystore and checks the key matches the stored address.
func (p *KeystoreProvider) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	address, err := crypto.ReadWalletAddress(p.path)
	if err != nil {
		return fmt.Errorf("failed to read wallet address: %w", err)
	}
	owner, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}

	password, err := p.password()
	if err != nil {
		return err
	}
	defer clear(password) // Always clear password from memory

	_, walletData, err := crypto.DecryptWallet(p.path, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	defer clear(walletData.PrivateKey)

	// We store the full 64-byte key
	if len(walletData.PrivateKey) != solana.PrivateKeyLength {
		return errors.New("invalid private key length")
	}

	key := make(solana.PrivateKey, solana.PrivateKeyLength)
	copy(key, walletData.PrivateKey)
	if !key.PublicKey().Equals(owner) {
		clear(key)
		return errors.New("private key does not match address")
	}

	p.mu.Lock()
	clear(p.key)
	p.key = key
	p.mu.Unlock()
	return nil
}

// Disconnect wipes the decrypted key.
func (p *KeystoreProvider) Disconnect(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.key)
	p.key = nil
	return nil
}

func (p *KeystoreProvider) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.key == nil {
		return nil, ErrNotConnected
	}
	return signWith(tx, p.key)
}

func (p *KeystoreProvider) PublicKey() solana.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.key == nil {
		return solana.PublicKey{}
	}
	return p.key.PublicKey()
}

func (p *KeystoreProvider) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.key != nil
}
