package wallet

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/99designs/keyring"
	"github.com/gagliardetto/solana-go"
)

// KeyringOpener opens the keyring holding the signing key.
type KeyringOpener func() (keyring.Keyring, error)

// DefaultKeyringOpener returns an opener for the OS keychain under service.
func DefaultKeyringOpener(service string) KeyringOpener {
	return func() (keyring.Keyring, error) {
		cfg := keyring.Config{
			ServiceName:              service,
			KeychainTrustApplication: true,
		}

		// On Linux without a GUI, fall back to file-based storage.
		if runtime.GOOS == "linux" {
			cfg.AllowedBackends = []keyring.BackendType{
				keyring.SecretServiceBackend,
				keyring.KWalletBackend,
				keyring.FileBackend,
			}
		}

		ring, err := keyring.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open keyring: %w", err)
		}
		return ring, nil
	}
}

// KeyringProvider signs with a base58 private key stored as a keyring item.
type KeyringProvider struct {
	open    KeyringOpener
	itemKey string

	mu  sync.RWMutex
	key solana.PrivateKey
}

// NewKeyringProvider creates a provider reading itemKey from the keyring returned by open.
func NewKeyringProvider(open KeyringOpener, itemKey string) *KeyringProvider {
	return &KeyringProvider{open: open, itemKey: itemKey}
}

// Connect loads the key from the keyring.
func (p *KeyringProvider) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ring, err := p.open()
	if err != nil {
		return err
	}
	item, err := ring.Get(p.itemKey)
	if err != nil {
		return fmt.Errorf("keychain retrieve: %w", err)
	}
	defer clear(item.Data)

	key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(string(item.Data)))
	if err != nil {
		return fmt.Errorf("invalid private key in keyring: %w", err)
	}
	if len(key) != solana.PrivateKeyLength {
		return errors.New("invalid private key length")
	}

	p.mu.Lock()
	clear(p.key)
	p.key = key
	p.mu.Unlock()
	return nil
}

// Disconnect forgets the loaded key. The keyring item is kept.
func (p *KeyringProvider) Disconnect(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.key)
	p.key = nil
	return nil
}

func (p *KeyringProvider) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
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

func (p *KeyringProvider) PublicKey() solana.PublicKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.key == nil {
		return solana.PublicKey{}
	}
	return p.key.PublicKey()
}

func (p *KeyringProvider) IsConnected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.key != nil
}

// ImportKey stores key in the keyring under itemKey so the keyring provider can use it.
func ImportKey(open KeyringOpener, itemKey string, key solana.PrivateKey) error {
	if len(key) != solana.PrivateKeyLength {
		return errors.New("invalid private key length")
	}
	ring, err := open()
	if err != nil {
		return err
	}
	err = ring.Set(keyring.Item{
		Key:         itemKey,
		Data:        []byte(key.String()),
		Label:       "Solana key " + key.PublicKey().String(),
		Description: "usdc-delegate signing key",
	})
	if err != nil {
		return fmt.Errorf("keychain store: %w", err)
	}
	return nil
}

// hasItem reports whether the keyring lists itemKey.
func hasItem(open KeyringOpener, itemKey string) bool {
	ring, err := open()
	if err != nil {
		return false
	}
	keys, err := ring.Keys()
	if err != nil {
		return false
	}
	return slices.Contains(keys, itemKey)
}
