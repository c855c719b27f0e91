// Package wallet defines the capability set a signing wallet exposes to the session,
// and the two providers the application can detect: an encrypted keystore file and the OS keyring.
package wallet

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNotConnected is returned when a provider is asked to sign before Connect.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrSignerMissing is returned when a transaction needs a signature the wallet cannot give.
	ErrSignerMissing = errors.New("transaction requires a signer this wallet does not hold")
)

// Provider is the capability set of a wallet. Implementations must be safe for concurrent use.
type Provider interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
	// PublicKey is the zero key until Connect succeeds.
	PublicKey() solana.PublicKey
	IsConnected() bool
}

// Descriptor is a detected wallet as presented for selection.
type Descriptor struct {
	Name     string
	Icon     string
	Provider Provider
}

// Slot is a fixed injection point a provider may occupy.
type Slot string

const (
	SlotKeystore Slot = "keystore"
	SlotKeyring  Slot = "keyring"
)

// Slots maps injection points to the provider found there. Missing or nil entries are empty slots.
type Slots map[Slot]Provider

var knownSlots = []struct {
	slot Slot
	name string
	icon string
}{
	{SlotKeystore, "Local Keystore", "🔐"},
	{SlotKeyring, "OS Keyring", "🔑"},
}

// Detect probes the known slots in fixed order and describes every provider found.
func Detect(slots Slots) []Descriptor {
	wallets := make([]Descriptor, 0, len(knownSlots))
	for _, k := range knownSlots {
		p := slots[k.slot]
		if p == nil {
			continue
		}
		wallets = append(wallets, Descriptor{Name: k.name, Icon: k.icon, Provider: p})
	}
	return wallets
}

// signWith signs every required signature of tx that belongs to key.
func signWith(tx *solana.Transaction, key solana.PrivateKey) (*solana.Transaction, error) {
	pub := key.PublicKey()
	_, err := tx.Sign(func(k solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(k) {
			return &key
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrSignerMissing, err)
	}
	return tx, nil
}
