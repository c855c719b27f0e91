package wallet

import (
	"github.com/AlexZinkM/usdc-delegate/internal/crypto"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"

	"go.uber.org/zap"
)

// ProbeConfig says where to look for providers.
type ProbeConfig struct {
	KeystorePath string
	Password     PasswordFunc
	OpenKeyring  KeyringOpener
	KeyringKey   string
}

// Probe fills the injection slots with the providers available on this machine.
// A keystore needs a readable .cwt file, a keyring provider needs the configured item.
func Probe(cfg ProbeConfig) Slots {
	slots := Slots{}

	if cfg.KeystorePath != "" {
		if address, err := crypto.ReadWalletAddress(cfg.KeystorePath); err != nil {
			logging.Warn("Keystore not usable", zap.String("path", cfg.KeystorePath), zap.Error(err))
		} else {
			logging.Debug("Keystore detected", zap.String("address", address))
			slots[SlotKeystore] = NewKeystoreProvider(cfg.KeystorePath, cfg.Password)
		}
	}

	if cfg.OpenKeyring != nil && cfg.KeyringKey != "" && hasItem(cfg.OpenKeyring, cfg.KeyringKey) {
		logging.Debug("Keyring key detected", zap.String("item", cfg.KeyringKey))
		slots[SlotKeyring] = NewKeyringProvider(cfg.OpenKeyring, cfg.KeyringKey)
	}

	return slots
}
