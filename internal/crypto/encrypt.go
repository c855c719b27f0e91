package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/usdc-delegate/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// defaultScryptN is used for files that do not record their own cost.
	// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still running on phones.
	defaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12
)

// ScryptN is the scrypt cost applied to newly encrypted wallets. It is written into the file.
var ScryptN = defaultScryptN

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncryptWallet encrypts wallet data and writes it to .cwt
// password must be []byte for security (caller should zero it after use)
func EncryptWallet(filePath string, network, address, qrCode string, walletData *model.WalletData, password []byte) error {
	if !strings.HasSuffix(filePath, ".cwt") {
		return errors.New("file must have .cwt extension")
	}

	// Existing empty files may be overwritten, anything else is kept
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, ScryptN)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	cwtFile := model.CWTFile{
		Network:    network,
		Address:    address,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}
	if ScryptN != defaultScryptN {
		cwtFile.ScryptN = ScryptN
	}

	fileData, err := json.MarshalIndent(cwtFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	if err := os.WriteFile(filePath, append(utf8BOM, fileData...), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// newGCM derives the file key from password and returns an AES-GCM AEAD for it.
func newGCM(password, salt []byte, n int) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, n, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
