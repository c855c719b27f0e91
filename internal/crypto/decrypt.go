package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/usdc-delegate/internal/model"
)

// ErrInvalidPassword is returned when the keystore cannot be opened with the given password.
var ErrInvalidPassword = errors.New("invalid password")

// DecryptWallet reads and decrypts .cwt file
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(filePath string, password []byte) (*model.CWTFile, *model.WalletData, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(cwtFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(cwtFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cwtFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	n := cwtFile.ScryptN
	if n == 0 {
		n = defaultScryptN
	}

	aesGCM, err := newGCM(password, salt, n)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, nil, errors.New("invalid nonce length")
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return cwtFile, &walletData, nil
}

// ReadWalletAddress reads only the address from .cwt file (without decryption)
func ReadWalletAddress(filePath string) (string, error) {
	cwtFile, err := readCWTFile(filePath)
	if err != nil {
		return "", err
	}
	if cwtFile.Address == "" {
		return "", errors.New("cwt file has no address")
	}
	return cwtFile.Address, nil
}

func readCWTFile(filePath string) (*model.CWTFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("file does not exist")
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var cwtFile model.CWTFile
	if err := json.Unmarshal(fileData, &cwtFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cwt file: %w", err)
	}
	return &cwtFile, nil
}
