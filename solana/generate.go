package solana

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/usdc-delegate/internal/crypto"
	"github.com/AlexZinkM/usdc-delegate/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

const (
	networkSolana = "solana"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// GenerateWallet generates a new Solana keypair and saves it to an encrypted .cwt keystore,
// the file the keystore wallet provider connects with.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (*model.GenerateResponse, error) {
	if filepath.Ext(filePath) != ".cwt" {
		return nil, fmt.Errorf("file must have .cwt extension")
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return nil, &FileExistsError{Message: "file is not empty"}
	}

	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	address := wallet.PublicKey().String()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	// PrivateKey stored as []byte (base64 in JSON)
	walletData := &model.WalletData{
		PrivateKey: wallet.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkSolana, address, qrCode, walletData, password); err != nil {
		return nil, fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return &model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
		QR:      qrCode,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
