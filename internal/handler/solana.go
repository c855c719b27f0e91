package handler

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/usdc-delegate/internal/wallet"
	"github.com/AlexZinkM/usdc-delegate/solana"
)

// KeystoreHandler creates encrypted keystore files for the keystore wallet
type KeystoreHandler struct {
	filePath string
	password wallet.PasswordFunc
}

// NewKeystoreHandler creates a new KeystoreHandler writing to filePath
func NewKeystoreHandler(filePath string, password wallet.PasswordFunc) (*KeystoreHandler, error) {
	if password == nil {
		return nil, errors.New("password source is required")
	}
	return &KeystoreHandler{
		filePath: filePath,
		password: password,
	}, nil
}

// Generate handles POST /keystore/generate
// @Summary      Generate new keystore
// @Description  Generates a new Solana keypair and saves it to the encrypted .cwt file at SOLANA_FILE_PATH
// @Tags         keystore
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /keystore/generate [post]
func (h *KeystoreHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if h.filePath == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, errors.New("SOLANA_FILE_PATH not set"))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	defer clear(passwordBytes)

	resp, err := solana.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if solana.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, codeConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternal, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
