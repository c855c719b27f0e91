package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/usdc-delegate/internal/client"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"
	"github.com/AlexZinkM/usdc-delegate/internal/model"
	"github.com/AlexZinkM/usdc-delegate/internal/session"

	"go.uber.org/zap"
)

const (
	codeInvalidRequest = "invalid_request"
	codeBusy           = "busy"
	codeNotConnected   = "not_connected"
	codeConflict       = "conflict"
	codeNotFound       = "not_found"
	codeInternal       = "internal"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Debug("Failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// writeSessionError maps controller errors to HTTP statuses.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, codeBusy, err)
	case errors.Is(err, session.ErrNotConnected):
		writeError(w, http.StatusConflict, codeNotConnected, err)
	case errors.Is(err, session.ErrAlreadyConnected):
		writeError(w, http.StatusConflict, codeConflict, err)
	case errors.Is(err, session.ErrNoWalletSelected),
		errors.Is(err, session.ErrUnknownWallet),
		errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrInvalidAmount),
		errors.Is(err, session.ErrInvalidDelegate):
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
	case errors.Is(err, client.ErrTokenAccountNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, err)
	}
}
