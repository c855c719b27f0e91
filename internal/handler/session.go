package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AlexZinkM/usdc-delegate/internal/model"
	"github.com/AlexZinkM/usdc-delegate/internal/network"
	"github.com/AlexZinkM/usdc-delegate/internal/session"
)

// SessionHandler exposes the session controller over HTTP
type SessionHandler struct {
	controller *session.Controller
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(controller *session.Controller) (*SessionHandler, error) {
	if controller == nil {
		return nil, errors.New("session controller is required")
	}
	return &SessionHandler{controller: controller}, nil
}

// GetSession handles GET /session
// @Summary      Get session state
// @Description  Returns network, detected wallets, connection, form fields and the last status message
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /session [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// ListWallets handles GET /wallets
// @Summary      List detected wallets
// @Tags         wallet
// @Produce      json
// @Success      200  {array}  model.WalletInfo
// @Router       /wallets [get]
func (h *SessionHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()).Wallets)
}

// SelectWallet handles POST /wallets/select
// @Summary      Select wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectWalletRequest  true  "Wallet name"
// @Success      200      {object}  model.SessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/select [post]
func (h *SessionHandler) SelectWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SelectWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if err := h.controller.SelectWallet(req.Name); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// Connect handles POST /wallet/connect
// @Summary      Connect selected wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.controller.Connect(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/disconnect [post]
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.controller.Disconnect(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// SwitchNetwork handles POST /network
// @Summary      Switch network
// @Description  Switches between mainnet and devnet. Clears delegate and amount, keeps the wallet connection.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      model.NetworkRequest  true  "mainnet or devnet"
// @Success      200      {object}  model.SessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /network [post]
func (h *SessionHandler) SwitchNetwork(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.NetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	name, err := network.Parse(req.Network)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if err := h.controller.SwitchNetwork(name); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// Approve handles POST /approve
// @Summary      Approve USDC delegate
// @Description  Grants the delegate a spending allowance on the connected wallet's USDC account.
// @Description  Fields omitted from the body fall back to the values held by the session.
// @Tags         delegation
// @Accept       json
// @Produce      json
// @Param        request  body      model.ApproveRequest  false  "Delegate and amount"
// @Success      200      {object}  model.TxResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /approve [post]
func (h *SessionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if req.DelegateAddress != nil {
		if err := h.controller.SetDelegateAddress(*req.DelegateAddress); err != nil {
			writeSessionError(w, err)
			return
		}
	}
	if req.Amount != nil {
		if err := h.controller.SetAmount(*req.Amount); err != nil {
			writeSessionError(w, err)
			return
		}
	}

	if _, err := h.controller.Approve(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeTx(w, h.controller.State())
}

// Unlimited handles POST /approve/unlimited
// @Summary      Fill unlimited amount
// @Description  Sets the amount to the largest value an SPL approval can carry (18446744073709.551615 USDC)
// @Tags         delegation
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /approve/unlimited [post]
func (h *SessionHandler) Unlimited(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if err := h.controller.SetUnlimited(); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(h.controller.State()))
}

// Revoke handles POST /revoke
// @Summary      Revoke USDC delegate
// @Description  Cancels any delegation on the connected wallet's USDC account
// @Tags         delegation
// @Produce      json
// @Success      200  {object}  model.TxResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /revoke [post]
func (h *SessionHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}
	if _, err := h.controller.Revoke(r.Context()); err != nil {
		writeSessionError(w, err)
		return
	}
	writeTx(w, h.controller.State())
}

// GetDelegation handles GET /delegation
// @Summary      Get current delegation
// @Description  Reads the connected wallet's USDC token account on the active network
// @Tags         delegation
// @Produce      json
// @Success      200  {object}  model.DelegationResponse
// @Failure      404  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /delegation [get]
func (h *SessionHandler) GetDelegation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	resp, err := h.controller.Delegation(r.Context())
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTx(w http.ResponseWriter, s session.State) {
	writeJSON(w, http.StatusOK, model.TxResponse{
		TxID:        s.LastSignature,
		ExplorerURL: s.LastExplorerURL,
	})
}

func toSessionResponse(s session.State) model.SessionResponse {
	resp := model.SessionResponse{
		Network:         string(s.Network.Name),
		Mint:            s.Network.Mint.String(),
		Endpoint:        s.Network.Endpoint,
		Wallets:         make([]model.WalletInfo, 0, len(s.Wallets)),
		SelectedWallet:  s.Selected,
		Connected:       s.Connected,
		DelegateAddress: s.DelegateAddress,
		Amount:          s.Amount,
		Status: model.StatusInfo{
			Message:  s.Status.Message,
			Severity: string(s.Status.Severity),
		},
		Loading:         s.Loading,
		LastTxID:        s.LastSignature,
		LastExplorerURL: s.LastExplorerURL,
	}
	if !s.PublicKey.IsZero() {
		resp.PublicKey = s.PublicKey.String()
	}
	for _, d := range s.Wallets {
		resp.Wallets = append(resp.Wallets, model.WalletInfo{
			Name:     d.Name,
			Icon:     d.Icon,
			Selected: d.Name == s.Selected,
		})
	}
	return resp
}
