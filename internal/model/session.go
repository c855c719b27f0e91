package model

// WalletInfo describes a detected wallet
type WalletInfo struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Selected bool   `json:"selected"`
}

// StatusInfo is the last user-visible status message
type StatusInfo struct {
	Message  string `json:"message"`
	Severity string `json:"severity,omitempty"` // success, error or info
}

// SessionResponse represents response for GET /session
type SessionResponse struct {
	Network         string       `json:"network"`
	Mint            string       `json:"mint"`
	Endpoint        string       `json:"endpoint"`
	Wallets         []WalletInfo `json:"wallets"`
	SelectedWallet  string       `json:"selectedWallet,omitempty"`
	Connected       bool         `json:"connected"`
	PublicKey       string       `json:"publicKey,omitempty"`
	DelegateAddress string       `json:"delegateAddress"`
	Amount          string       `json:"amount"`
	Status          StatusInfo   `json:"status"`
	Loading         bool         `json:"loading"`
	LastTxID        string       `json:"lastTxId,omitempty"`
	LastExplorerURL string       `json:"lastExplorerUrl,omitempty"`
}

// SelectWalletRequest represents request for POST /wallets/select
type SelectWalletRequest struct {
	Name string `json:"name"`
}

// NetworkRequest represents request for POST /network
type NetworkRequest struct {
	Network string `json:"network"`
}
