package model

// DelegationResponse represents response for GET /delegation
type DelegationResponse struct {
	Owner           string `json:"owner"`
	Mint            string `json:"mint"`
	TokenAccount    string `json:"tokenAccount"`
	Balance         string `json:"balance"`
	Delegate        string `json:"delegate,omitempty"`
	DelegatedAmount string `json:"delegatedAmount,omitempty"`
}

// ApproveRequest represents request for POST /approve.
// Empty fields fall back to the values already held by the session.
type ApproveRequest struct {
	DelegateAddress *string `json:"delegateAddress,omitempty"`
	Amount          *string `json:"amount,omitempty"`
}

// TxResponse represents response for POST /approve and POST /revoke
type TxResponse struct {
	TxID        string `json:"txId"`
	ExplorerURL string `json:"explorerUrl"`
}
