package model

// GenerateResponse represents response for POST /keystore/generate
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
	QR      string `json:"qr,omitempty"` // base64 PNG
}
