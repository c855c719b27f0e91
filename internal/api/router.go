package api

import (
	_ "embed"
	"errors"
	"net/http"

	_ "github.com/AlexZinkM/usdc-delegate/docs"
	"github.com/AlexZinkM/usdc-delegate/internal/handler"
	"github.com/AlexZinkM/usdc-delegate/internal/session"
	"github.com/AlexZinkM/usdc-delegate/internal/wallet"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed index.html
var indexPage []byte

// Options configures the router
type Options struct {
	Controller *session.Controller
	// KeystorePath is the default target of /keystore/generate
	KeystorePath string
	Password     wallet.PasswordFunc
}

// SetupRouter sets up router with handlers
func SetupRouter(opts Options) (http.Handler, error) {
	if opts.Controller == nil {
		return nil, errors.New("session controller is required")
	}

	sessionHandler, err := handler.NewSessionHandler(opts.Controller)
	if err != nil {
		return nil, err
	}
	keystoreHandler, err := handler.NewKeystoreHandler(opts.KeystorePath, opts.Password)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Single page
	mux.HandleFunc("/", index)

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Session endpoints
	mux.HandleFunc("/session", sessionHandler.GetSession)
	mux.HandleFunc("/network", sessionHandler.SwitchNetwork)

	// Wallet endpoints
	mux.HandleFunc("/wallets", sessionHandler.ListWallets)
	mux.HandleFunc("/wallets/select", sessionHandler.SelectWallet)
	mux.HandleFunc("/wallet/connect", sessionHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", sessionHandler.Disconnect)

	// Delegation endpoints
	mux.HandleFunc("/approve", sessionHandler.Approve)
	mux.HandleFunc("/approve/unlimited", sessionHandler.Unlimited)
	mux.HandleFunc("/revoke", sessionHandler.Revoke)
	mux.HandleFunc("/delegation", sessionHandler.GetDelegation)

	// Keystore endpoints
	mux.HandleFunc("/keystore/generate", keystoreHandler.Generate)

	return mux, nil
}

func index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}
