// Package session holds the state of one operator session: detected wallets, the selected one,
// the active network and the approve/revoke form, and runs the delegation flows against them.
//
// Every mutating method returns ErrBusy while an approve or revoke is in flight, the way the
// page disables its controls. Network calls run without holding the state lock so State stays
// readable during a flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/usdc-delegate/internal/client"
	"github.com/AlexZinkM/usdc-delegate/internal/common"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"
	"github.com/AlexZinkM/usdc-delegate/internal/model"
	"github.com/AlexZinkM/usdc-delegate/internal/network"
	"github.com/AlexZinkM/usdc-delegate/internal/wallet"
	delegation "github.com/AlexZinkM/usdc-delegate/solana"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

var (
	ErrBusy             = errors.New("another operation is in progress")
	ErrNoWalletSelected = errors.New("please select a wallet first")
	ErrUnknownWallet    = errors.New("unknown wallet")
	ErrAlreadyConnected = errors.New("wallet already connected")
	ErrNoPublicKey      = errors.New("unable to retrieve public key from wallet")
	ErrNotConnected     = errors.New("please connect your wallet first")
	ErrMissingFields    = errors.New("please fill in all fields")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDelegate  = errors.New("invalid delegate address")
)

// Severity classifies a status message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Status is the last user-visible message.
type Status struct {
	Message  string
	Severity Severity
}

// State is a point-in-time copy of the session.
type State struct {
	Network         network.Network
	Wallets         []wallet.Descriptor
	Selected        string
	Connected       bool
	PublicKey       solana.PublicKey
	DelegateAddress string
	Amount          string
	Status          Status
	Loading         bool
	LastSignature   string
	LastExplorerURL string
}

// Config wires a Controller to its environment.
type Config struct {
	Slots     wallet.Slots
	Endpoints network.Endpoints
	Dial      client.Dialer
	// Network defaults to mainnet.
	Network network.Name
}

// Controller is the session state machine. It is safe for concurrent use.
type Controller struct {
	endpoints network.Endpoints
	dial      client.Dialer
	wallets   []wallet.Descriptor

	mu        sync.Mutex
	network   network.Network
	conn      client.Connection
	selected  *wallet.Descriptor
	connected bool
	publicKey solana.PublicKey
	delegate  string
	amount    string
	status    Status
	loading   bool
	lastSig   string
	lastURL   string
}

// New detects wallets once and binds a connection to the starting network.
// A single detected wallet is selected automatically.
func New(cfg Config) (*Controller, error) {
	if cfg.Dial == nil {
		return nil, errors.New("session: dialer is required")
	}
	name := cfg.Network
	if name == "" {
		name = network.Mainnet
	}
	active, err := network.Resolve(name, cfg.Endpoints)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		endpoints: cfg.Endpoints,
		dial:      cfg.Dial,
		wallets:   wallet.Detect(cfg.Slots),
		network:   active,
		conn:      cfg.Dial(active.Endpoint),
	}
	if len(c.wallets) == 1 {
		c.selected = &c.wallets[0]
	}

	logging.Info("Session started",
		zap.String("network", string(active.Name)),
		zap.Int("wallets", len(c.wallets)),
	)
	return c, nil
}

// Wallets returns the wallets detected at startup.
func (c *Controller) Wallets() []wallet.Descriptor {
	return append([]wallet.Descriptor(nil), c.wallets...)
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Network:         c.network,
		Wallets:         c.Wallets(),
		Connected:       c.connected,
		PublicKey:       c.publicKey,
		DelegateAddress: c.delegate,
		Amount:          c.amount,
		Status:          c.status,
		Loading:         c.loading,
		LastSignature:   c.lastSig,
		LastExplorerURL: c.lastURL,
	}
	if c.selected != nil {
		s.Selected = c.selected.Name
	}
	return s
}

// SelectWallet makes the named wallet the one Connect will use.
func (c *Controller) SelectWallet(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrBusy
	}
	if c.connected {
		return ErrAlreadyConnected
	}
	for i := range c.wallets {
		if c.wallets[i].Name == name {
			c.selected = &c.wallets[i]
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownWallet, name)
}

// SetDelegateAddress stores the delegate form field as typed.
func (c *Controller) SetDelegateAddress(address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrBusy
	}
	c.delegate = address
	return nil
}

// SetAmount stores the amount form field as typed.
func (c *Controller) SetAmount(amount string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrBusy
	}
	c.amount = amount
	return nil
}

// SetUnlimited fills the amount with the largest approvable value.
func (c *Controller) SetUnlimited() error {
	return c.SetAmount(common.MaxUSDCAmount)
}

// SwitchNetwork rebinds the connection to another cluster and clears the form.
// The wallet connection is left alone.
func (c *Controller) SwitchNetwork(name network.Name) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrBusy
	}
	active, err := network.Resolve(name, c.endpoints)
	if err != nil {
		return err
	}

	c.network = active
	c.conn = c.dial(active.Endpoint)
	c.delegate = ""
	c.amount = ""
	c.setStatus(fmt.Sprintf("Switched to %s", active.Name), SeveritySuccess)

	logging.Info("Network switched", zap.String("network", string(active.Name)))
	return nil
}

// Connect connects the selected wallet and records its public key.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.selected == nil {
		c.setStatus("Please select a wallet first", SeverityError)
		c.mu.Unlock()
		return ErrNoWalletSelected
	}
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	selected := *c.selected
	c.loading = true
	c.status = Status{}
	c.mu.Unlock()

	pub, err := connectProvider(ctx, selected.Provider)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.setStatus(fmt.Sprintf("Connection failed: %s", err), SeverityError)
		logging.Warn("Wallet connection failed", zap.String("wallet", selected.Name), zap.Error(err))
		return err
	}

	c.publicKey = pub
	c.connected = true
	c.setStatus(fmt.Sprintf("Connected to %s!", selected.Name), SeveritySuccess)
	logging.Info("Wallet connected", zap.String("wallet", selected.Name), zap.String("public_key", pub.String()))
	return nil
}

func connectProvider(ctx context.Context, p wallet.Provider) (solana.PublicKey, error) {
	if err := p.Connect(ctx); err != nil {
		return solana.PublicKey{}, err
	}
	pub := p.PublicKey()
	if pub.IsZero() {
		return solana.PublicKey{}, ErrNoPublicKey
	}
	if !p.IsConnected() {
		return solana.PublicKey{}, errors.New("wallet did not report a connection")
	}
	return pub, nil
}

// Disconnect asks the wallet to disconnect and clears the session whatever it answers.
func (c *Controller) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	selected := c.selected
	c.loading = true
	c.mu.Unlock()

	if selected != nil && selected.Provider != nil {
		if err := selected.Provider.Disconnect(ctx); err != nil {
			logging.Warn("Disconnect error", zap.String("wallet", selected.Name), zap.Error(err))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	c.connected = false
	c.publicKey = solana.PublicKey{}
	c.delegate = ""
	c.amount = ""
	c.setStatus("Disconnected from wallet", SeveritySuccess)
	return nil
}

// flow is what an approve or revoke needs, captured under the lock.
type flow struct {
	provider wallet.Provider
	owner    solana.PublicKey
	network  network.Network
	conn     client.Connection
}

// begin marks the session in flight. check runs under the lock before anything changes.
func (c *Controller) begin(action string, check func() error) (flow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return flow{}, ErrBusy
	}
	if err := check(); err != nil {
		if errors.Is(err, ErrMissingFields) || errors.Is(err, ErrNotConnected) {
			c.setStatus(capitalize(err.Error()), SeverityError)
		} else {
			c.setStatus(fmt.Sprintf("%s failed: %s", action, err), SeverityError)
		}
		return flow{}, err
	}
	c.loading = true
	c.status = Status{}
	return flow{
		provider: c.selected.Provider,
		owner:    c.publicKey,
		network:  c.network,
		conn:     c.conn,
	}, nil
}

func (c *Controller) ready() error {
	if !c.connected || c.publicKey.IsZero() || c.selected == nil {
		return ErrNotConnected
	}
	return nil
}

// Approve grants the delegate in the form the amount in the form on the owner's USDC account.
// The form is cleared only after the transaction is confirmed.
func (c *Controller) Approve(ctx context.Context) (solana.Signature, error) {
	var params delegation.ApproveParams
	f, err := c.begin("Approval", func() error {
		if !c.connected || c.publicKey.IsZero() || c.selected == nil ||
			strings.TrimSpace(c.delegate) == "" || strings.TrimSpace(c.amount) == "" {
			return ErrMissingFields
		}
		// Validated before any network call
		delegate, err := solana.PublicKeyFromBase58(strings.TrimSpace(c.delegate))
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidDelegate, err)
		}
		amount, err := common.ParseApprovalAmount(c.amount)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, err)
		}
		params = delegation.ApproveParams{
			Owner:    c.publicKey,
			Mint:     c.network.Mint,
			Delegate: delegate,
			Amount:   amount,
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, err
	}

	return c.run(ctx, f, "Approval", true, func() (solana.Instruction, error) {
		return delegation.ApproveInstruction(params)
	})
}

// Revoke cancels whatever delegation exists on the owner's USDC account.
func (c *Controller) Revoke(ctx context.Context) (solana.Signature, error) {
	f, err := c.begin("Revoke", c.ready)
	if err != nil {
		return solana.Signature{}, err
	}

	return c.run(ctx, f, "Revoke", false, func() (solana.Instruction, error) {
		return delegation.RevokeInstruction(delegation.RevokeParams{Owner: f.owner, Mint: f.network.Mint})
	})
}

// run builds, submits and confirms one instruction and reports progress in the status.
// With clearForm the form is emptied on success before the in-flight flag drops.
// The in-flight flag is cleared on every path.
func (c *Controller) run(ctx context.Context, f flow, action string, clearForm bool, build func() (solana.Instruction, error)) (sig solana.Signature, err error) {
	defer func() {
		c.mu.Lock()
		c.loading = false
		if err != nil {
			c.setStatus(fmt.Sprintf("%s failed: %s", action, err), SeverityError)
		}
		c.mu.Unlock()

		if err != nil {
			logging.Error(action+" failed", zap.String("network", string(f.network.Name)), zap.Error(err))
		}
	}()

	instruction, err := build()
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err = delegation.Submit(ctx, f.conn, f.provider, f.owner, instruction, func(s solana.Signature) {
		logging.LogTransaction(strings.ToLower(action), string(f.network.Name), s.String())
		c.mu.Lock()
		c.setStatus(fmt.Sprintf("%s submitted! Confirming transaction...", action), SeverityInfo)
		c.mu.Unlock()
	})
	if err != nil {
		return sig, err
	}

	url := f.network.ExplorerURL(sig.String())
	c.mu.Lock()
	c.lastSig = sig.String()
	c.lastURL = url
	if clearForm {
		c.delegate = ""
		c.amount = ""
	}
	c.setStatus(fmt.Sprintf("%s successful! View transaction: %s", action, url), SeveritySuccess)
	c.mu.Unlock()
	return sig, nil
}

// Delegation reports the current delegation on the connected owner's USDC account.
func (c *Controller) Delegation(ctx context.Context) (*model.DelegationResponse, error) {
	c.mu.Lock()
	if err := c.ready(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	owner, mint, conn := c.publicKey, c.network.Mint, c.conn
	c.mu.Unlock()

	return delegation.GetDelegation(ctx, conn, owner, mint)
}

// setStatus must be called with mu held.
func (c *Controller) setStatus(message string, severity Severity) {
	c.status = Status{Message: message, Severity: severity}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
