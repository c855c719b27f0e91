package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetSolanaPasswordBytes()
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	SolanaRPCMainnet string        `envconfig:"SOLANA_RPC_MAINNET" default:"https://api.mainnet.solana.com"`
	SolanaRPCDevnet  string        `envconfig:"SOLANA_RPC_DEVNET" default:"https://api.devnet.solana.com"`
	SolanaFilePath   string        `envconfig:"SOLANA_FILE_PATH"`
	KeyringService   string        `envconfig:"KEYRING_SERVICE" default:"usdc-delegate"`
	KeyringKey       string        `envconfig:"KEYRING_KEY" default:"solana"`
	ConfirmTimeout   time.Duration `envconfig:"CONFIRM_TIMEOUT" default:"90s"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from a .env file (if present) and environment variables.
func Init() error {
	// Missing .env is fine, real environment still applies
	_ = godotenv.Load()

	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load processes environment variables into a fresh Config without touching the global instance.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if c.ConfirmTimeout <= 0 {
		return nil, errors.New("CONFIRM_TIMEOUT must be positive")
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaFilePath returns path to .cwt file from configuration
func GetSolanaFilePath() string {
	return Get().SolanaFilePath
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetSolanaPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetSolanaPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
