package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/usdc-delegate/internal/common"
	"github.com/AlexZinkM/usdc-delegate/internal/logging"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const defaultPollInterval = 2 * time.Second

var (
	// ErrTokenAccountNotFound is returned when the owner has no associated token account for the mint.
	ErrTokenAccountNotFound = errors.New("token account not found")
	// ErrBlockhashExpired is returned when a transaction was not confirmed before its blockhash expired.
	ErrBlockhashExpired = errors.New("blockhash expired before confirmation")
	// ErrTransactionFailed is returned when the cluster executed the transaction with an error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// Blockhash is a recent blockhash and the last block height at which it is still valid.
type Blockhash struct {
	Hash                 solana.Hash
	LastValidBlockHeight uint64
}

// Connection is the RPC surface needed to submit and confirm delegation transactions.
type Connection interface {
	Endpoint() string
	GetLatestBlockhash(ctx context.Context) (Blockhash, error)
	SendRawTransaction(ctx context.Context, raw []byte) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64, commitment rpc.CommitmentType) error
	GetTokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error)
}

// Dialer builds a Connection bound to an RPC endpoint.
type Dialer func(endpoint string) Connection

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient      *rpc.Client
	rpcURL         string
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// NewSolanaClient creates a new Solana client for the given endpoint.
func NewSolanaClient(rpcURL string, confirmTimeout time.Duration) *SolanaClient {
	return &SolanaClient{
		rpcClient:      rpc.New(rpcURL),
		rpcURL:         rpcURL,
		confirmTimeout: confirmTimeout,
		pollInterval:   defaultPollInterval,
	}
}

// NewDialer returns a Dialer producing SolanaClients with the given confirmation timeout.
func NewDialer(confirmTimeout time.Duration) Dialer {
	return func(endpoint string) Connection {
		return NewSolanaClient(endpoint, confirmTimeout)
	}
}

// Endpoint returns the RPC URL this client talks to
func (c *SolanaClient) Endpoint() string {
	return c.rpcURL
}

// GetLatestBlockhash fetches a finalized blockhash for a new transaction
func (c *SolanaClient) GetLatestBlockhash(ctx context.Context) (Blockhash, error) {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return Blockhash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	if recent == nil || recent.Value == nil {
		return Blockhash{}, errors.New("failed to get recent blockhash: empty response")
	}
	return Blockhash{
		Hash:                 recent.Value.Blockhash,
		LastValidBlockHeight: recent.Value.LastValidBlockHeight,
	}, nil
}

// SendRawTransaction submits an already signed, serialized transaction
func (c *SolanaClient) SendRawTransaction(ctx context.Context, raw []byte) (solana.Signature, error) {
	sig, err := c.rpcClient.SendRawTransactionWithOpts(
		ctx,
		raw,
		rpc.TransactionOpts{
			SkipPreflight:       false, // Transaction validation before node
			PreflightCommitment: rpc.CommitmentConfirmed,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// ConfirmTransaction polls signature status until it reaches commitment, the transaction fails,
// the blockhash expires or the confirmation timeout elapses.
// Failed status or block height requests are retried on the next tick.
func (c *SolanaClient) ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64, commitment rpc.CommitmentType) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkSignature(ctx, sig, lastValidBlockHeight, commitment)
		switch {
		case done:
			return nil
		case err == nil:
		case ctx.Err() != nil:
			return fmt.Errorf("failed to confirm transaction %s: %w", sig, ctx.Err())
		case errors.Is(err, ErrTransactionFailed), errors.Is(err, ErrBlockhashExpired):
			return err
		default:
			logging.Debug("Confirmation poll failed, retrying",
				zap.String("signature", sig.String()),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to confirm transaction %s: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *SolanaClient) checkSignature(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64, commitment rpc.CommitmentType) (bool, error) {
	statuses, err := c.rpcClient.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return false, fmt.Errorf("failed to get signature status: %w", err)
	}

	if statuses != nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
		status := statuses.Value[0]
		if status.Err != nil {
			return false, fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err)
		}
		if reached(status.ConfirmationStatus, commitment) {
			return true, nil
		}
		return false, nil
	}

	// Unknown signature: give up once the blockhash can no longer land
	if lastValidBlockHeight > 0 {
		height, err := c.rpcClient.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
		if err != nil {
			return false, fmt.Errorf("failed to get block height: %w", err)
		}
		if height > lastValidBlockHeight {
			return false, fmt.Errorf("transaction %s: %w", sig, ErrBlockhashExpired)
		}
	}
	return false, nil
}

// reached reports whether status is at least as deep as the requested commitment.
func reached(status rpc.ConfirmationStatusType, commitment rpc.CommitmentType) bool {
	rank := map[rpc.ConfirmationStatusType]int{
		rpc.ConfirmationStatusProcessed: 1,
		rpc.ConfirmationStatusConfirmed: 2,
		rpc.ConfirmationStatusFinalized: 3,
	}
	want := map[rpc.CommitmentType]int{
		rpc.CommitmentProcessed: 1,
		rpc.CommitmentConfirmed: 2,
		rpc.CommitmentFinalized: 3,
	}
	need, ok := want[commitment]
	if !ok {
		need = 2
	}
	return rank[status] >= need
}

// GetTokenAccount fetches and decodes an SPL token account
func (c *SolanaClient) GetTokenAccount(ctx context.Context, address solana.PublicKey) (*token.Account, error) {
	resp, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if isATANotFoundError(err) {
			return nil, c.getATANotFoundError(ctx, address)
		}
		return nil, fmt.Errorf("failed to get token account info: %w", err)
	}
	if resp == nil || resp.Value == nil {
		return nil, c.getATANotFoundError(ctx, address)
	}

	var account token.Account
	if err := account.UnmarshalWithDecoder(bin.NewBinDecoder(resp.Value.Data.GetBinary())); err != nil {
		return nil, fmt.Errorf("failed to decode token account: %w", err)
	}
	return &account, nil
}

// getTokenAccountRentExempt gets the minimum balance required for rent exemption of a token account
func (c *SolanaClient) getTokenAccountRentExempt(ctx context.Context) (string, error) {
	// Token account size is 165 bytes
	const tokenAccountSize = 165

	rentExempt, err := c.rpcClient.GetMinimumBalanceForRentExemption(
		ctx,
		tokenAccountSize,
		rpc.CommitmentFinalized,
	)
	if err != nil {
		return "", err
	}

	return common.LamportsToSOL(rentExempt), nil
}

// isATANotFoundError checks if error indicates that token account doesn't exist
func isATANotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}

// getATANotFoundError returns formatted error for missing USDC account
func (c *SolanaClient) getATANotFoundError(ctx context.Context, address solana.PublicKey) error {
	rentExempt, err := c.getTokenAccountRentExempt(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTokenAccountNotFound, address)
	}
	return fmt.Errorf("%w: %s. Deposit any amount of USDC to the owner to create it (requires rent exempt: %s SOL from the sender)",
		ErrTokenAccountNotFound, address, rentExempt)
}
