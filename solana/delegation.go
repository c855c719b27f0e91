package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/usdc-delegate/internal/client"
	"github.com/AlexZinkM/usdc-delegate/internal/common"
	"github.com/AlexZinkM/usdc-delegate/internal/model"
	"github.com/AlexZinkM/usdc-delegate/internal/wallet"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Submitted is called once the transaction is accepted by the node and before confirmation starts.
type Submitted func(sig solana.Signature)

// ApproveParams describes a delegation to grant on the owner's token account.
type ApproveParams struct {
	Owner    solana.PublicKey
	Mint     solana.PublicKey
	Delegate solana.PublicKey
	Amount   uint64 // base units
}

// RevokeParams describes the token account whose delegation is cancelled.
type RevokeParams struct {
	Owner solana.PublicKey
	Mint  solana.PublicKey
}

// ApproveInstruction builds the SPL approve instruction for the owner's associated token account.
func ApproveInstruction(p ApproveParams) (solana.Instruction, error) {
	if p.Amount == 0 {
		return nil, common.ErrNotPositive
	}
	if p.Delegate.IsZero() {
		return nil, errors.New("delegate address is required")
	}
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(p.Owner, p.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	return token.NewApproveInstruction(
		p.Amount,
		tokenAccount,
		p.Delegate,
		p.Owner,
		[]solana.PublicKey{},
	).Build(), nil
}

// RevokeInstruction builds the SPL revoke instruction for the owner's associated token account.
func RevokeInstruction(p RevokeParams) (solana.Instruction, error) {
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(p.Owner, p.Mint)
	if err != nil {
		return nil, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	return token.NewRevokeInstruction(
		tokenAccount,
		p.Owner,
		[]solana.PublicKey{},
	).Build(), nil
}

// Submit puts instruction in a transaction paid by payer, has provider sign it, sends it
// and waits for confirmed commitment.
func Submit(ctx context.Context, conn client.Connection, provider wallet.Provider, payer solana.PublicKey, instruction solana.Instruction, onSubmitted Submitted) (solana.Signature, error) {
	recent, err := conn.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Hash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	signed, err := provider.SignTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to serialize transaction: %w", err)
	}

	sig, err := conn.SendRawTransaction(ctx, raw)
	if err != nil {
		return solana.Signature{}, err
	}
	if onSubmitted != nil {
		onSubmitted(sig)
	}

	if err := conn.ConfirmTransaction(ctx, sig, recent.LastValidBlockHeight, rpc.CommitmentConfirmed); err != nil {
		return sig, err
	}
	return sig, nil
}

// GetDelegation reads the owner's token account for mint and reports its current delegation.
func GetDelegation(ctx context.Context, conn client.Connection, owner, mint solana.PublicKey) (*model.DelegationResponse, error) {
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	account, err := conn.GetTokenAccount(ctx, tokenAccount)
	if err != nil {
		return nil, err
	}

	resp := &model.DelegationResponse{
		Owner:        owner.String(),
		Mint:         mint.String(),
		TokenAccount: tokenAccount.String(),
		Balance:      common.MicroToUSDC(account.Amount),
	}
	if account.Delegate != nil && !account.Delegate.IsZero() {
		resp.Delegate = account.Delegate.String()
		resp.DelegatedAmount = common.MicroToUSDC(account.DelegatedAmount)
	}
	return resp, nil
}
