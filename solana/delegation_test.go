package solana

import (
	"context"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/usdc-delegate/internal/client"
	"github.com/AlexZinkM/usdc-delegate/internal/common"
	"github.com/AlexZinkM/usdc-delegate/internal/crypto"
	"github.com/AlexZinkM/usdc-delegate/internal/network"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	blockhashErr error
	sendErr      error
	confirmErr   error
	account      *token.Account
	accountErr   error

	sent       [][]byte
	confirmed  []solana.Signature
	commitment rpc.CommitmentType
	lastValid  uint64
}

func (f *fakeConn) Endpoint() string { return "fake" }

func (f *fakeConn) GetLatestBlockhash(context.Context) (client.Blockhash, error) {
	if f.blockhashErr != nil {
		return client.Blockhash{}, f.blockhashErr
	}
	return client.Blockhash{Hash: solana.Hash{42}, LastValidBlockHeight: 777}, nil
}

func (f *fakeConn) SendRawTransaction(_ context.Context, raw []byte) (solana.Signature, error) {
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	f.sent = append(f.sent, raw)
	tx, err := solana.TransactionFromBytes(raw)
	if err != nil {
		return solana.Signature{}, err
	}
	return tx.Signatures[0], nil
}

func (f *fakeConn) ConfirmTransaction(_ context.Context, sig solana.Signature, lastValid uint64, commitment rpc.CommitmentType) error {
	f.confirmed = append(f.confirmed, sig)
	f.commitment = commitment
	f.lastValid = lastValid
	return f.confirmErr
}

func (f *fakeConn) GetTokenAccount(context.Context, solana.PublicKey) (*token.Account, error) {
	return f.account, f.accountErr
}

type keySigner struct {
	key solana.PrivateKey
	err error
}

func (k *keySigner) Connect(context.Context) error    { return nil }
func (k *keySigner) Disconnect(context.Context) error { return nil }
func (k *keySigner) PublicKey() solana.PublicKey      { return k.key.PublicKey() }
func (k *keySigner) IsConnected() bool                { return true }

func (k *keySigner) SignTransaction(_ context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	if k.err != nil {
		return nil, k.err
	}
	_, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(k.key.PublicKey()) {
			return &k.key
		}
		return nil
	})
	return tx, err
}

func TestApproveInstructionLayout(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	delegate := solana.NewWallet().PublicKey()

	ix, err := ApproveInstruction(ApproveParams{Owner: owner, Mint: network.USDCDevnet, Delegate: delegate, Amount: 1_500_000})
	require.NoError(t, err)
	assert.Equal(t, solana.TokenProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 9)
	assert.Equal(t, byte(4), data[0]) // Approve
	assert.Equal(t, uint64(1_500_000), binary.LittleEndian.Uint64(data[1:]))

	ata, _, _ := solana.FindAssociatedTokenAddress(owner, network.USDCDevnet)
	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, ata, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, delegate, accounts[1].PublicKey)
	assert.Equal(t, owner, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsSigner)
}

func TestApproveInstructionRejectsZeroAmount(t *testing.T) {
	_, err := ApproveInstruction(ApproveParams{
		Owner:    solana.NewWallet().PublicKey(),
		Mint:     network.USDCMainnet,
		Delegate: solana.NewWallet().PublicKey(),
	})
	assert.ErrorIs(t, err, common.ErrNotPositive)
}

func TestApproveInstructionRejectsMissingDelegate(t *testing.T) {
	_, err := ApproveInstruction(ApproveParams{Owner: solana.NewWallet().PublicKey(), Mint: network.USDCMainnet, Amount: 1})
	assert.Error(t, err)
}

func TestRevokeInstructionLayout(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	ix, err := RevokeInstruction(RevokeParams{Owner: owner, Mint: network.USDCMainnet})
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{5}, data) // Revoke

	ata, _, _ := solana.FindAssociatedTokenAddress(owner, network.USDCMainnet)
	accounts := ix.Accounts()
	require.Len(t, accounts, 2)
	assert.Equal(t, ata, accounts[0].PublicKey)
	assert.Equal(t, owner, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsSigner)
}

func TestSubmitSignsSendsAndConfirms(t *testing.T) {
	signer := &keySigner{key: solana.NewWallet().PrivateKey}
	owner := signer.PublicKey()
	conn := &fakeConn{}

	ix, err := RevokeInstruction(RevokeParams{Owner: owner, Mint: network.USDCMainnet})
	require.NoError(t, err)

	var notified solana.Signature
	sig, err := Submit(context.Background(), conn, signer, owner, ix, func(s solana.Signature) { notified = s })
	require.NoError(t, err)

	require.Len(t, conn.sent, 1)
	tx, err := solana.TransactionFromBytes(conn.sent[0])
	require.NoError(t, err)
	assert.Equal(t, owner, tx.Message.AccountKeys[0]) // fee payer
	assert.Equal(t, solana.Hash{42}, tx.Message.RecentBlockhash)
	assert.NoError(t, tx.VerifySignatures())

	assert.Equal(t, sig, notified)
	assert.Equal(t, []solana.Signature{sig}, conn.confirmed)
	assert.Equal(t, rpc.CommitmentConfirmed, conn.commitment)
	assert.Equal(t, uint64(777), conn.lastValid)
}

func TestSubmitStopsOnSignRejection(t *testing.T) {
	signer := &keySigner{key: solana.NewWallet().PrivateKey, err: errors.New("user rejected")}
	conn := &fakeConn{}
	ix, _ := RevokeInstruction(RevokeParams{Owner: signer.PublicKey(), Mint: network.USDCMainnet})

	_, err := Submit(context.Background(), conn, signer, signer.PublicKey(), ix, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user rejected")
	assert.Empty(t, conn.sent)
}

func TestSubmitReturnsSignatureWhenConfirmFails(t *testing.T) {
	signer := &keySigner{key: solana.NewWallet().PrivateKey}
	conn := &fakeConn{confirmErr: client.ErrBlockhashExpired}
	ix, _ := RevokeInstruction(RevokeParams{Owner: signer.PublicKey(), Mint: network.USDCMainnet})

	sig, err := Submit(context.Background(), conn, signer, signer.PublicKey(), ix, nil)
	assert.ErrorIs(t, err, client.ErrBlockhashExpired)
	assert.False(t, sig.IsZero())
}

func TestSubmitBlockhashFailure(t *testing.T) {
	signer := &keySigner{key: solana.NewWallet().PrivateKey}
	conn := &fakeConn{blockhashErr: errors.New("rpc down")}
	ix, _ := RevokeInstruction(RevokeParams{Owner: signer.PublicKey(), Mint: network.USDCMainnet})

	_, err := Submit(context.Background(), conn, signer, signer.PublicKey(), ix, nil)
	assert.EqualError(t, err, "rpc down")
}

func TestGetDelegation(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	delegate := solana.NewWallet().PublicKey()
	conn := &fakeConn{account: &token.Account{Amount: 2_000_000, Delegate: &delegate, DelegatedAmount: 250_000}}

	got, err := GetDelegation(context.Background(), conn, owner, network.USDCMainnet)
	require.NoError(t, err)
	assert.Equal(t, delegate.String(), got.Delegate)
	assert.Equal(t, "0.250000", got.DelegatedAmount)
	assert.Equal(t, "2.000000", got.Balance)
	assert.Equal(t, network.USDCMainnet.String(), got.Mint)
}

func TestGetDelegationNone(t *testing.T) {
	conn := &fakeConn{account: &token.Account{Amount: 1}}
	got, err := GetDelegation(context.Background(), conn, solana.NewWallet().PublicKey(), network.USDCDevnet)
	require.NoError(t, err)
	assert.Empty(t, got.Delegate)
	assert.Empty(t, got.DelegatedAmount)
}

func TestGetDelegationMissingAccount(t *testing.T) {
	conn := &fakeConn{accountErr: client.ErrTokenAccountNotFound}
	_, err := GetDelegation(context.Background(), conn, solana.NewWallet().PublicKey(), network.USDCDevnet)
	assert.ErrorIs(t, err, client.ErrTokenAccountNotFound)
}

func TestGenerateWallet(t *testing.T) {
	prev := crypto.ScryptN
	crypto.ScryptN = 1 << 10
	t.Cleanup(func() { crypto.ScryptN = prev })

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	resp, err := GenerateWallet(path, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.QR)

	addr, err := crypto.ReadWalletAddress(path)
	require.NoError(t, err)
	assert.Equal(t, resp.Address, addr)

	_, err = GenerateWallet(path, []byte("pw"))
	assert.True(t, IsFileExistsError(err))
}

func TestGenerateWalletRejectsExtension(t *testing.T) {
	_, err := GenerateWallet(filepath.Join(t.TempDir(), "wallet.txt"), []byte("pw"))
	assert.Error(t, err)
	assert.False(t, IsFileExistsError(err))
}
