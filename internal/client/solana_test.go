package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRPC answers JSON-RPC calls from canned results keyed by method name.
type fakeRPC struct {
	mu        sync.Mutex
	results   map[string][]any
	calls     map[string]int
	throttled map[string]int
}

func newFakeRPC() *fakeRPC {
	return &fakeRPC{results: map[string][]any{}, calls: map[string]int{}, throttled: map[string]int{}}
}

// throttle answers the first n calls to method with HTTP 429.
func (f *fakeRPC) throttle(method string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.throttled[method] = n
}

// on queues results for method; the last one repeats.
func (f *fakeRPC) on(method string, results ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = results
}

func (f *fakeRPC) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	queue := f.results[req.Method]
	n := f.calls[req.Method]
	f.calls[req.Method]++
	throttled := n < f.throttled[req.Method]
	f.mu.Unlock()

	if throttled {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	switch {
	case len(queue) == 0:
		resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
	default:
		if n >= len(queue) {
			n = len(queue) - 1
		}
		resp["result"] = queue[n]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, f *fakeRPC) *SolanaClient {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c := NewSolanaClient(srv.URL, 2*time.Second)
	c.pollInterval = 10 * time.Millisecond
	return c
}

func statusResult(confirmation string, txErr any) map[string]any {
	return map[string]any{
		"context": map[string]any{"slot": 10},
		"value": []any{map[string]any{
			"slot":               10,
			"confirmations":      nil,
			"err":                txErr,
			"confirmationStatus": confirmation,
		}},
	}
}

func TestGetLatestBlockhash(t *testing.T) {
	f := newFakeRPC()
	hash := solana.HashFromBytes(bytes.Repeat([]byte{7}, 32))
	f.on("getLatestBlockhash", map[string]any{
		"context": map[string]any{"slot": 1},
		"value":   map[string]any{"blockhash": hash.String(), "lastValidBlockHeight": 300},
	})

	c := newTestClient(t, f)
	got, err := c.GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hash, got.Hash)
	assert.Equal(t, uint64(300), got.LastValidBlockHeight)
}

func TestSendRawTransaction(t *testing.T) {
	f := newFakeRPC()
	sig := solana.SignatureFromBytes(bytes.Repeat([]byte{3}, 64))
	f.on("sendTransaction", sig.String())

	c := newTestClient(t, f)
	got, err := c.SendRawTransaction(context.Background(), []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, sig, got)
}

func TestSendRawTransactionRPCError(t *testing.T) {
	c := newTestClient(t, newFakeRPC())
	_, err := c.SendRawTransaction(context.Background(), []byte{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send transaction")
}

func TestConfirmTransactionWaitsForCommitment(t *testing.T) {
	f := newFakeRPC()
	f.on("getSignatureStatuses", statusResult("processed", nil), statusResult("confirmed", nil))

	c := newTestClient(t, f)
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 0, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("getSignatureStatuses"))
}

func TestConfirmTransactionRetriesThrottledStatus(t *testing.T) {
	f := newFakeRPC()
	f.throttle("getSignatureStatuses", 1)
	f.on("getSignatureStatuses", statusResult("confirmed", nil))

	c := newTestClient(t, f)
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 0, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("getSignatureStatuses"))
}

func TestConfirmTransactionRetriesThrottledBlockHeight(t *testing.T) {
	f := newFakeRPC()
	f.on("getSignatureStatuses",
		map[string]any{"context": map[string]any{"slot": 10}, "value": []any{nil}},
		statusResult("confirmed", nil),
	)
	f.throttle("getBlockHeight", 1)
	f.on("getBlockHeight", 100)

	c := newTestClient(t, f)
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 500, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count("getBlockHeight"))
}

func TestConfirmTransactionRPCErrorsUntilTimeout(t *testing.T) {
	f := newFakeRPC()
	f.throttle("getSignatureStatuses", 1_000_000)

	c := newTestClient(t, f)
	c.confirmTimeout = 50 * time.Millisecond
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 0, rpc.CommitmentConfirmed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, f.count("getSignatureStatuses"), 1)
}

func TestConfirmTransactionReportsFailure(t *testing.T) {
	f := newFakeRPC()
	f.on("getSignatureStatuses", statusResult("confirmed", map[string]any{"InstructionError": []any{0, "Custom"}}))

	c := newTestClient(t, f)
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 0, rpc.CommitmentConfirmed)
	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.Equal(t, 1, f.count("getSignatureStatuses"))
}

func TestConfirmTransactionBlockhashExpired(t *testing.T) {
	f := newFakeRPC()
	f.on("getSignatureStatuses", map[string]any{
		"context": map[string]any{"slot": 10},
		"value":   []any{nil},
	})
	f.on("getBlockHeight", 501)

	c := newTestClient(t, f)
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 500, rpc.CommitmentConfirmed)
	assert.ErrorIs(t, err, ErrBlockhashExpired)
}

func TestConfirmTransactionTimeout(t *testing.T) {
	f := newFakeRPC()
	f.on("getSignatureStatuses", statusResult("processed", nil))

	c := newTestClient(t, f)
	c.confirmTimeout = 50 * time.Millisecond
	err := c.ConfirmTransaction(context.Background(), solana.Signature{}, 0, rpc.CommitmentFinalized)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetTokenAccountDecodesDelegate(t *testing.T) {
	delegate := solana.NewWallet().PublicKey()
	account := token.Account{
		Mint:            solana.NewWallet().PublicKey(),
		Owner:           solana.NewWallet().PublicKey(),
		Amount:          5_000_000,
		Delegate:        &delegate,
		State:           token.Initialized,
		DelegatedAmount: 1_500_000,
	}
	buf := new(bytes.Buffer)
	require.NoError(t, account.MarshalWithEncoder(bin.NewBinEncoder(buf)))

	f := newFakeRPC()
	f.on("getAccountInfo", map[string]any{
		"context": map[string]any{"slot": 1},
		"value": map[string]any{
			"data":       []any{base64.StdEncoding.EncodeToString(buf.Bytes()), "base64"},
			"executable": false,
			"lamports":   2039280,
			"owner":      solana.TokenProgramID.String(),
			"rentEpoch":  0,
		},
	})

	c := newTestClient(t, f)
	got, err := c.GetTokenAccount(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	require.NotNil(t, got.Delegate)
	assert.True(t, got.Delegate.Equals(delegate))
	assert.Equal(t, uint64(1_500_000), got.DelegatedAmount)
	assert.Equal(t, uint64(5_000_000), got.Amount)
}

func TestGetTokenAccountMissing(t *testing.T) {
	f := newFakeRPC()
	f.on("getAccountInfo", map[string]any{
		"context": map[string]any{"slot": 1},
		"value":   nil,
	})
	f.on("getMinimumBalanceForRentExemption", 2039280)

	c := newTestClient(t, f)
	_, err := c.GetTokenAccount(context.Background(), solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrTokenAccountNotFound)
	assert.Contains(t, err.Error(), "0.002039280 SOL")
}

func TestReached(t *testing.T) {
	assert.True(t, reached(rpc.ConfirmationStatusFinalized, rpc.CommitmentConfirmed))
	assert.True(t, reached(rpc.ConfirmationStatusConfirmed, rpc.CommitmentConfirmed))
	assert.False(t, reached(rpc.ConfirmationStatusProcessed, rpc.CommitmentConfirmed))
	assert.False(t, reached("", rpc.CommitmentProcessed))
}
