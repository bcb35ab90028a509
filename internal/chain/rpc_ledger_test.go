package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tx-submitter-sol/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBlockhash = "CuRF5bMpCoatpfGTKy7H99JoAseKEUCrENzFv9yHTnG4"

// 模拟 Solana JSON-RPC 节点，按 method 返回固定结果
func newFakeRpcServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected rpc method %s", req.Method)
			result = "null"
		}
		if len(req.ID) == 0 {
			req.ID = json.RawMessage("1")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
	}))
}

func newTestLedger(t *testing.T, endpoint string) *RpcLedger {
	t.Helper()
	l, err := NewRpcLedger(RpcLedgerOption{
		Endpoint:   endpoint,
		Commitment: types.CommitmentConfirmed,
		Timeout:    2 * time.Second,
	})
	require.NoError(t, err)
	return l
}

func TestRpcLedger_LatestBlockhash(t *testing.T) {
	srv := newFakeRpcServer(t, map[string]string{
		"getLatestBlockhash": `{"context":{"slot":1},"value":{"blockhash":"` + testBlockhash + `","lastValidBlockHeight":100}}`,
	})
	defer srv.Close()

	hash, err := newTestLedger(t, srv.URL).LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testBlockhash, hash)
}

func TestRpcLedger_LatestBlockhashInvalid(t *testing.T) {
	srv := newFakeRpcServer(t, map[string]string{
		"getLatestBlockhash": `{"context":{"slot":1},"value":{"blockhash":"abc","lastValidBlockHeight":100}}`,
	})
	defer srv.Close()

	_, err := newTestLedger(t, srv.URL).LatestBlockhash(context.Background())
	assert.Error(t, err)
}

func TestRpcLedger_SignatureStatus(t *testing.T) {
	srv := newFakeRpcServer(t, map[string]string{
		"getSignatureStatuses": `{"context":{"slot":9},"value":[{"slot":8,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}]}`,
	})
	defer srv.Close()

	status, err := newTestLedger(t, srv.URL).SignatureStatus(context.Background(), "sig")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, uint64(8), status.Slot)
	assert.Equal(t, types.CommitmentConfirmed, status.Commitment)
	assert.Nil(t, status.Err)
}

func TestRpcLedger_SignatureStatusUnknown(t *testing.T) {
	srv := newFakeRpcServer(t, map[string]string{
		"getSignatureStatuses": `{"context":{"slot":9},"value":[null]}`,
	})
	defer srv.Close()

	status, err := newTestLedger(t, srv.URL).SignatureStatus(context.Background(), "sig")
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestRpcLedger_Balance(t *testing.T) {
	srv := newFakeRpcServer(t, map[string]string{
		"getBalance": `{"context":{"slot":9},"value":2500000000}`,
	})
	defer srv.Close()

	balance, err := newTestLedger(t, srv.URL).Balance(context.Background(), types.Pubkey{1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000_000), balance)
}

func TestRpcLedger_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := newTestLedger(t, endpoint).LatestBlockhash(context.Background())
	assert.Error(t, err)
}
