package submit

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tx-submitter-sol/internal/chain"
	"tx-submitter-sol/internal/chain/chaintest"
	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgramStr = "CuRF5bMpCoatpfGTKy7H99JoAseKEUCrENzFv9yHTnG4"

func testKey(b byte) ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return ed25519.NewKeyFromSeed(seed)
}

func writeKeyFile(t *testing.T, key ed25519.PrivateKey) string {
	t.Helper()
	data, err := credential.EncodeKeypairJSON(key)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func pubkeyOf(t *testing.T, key ed25519.PrivateKey) types.Pubkey {
	t.Helper()
	p, err := types.PubkeyFromBytes(key.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	return p
}

// expectShape 模拟节点端校验：只接受单指令、单账户（signer + writable）、空数据、签名有效的交易
func expectShape(payer, program types.Pubkey, data []byte) func(tx sdktypes.Transaction) error {
	return func(tx sdktypes.Transaction) error {
		if err := chaintest.VerifySignatures(tx); err != nil {
			return err
		}
		ixs, err := chaintest.DecodeInstructions(tx)
		if err != nil {
			return err
		}
		if len(ixs) != 1 {
			return fmt.Errorf("want 1 instruction, got %d", len(ixs))
		}
		ix := ixs[0]
		if ix.Program != program {
			return fmt.Errorf("unexpected program %s", ix.Program)
		}
		if len(ix.Accounts) != 1 {
			return fmt.Errorf("want 1 account, got %d", len(ix.Accounts))
		}
		acc := ix.Accounts[0]
		if acc.Pubkey != payer || !acc.IsSigner || !acc.IsWritable {
			return fmt.Errorf("unexpected account meta %+v", acc)
		}
		if string(ix.Data) != string(data) {
			return fmt.Errorf("unexpected data %x", ix.Data)
		}
		if tx.Message.RecentBlockHash != chaintest.TestBlockhash {
			return fmt.Errorf("unexpected blockhash %s", tx.Message.RecentBlockHash)
		}
		return nil
	}
}

type fixture struct {
	key    ed25519.PrivateKey
	payer  types.Pubkey
	ledger *chaintest.FakeLedger
	opt    Options
	path   string
}

func newFixture(t *testing.T) *fixture {
	key := testKey(9)
	f := &fixture{
		key:    key,
		payer:  pubkeyOf(t, key),
		ledger: chaintest.NewFakeLedger(),
		path:   writeKeyFile(t, key),
		opt: Options{
			ProgramAddress: testProgramStr,
			Commitment:     types.CommitmentConfirmed,
			ConfirmTimeout: time.Second,
			PollInterval:   time.Millisecond,
			CheckBalance:   true,
			Explorer: ExplorerOption{
				BaseURL:  "https://explorer.solana.com",
				Endpoint: "http://localhost:8899",
			},
		},
	}
	f.ledger.Validate = expectShape(f.payer, types.PubkeyFromBase58(testProgramStr), nil)
	f.ledger.Statuses = []*chain.SignatureStatus{
		chaintest.Status(10, types.CommitmentProcessed),
		chaintest.Status(11, types.CommitmentConfirmed),
	}
	return f
}

func (f *fixture) run() (*Result, error) {
	return NewWorkflow(f.ledger, credential.NewFileProvider(f.path), f.opt).Run(context.Background())
}

func requireSubmissionError(t *testing.T, err error, stage Stage) *SubmissionError {
	t.Helper()
	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr), "want *SubmissionError, got %v", err)
	assert.Equal(t, stage, subErr.Stage)
	return subErr
}

func TestWorkflow_Success(t *testing.T) {
	f := newFixture(t)

	res, err := f.run()
	require.NoError(t, err)

	require.Len(t, f.ledger.Sent, 1)
	assert.Equal(t, base58.Encode(f.ledger.Sent[0].Signatures[0]), res.Signature)
	assert.Equal(t, types.CommitmentConfirmed, res.Commitment)
	assert.Equal(t, uint64(11), res.Slot)
	assert.Equal(t, f.payer.String(), res.Payer)
	assert.Equal(t, testProgramStr, res.Program)
	assert.Equal(t, "https://explorer.solana.com/tx/"+res.Signature+"?cluster=custom&customUrl=http%3A%2F%2Flocalhost%3A8899", res.Explorer)
	assert.Equal(t, 1, f.ledger.SendCalls)
}

func TestWorkflow_WaitsForConfirmed(t *testing.T) {
	f := newFixture(t)
	f.ledger.Statuses = []*chain.SignatureStatus{
		nil,
		chaintest.Status(10, types.CommitmentProcessed),
		chaintest.Status(10, types.CommitmentProcessed),
		chaintest.Status(12, types.CommitmentConfirmed),
	}

	res, err := f.run()
	require.NoError(t, err)
	assert.Equal(t, types.CommitmentConfirmed, res.Commitment)
	assert.Equal(t, 4, f.ledger.StatusCalls)
}

func TestWorkflow_FakeRejectsOtherShape(t *testing.T) {
	f := newFixture(t)
	other := pubkeyOf(t, testKey(3))
	f.ledger.Validate = expectShape(f.payer, other, nil)

	_, err := f.run()
	requireSubmissionError(t, err, StageSend)
	assert.Empty(t, f.ledger.Sent)
}

func TestWorkflow_InsufficientFundsNoRetry(t *testing.T) {
	f := newFixture(t)
	f.ledger.Validate = func(sdktypes.Transaction) error {
		return errors.New("Transaction simulation failed: Attempt to debit an account but found no record of a prior credit (insufficient funds)")
	}

	_, err := f.run()
	subErr := requireSubmissionError(t, err, StageSend)
	assert.Contains(t, subErr.Error(), "insufficient funds")
	assert.Equal(t, 1, f.ledger.SendCalls)
	assert.Equal(t, 0, f.ledger.StatusCalls)
}

func TestWorkflow_ZeroBalancePreflight(t *testing.T) {
	f := newFixture(t)
	f.ledger.BalanceValue = 0

	_, err := f.run()
	requireSubmissionError(t, err, StageBalance)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 0, f.ledger.SendCalls)

	// 关闭余额检查后不再查询余额
	f.opt.CheckBalance = false
	f.ledger.BalanceCalls = 0
	_, err = f.run()
	require.NoError(t, err)
	assert.Equal(t, 0, f.ledger.BalanceCalls)
}

func TestWorkflow_BlockhashFailure(t *testing.T) {
	f := newFixture(t)
	f.ledger.BlockhashErr = errors.New("connection refused")

	_, err := f.run()
	requireSubmissionError(t, err, StageBlockhash)
	assert.Equal(t, 0, f.ledger.SendCalls)
}

func TestWorkflow_MalformedCredentialNoNetwork(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.path, []byte("[1,2,3]"), 0o600))

	_, err := f.run()
	var loadErr *credential.LoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)
	assert.Equal(t, 0, f.ledger.TotalCalls())
}

func TestWorkflow_InvalidAddressNoNetwork(t *testing.T) {
	f := newFixture(t)
	f.opt.ProgramAddress = "not-a-valid-address-0OIl"

	_, err := f.run()
	var addrErr *types.AddressFormatError
	require.True(t, errors.As(err, &addrErr), "got %v", err)
	assert.Equal(t, 0, f.ledger.TotalCalls())
}

func TestWorkflow_TransactionFailed(t *testing.T) {
	f := newFixture(t)
	f.ledger.Statuses = []*chain.SignatureStatus{
		{Slot: 10, Commitment: types.CommitmentProcessed, Err: map[string]any{"InstructionError": []any{0, map[string]any{"Custom": 1}}}},
	}

	_, err := f.run()
	subErr := requireSubmissionError(t, err, StageConfirm)
	assert.NotEmpty(t, subErr.Signature)
	var txErr *chain.TransactionError
	assert.True(t, errors.As(err, &txErr))
}

func TestWorkflow_ConfirmTimeout(t *testing.T) {
	f := newFixture(t)
	f.opt.ConfirmTimeout = 20 * time.Millisecond
	f.ledger.Statuses = []*chain.SignatureStatus{chaintest.Status(10, types.CommitmentProcessed)}

	_, err := f.run()
	requireSubmissionError(t, err, StageConfirm)
	assert.ErrorIs(t, err, chain.ErrConfirmTimeout)
	assert.Equal(t, 1, f.ledger.SendCalls)
}

func TestWorkflow_MessagePayload(t *testing.T) {
	f := newFixture(t)
	f.opt.Message = "Hello"
	want, err := EncodePayload("Hello")
	require.NoError(t, err)
	f.ledger.Validate = expectShape(f.payer, types.PubkeyFromBase58(testProgramStr), want)

	_, err = f.run()
	require.NoError(t, err)
}

func TestWorkflow_ProgramFromKeypairFile(t *testing.T) {
	f := newFixture(t)
	programKey := testKey(5)
	f.opt.ProgramAddress = ""
	f.opt.ProgramKeypairPath = writeKeyFile(t, programKey)
	f.ledger.Validate = expectShape(f.payer, pubkeyOf(t, programKey), nil)

	res, err := f.run()
	require.NoError(t, err)
	assert.Equal(t, pubkeyOf(t, programKey).String(), res.Program)
}

func TestWorkflow_CancelledDuringConfirm(t *testing.T) {
	f := newFixture(t)
	f.opt.ConfirmTimeout = time.Minute
	f.ledger.Statuses = []*chain.SignatureStatus{chaintest.Status(10, types.CommitmentProcessed)}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := NewWorkflow(f.ledger, credential.NewFileProvider(f.path), f.opt).Run(ctx)
	requireSubmissionError(t, err, StageConfirm)
}
