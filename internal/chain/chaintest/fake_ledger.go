// Package chaintest 提供测试用的内存 Ledger 实现
package chaintest

import (
	"context"
	"errors"
	"sync"

	"tx-submitter-sol/internal/chain"
	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

// TestBlockhash 是 FakeLedger 返回的固定 blockhash（32 字节全 0x07）
var TestBlockhash = base58.Encode([]byte{
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
})

// FakeLedger 记录所有调用，按脚本依次返回签名状态
type FakeLedger struct {
	mu sync.Mutex

	Blockhash    string
	BlockhashErr error
	BalanceValue uint64
	BalanceErr   error

	// Validate 返回非 nil 时拒绝交易，用于模拟节点端校验
	Validate func(tx sdktypes.Transaction) error

	// Statuses 依次返回，用完后重复最后一个
	Statuses  []*chain.SignatureStatus
	StatusErr error

	Sent           []sdktypes.Transaction
	BalanceCalls   int
	BlockhashCalls int
	SendCalls      int
	StatusCalls    int
}

func NewFakeLedger() *FakeLedger {
	return &FakeLedger{
		Blockhash:    TestBlockhash,
		BalanceValue: 1_000_000_000,
	}
}

func (f *FakeLedger) LatestBlockhash(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BlockhashCalls++
	return f.Blockhash, f.BlockhashErr
}

func (f *FakeLedger) SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SendCalls++
	if len(tx.Signatures) == 0 {
		return "", errors.New("transaction is not signed")
	}
	if f.Validate != nil {
		if err := f.Validate(tx); err != nil {
			return "", err
		}
	}
	f.Sent = append(f.Sent, tx)
	return base58.Encode(tx.Signatures[0]), nil
}

func (f *FakeLedger) SignatureStatus(ctx context.Context, signature string) (*chain.SignatureStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatusCalls++
	if f.StatusErr != nil {
		return nil, f.StatusErr
	}
	if len(f.Statuses) == 0 {
		return nil, nil
	}
	idx := f.StatusCalls - 1
	if idx >= len(f.Statuses) {
		idx = len(f.Statuses) - 1
	}
	return f.Statuses[idx], nil
}

func (f *FakeLedger) Balance(ctx context.Context, account types.Pubkey) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceCalls++
	return f.BalanceValue, f.BalanceErr
}

// TotalCalls 返回所有网络调用次数之和
func (f *FakeLedger) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.BalanceCalls + f.BlockhashCalls + f.SendCalls + f.StatusCalls
}

// Status 构造一个已达到指定确认级别的状态
func Status(slot uint64, c types.Commitment) *chain.SignatureStatus {
	return &chain.SignatureStatus{Slot: slot, Commitment: c}
}
