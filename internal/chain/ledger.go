package chain

import (
	"context"

	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// SignatureStatus 是 getSignatureStatuses 返回结果的精简形式
type SignatureStatus struct {
	Slot       uint64
	Commitment types.Commitment // 当前已达到的确认级别
	Err        any              // 非 nil 表示交易执行失败
}

// Ledger 是提交流程依赖的网络句柄，实现需可被多个提交流程并发只读共享
type Ledger interface {
	LatestBlockhash(ctx context.Context) (string, error)
	SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error)
	// SignatureStatus 节点尚未见到该签名时返回 nil, nil
	SignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error)
	Balance(ctx context.Context, account types.Pubkey) (uint64, error)
}
