package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tx-submitter-sol/internal/types"
	"tx-submitter-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/client"
	sdktypes "github.com/blocto/solana-go-sdk/types"
)

type RpcLedgerOption struct {
	Endpoint      string
	Commitment    types.Commitment // 预检与余额查询使用的确认级别
	Timeout       time.Duration    // 单次 RPC 调用超时
	SkipPreflight bool
}

// RpcLedger 基于 solana-go-sdk 的 JSON-RPC 客户端实现 Ledger
type RpcLedger struct {
	client        *client.Client
	endpoint      string
	commitment    types.Commitment
	timeout       time.Duration
	skipPreflight bool
}

func NewRpcLedger(opt RpcLedgerOption) (*RpcLedger, error) {
	if opt.Endpoint == "" {
		return nil, errors.New("rpc endpoint is empty")
	}
	if opt.Timeout <= 0 {
		return nil, fmt.Errorf("invalid rpc timeout: %v", opt.Timeout)
	}
	c := client.NewClient(opt.Endpoint)
	if c == nil {
		return nil, errors.New("rpc client init failed")
	}
	return &RpcLedger{
		client:        c,
		endpoint:      opt.Endpoint,
		commitment:    opt.Commitment,
		timeout:       opt.Timeout,
		skipPreflight: opt.SkipPreflight,
	}, nil
}

func (l *RpcLedger) Endpoint() string {
	return l.endpoint
}

func (l *RpcLedger) LatestBlockhash(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	resp, err := l.client.GetLatestBlockhashWithConfig(ctx, client.GetLatestBlockhashConfig{
		Commitment: l.commitment.ToRpc(),
	})
	if err != nil {
		return "", fmt.Errorf("GetLatestBlockhash failed: %w", err)
	}
	// 防御节点返回异常数据，提前在本地暴露
	if _, err := types.HashFromBase58(resp.Blockhash); err != nil {
		return "", fmt.Errorf("GetLatestBlockhash returned invalid blockhash: %w", err)
	}
	logger.Debugf("[RpcLedger] GetLatestBlockhash 成功, blockhash=%s, 耗时: %v", resp.Blockhash, time.Since(start))
	return resp.Blockhash, nil
}

func (l *RpcLedger) SendTransaction(ctx context.Context, tx sdktypes.Transaction) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	sig, err := l.client.SendTransactionWithConfig(ctx, tx, client.SendTransactionConfig{
		SkipPreflight:       l.skipPreflight,
		PreflightCommitment: l.commitment.ToRpc(),
	})
	if err != nil {
		return "", fmt.Errorf("SendTransaction failed: %w", err)
	}
	logger.Debugf("[RpcLedger] SendTransaction 成功, signature=%s, 耗时: %v", sig, time.Since(start))
	return sig, nil
}

func (l *RpcLedger) SignatureStatus(ctx context.Context, signature string) (*SignatureStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	status, err := l.client.GetSignatureStatus(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("GetSignatureStatus failed: %w", err)
	}
	if status == nil {
		return nil, nil
	}

	result := &SignatureStatus{
		Slot: status.Slot,
		Err:  status.Err,
	}
	if status.ConfirmationStatus != nil {
		result.Commitment = types.Commitment(*status.ConfirmationStatus)
	}
	return result, nil
}

func (l *RpcLedger) Balance(ctx context.Context, account types.Pubkey) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	balance, err := l.client.GetBalanceWithConfig(ctx, account.String(), client.GetBalanceConfig{
		Commitment: l.commitment.ToRpc(),
	})
	if err != nil {
		return 0, fmt.Errorf("GetBalance failed: %w", err)
	}
	return balance, nil
}
