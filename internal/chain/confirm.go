package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tx-submitter-sol/internal/types"
	"tx-submitter-sol/pkg/logger"
)

// ErrConfirmTimeout 表示在超时时间内签名未达到目标确认级别
var ErrConfirmTimeout = errors.New("confirmation timeout")

// TransactionError 表示交易已上链但执行失败
type TransactionError struct {
	Signature string
	Err       any
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

type WaitOption struct {
	Target       types.Commitment
	PollInterval time.Duration
	Timeout      time.Duration
}

// WaitForCommitment 轮询签名状态直到达到目标确认级别、交易失败、超时或 ctx 取消
func WaitForCommitment(ctx context.Context, ledger Ledger, signature string, opt WaitOption) (*SignatureStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, opt.Timeout)
	defer cancel()

	ticker := time.NewTicker(opt.PollInterval)
	defer ticker.Stop()

	var last types.Commitment
	for {
		status, err := ledger.SignatureStatus(ctx, signature)
		switch {
		case err != nil:
			// 单次查询失败不终止等待，由整体超时兜底
			logger.Warnf("[Confirm] 查询签名状态失败: signature=%s err=%v", signature, err)
		case status == nil:
			logger.Debugf("[Confirm] 签名尚未被节点观察到: %s", signature)
		case status.Err != nil:
			return status, &TransactionError{Signature: signature, Err: status.Err}
		default:
			if status.Commitment != last {
				logger.Infof("[Confirm] signature=%s slot=%d commitment=%s", signature, status.Slot, status.Commitment)
				last = status.Commitment
			}
			if status.Commitment.Reaches(opt.Target) {
				return status, nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s not %s after %v (last=%q)", ErrConfirmTimeout, signature, opt.Target, opt.Timeout, last)
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
