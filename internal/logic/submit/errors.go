package submit

import (
	"errors"
	"fmt"
)

// Stage 标识提交流程中出错的阶段
type Stage string

const (
	StageBalance   Stage = "balance"
	StageBlockhash Stage = "blockhash"
	StageSign      Stage = "sign"
	StageSend      Stage = "send"
	StageConfirm   Stage = "confirm"
)

var ErrInsufficientFunds = errors.New("insufficient funds: payer balance is 0 lamports")

// SubmissionError 表示交易发送或确认失败，Err 为底层网络/节点返回的原因
type SubmissionError struct {
	Stage     Stage
	Signature string // 已发送时非空
	Err       error
}

func (e *SubmissionError) Error() string {
	if e.Signature != "" {
		return fmt.Sprintf("submit transaction (%s, signature=%s): %v", e.Stage, e.Signature, e.Err)
	}
	return fmt.Sprintf("submit transaction (%s): %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
