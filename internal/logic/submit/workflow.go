package submit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tx-submitter-sol/internal/chain"
	"tx-submitter-sol/internal/consts"
	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/types"
	"tx-submitter-sol/pkg/logger"
)

type Options struct {
	ProgramAddress     string
	ProgramKeypairPath string
	Message            string // 非空时以 borsh string 作为指令数据

	Commitment     types.Commitment
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	CheckBalance   bool

	Explorer ExplorerOption
}

// Workflow 执行一次线性的提交流程：加载密钥 -> 解析地址 -> 构造指令 -> 发送并等待确认
// 每次 Run 都重新加载凭证并构造新的指令与 envelope，Ledger 可在多个 Workflow 间共享
type Workflow struct {
	ledger   chain.Ledger
	provider credential.Provider
	opt      Options
}

func NewWorkflow(ledger chain.Ledger, provider credential.Provider, opt Options) *Workflow {
	if opt.Commitment == "" {
		opt.Commitment = types.CommitmentConfirmed
	}
	if opt.ConfirmTimeout <= 0 {
		opt.ConfirmTimeout = consts.DefaultConfirmTimeout
	}
	if opt.PollInterval <= 0 {
		opt.PollInterval = consts.DefaultPollInterval
	}
	return &Workflow{
		ledger:   ledger,
		provider: provider,
		opt:      opt,
	}
}

func (w *Workflow) Run(ctx context.Context) (*Result, error) {
	// 1. 加载签名密钥，失败时不发生任何网络调用
	cred, err := w.provider.Load(ctx)
	if err != nil {
		return nil, err
	}
	payer := cred.PublicKey()
	logger.Infof("[Submit] 当前钱包地址: %s (%s)", payer, w.provider.Name())

	// 2. 解析目标程序地址
	program, err := ResolveTarget(w.opt.ProgramAddress, w.opt.ProgramKeypairPath)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Submit] 目标程序 ID: %s", program)

	// 3. 构造指令与 envelope
	payload, err := EncodePayload(w.opt.Message)
	if err != nil {
		return nil, err
	}
	ix := BuildInstruction(payer, program, payload)
	envelope := NewEnvelope(ix, cred.Account())

	// 4. 发送并等待确认
	status, sig, err := w.submit(ctx, payer, envelope)
	if err != nil {
		return nil, err
	}

	return &Result{
		Signature:  sig,
		Slot:       status.Slot,
		Commitment: status.Commitment,
		Payer:      payer.String(),
		Program:    program.String(),
		Endpoint:   w.opt.Explorer.Endpoint,
		Explorer:   w.opt.Explorer.TxURL(sig),
	}, nil
}

func (w *Workflow) submit(ctx context.Context, payer types.Pubkey, envelope *Envelope) (*chain.SignatureStatus, string, error) {
	if w.opt.CheckBalance {
		balance, err := w.ledger.Balance(ctx, payer)
		if err != nil {
			return nil, "", &SubmissionError{Stage: StageBalance, Err: err}
		}
		logger.Infof("[Submit] 当前余额: %d lamports (%s SOL)", balance, FormatSOL(balance))
		if balance == 0 {
			return nil, "", &SubmissionError{Stage: StageBalance, Err: ErrInsufficientFunds}
		}
	}

	blockhash, err := w.ledger.LatestBlockhash(ctx)
	if err != nil {
		return nil, "", &SubmissionError{Stage: StageBlockhash, Err: err}
	}

	tx, err := envelope.Seal(blockhash)
	if err != nil {
		return nil, "", &SubmissionError{Stage: StageSign, Err: err}
	}

	logger.Infof("[Submit] 正在发送交易...")
	sig, err := w.ledger.SendTransaction(ctx, tx)
	if err != nil {
		return nil, "", &SubmissionError{Stage: StageSend, Err: err}
	}
	logger.Infof("[Submit] 交易已发送, signature=%s, 等待 %s 确认", sig, w.opt.Commitment)

	status, err := chain.WaitForCommitment(ctx, w.ledger, sig, chain.WaitOption{
		Target:       w.opt.Commitment,
		PollInterval: w.opt.PollInterval,
		Timeout:      w.opt.ConfirmTimeout,
	})
	if err != nil {
		var txErr *chain.TransactionError
		if errors.As(err, &txErr) {
			err = fmt.Errorf("rejected by cluster: %w", err)
		}
		return nil, sig, &SubmissionError{Stage: StageConfirm, Signature: sig, Err: err}
	}
	return status, sig, nil
}
