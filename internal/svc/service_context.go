package svc

import (
	"fmt"

	"tx-submitter-sol/internal/chain"
	"tx-submitter-sol/internal/config"
	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/logic/submit"
	"tx-submitter-sol/pkg/logger"
)

// ServiceContext 包含一次提交所需的资源
type ServiceContext struct {
	Config   config.SubmitConfig
	Ledger   chain.Ledger
	Provider credential.Provider
}

// NewServiceContext 根据配置创建网络句柄与密钥来源
func NewServiceContext(c config.SubmitConfig) (*ServiceContext, error) {
	// 1. 网络句柄（可被多个提交流程共享）
	ledger, err := chain.NewRpcLedger(c.Rpc.ToLedgerOption())
	if err != nil {
		return nil, fmt.Errorf("init rpc ledger: %w", err)
	}

	// 2. 签名密钥来源
	provider, err := credential.NewProvider(c.Credential.ToProviderOption())
	if err != nil {
		return nil, fmt.Errorf("init credential provider: %w", err)
	}

	logger.Infof("[svc] endpoint=%s commitment=%s credential=%s", c.Rpc.Endpoint, c.Rpc.Commitment, provider.Name())
	return &ServiceContext{
		Config:   c,
		Ledger:   ledger,
		Provider: provider,
	}, nil
}

// NewWorkflow 每次调用都返回独立的提交流程，凭证与指令不跨流程共享
func (sc *ServiceContext) NewWorkflow() *submit.Workflow {
	c := sc.Config
	return submit.NewWorkflow(sc.Ledger, sc.Provider, submit.Options{
		ProgramAddress:     c.Program.Address,
		ProgramKeypairPath: c.Program.KeypairPath,
		Message:            c.Program.Message,
		Commitment:         c.Commitment(),
		ConfirmTimeout:     c.Confirm.Timeout(),
		PollInterval:       c.Confirm.PollInterval(),
		CheckBalance:       c.Rpc.CheckBalance,
		Explorer: submit.ExplorerOption{
			BaseURL:  c.Explorer.BaseUrl,
			Cluster:  c.Explorer.Cluster,
			Endpoint: c.Rpc.Endpoint,
		},
	})
}
