package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tx-submitter-sol/internal/chain"
	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/types"
	"tx-submitter-sol/pkg/logger"

	"github.com/zeromicro/go-zero/core/conf"
)

type LogConfig struct {
	Format   string `json:",default=console,options=console|json"`       // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:",optional"`                                    // 日志目录（为空只输出 stderr）
	Level    string `json:",default=info,options=debug|info|warn|error"` // 日志级别
	Compress bool   `json:",optional"`                                    // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig 表示 Solana JSON-RPC 连接配置
type RpcConfig struct {
	Endpoint      string `json:",default=http://localhost:8899"`                            // RPC 地址
	Commitment    string `json:",default=confirmed,options=processed|confirmed|finalized"` // 确认级别
	TimeoutSec    int    `json:",default=10"`                                               // 单次 RPC 调用超时（秒）
	SkipPreflight bool   `json:",optional"`                                                 // 是否跳过节点端模拟执行
	CheckBalance  bool   `json:",default=true"`                                             // 发送前检查付款账户余额
}

func (c *RpcConfig) ToLedgerOption() chain.RpcLedgerOption {
	return chain.RpcLedgerOption{
		Endpoint:      c.Endpoint,
		Commitment:    types.Commitment(c.Commitment),
		Timeout:       c.Timeout(),
		SkipPreflight: c.SkipPreflight,
	}
}

// CredentialConfig 表示签名密钥来源
type CredentialConfig struct {
	Source        string `json:",default=file,options=file|env|mnemonic"` // 密钥来源
	Path          string `json:",default=~/.config/solana/id.json"`      // file: keypair JSON 路径
	EnvVar        string `json:",default=SOLANA_KEYPAIR"`                // env: 保存密钥的环境变量
	MnemonicVar   string `json:",default=SOLANA_MNEMONIC"`              // mnemonic: 助记词环境变量
	PassphraseVar string `json:",optional"`                              // mnemonic: 可选 BIP-39 口令环境变量
}

func (c *CredentialConfig) ToProviderOption() credential.ProviderOption {
	return credential.ProviderOption{
		Source:        c.Source,
		Path:          c.Path,
		EnvVar:        c.EnvVar,
		MnemonicVar:   c.MnemonicVar,
		PassphraseVar: c.PassphraseVar,
	}
}

// ProgramConfig 表示目标程序及指令负载
type ProgramConfig struct {
	Address     string `json:",default=CuRF5bMpCoatpfGTKy7H99JoAseKEUCrENzFv9yHTnG4"` // 目标程序地址
	KeypairPath string `json:",optional"`                                            // 程序 keypair 文件，设置后覆盖 Address
	Message     string `json:",optional"`                                            // 非空时以 borsh string 编码为指令数据
}

// ConfirmConfig 表示等待确认的参数
type ConfirmConfig struct {
	TimeoutSec     int `json:",default=60"`  // 等待确认的最长时间（秒）
	PollIntervalMs int `json:",default=500"` // 查询签名状态的间隔（毫秒）
}

// ExplorerConfig 表示结果中浏览器链接的生成方式
type ExplorerConfig struct {
	BaseUrl string `json:",default=https://explorer.solana.com"`
	Cluster string `json:",optional"` // mainnet-beta / devnet / testnet / custom，为空时根据 Endpoint 推断
}

type ReportConfig struct {
	Format string `json:",default=text,options=text|json|yaml"`
}

// SubmitConfig 是主配置结构体，用于驱动一次交易提交
type SubmitConfig struct {
	Log        LogConfig
	Rpc        RpcConfig
	Credential CredentialConfig
	Program    ProgramConfig
	Confirm    ConfirmConfig
	Explorer   ExplorerConfig
	Report     ReportConfig
}

// Load 读取 yaml 配置；文件不存在时使用默认值
func Load(path string) (SubmitConfig, error) {
	var c SubmitConfig
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := conf.Load(path, &c, conf.UseEnv()); err != nil {
				return c, fmt.Errorf("load config %s: %w", path, err)
			}
			return c, c.Validate()
		} else if !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("stat config %s: %w", path, err)
		}
	}
	if err := conf.FillDefault(&c); err != nil {
		return c, fmt.Errorf("fill default config: %w", err)
	}
	return c, c.Validate()
}

// Validate 校验 go-zero tag 无法表达的约束
func (c *SubmitConfig) Validate() error {
	if c.Rpc.Endpoint == "" {
		return errors.New("Rpc.Endpoint is empty")
	}
	if _, err := types.ParseCommitment(c.Rpc.Commitment); err != nil {
		return err
	}
	if c.Rpc.TimeoutSec <= 0 {
		return fmt.Errorf("Rpc.TimeoutSec must be positive, got %d", c.Rpc.TimeoutSec)
	}
	if c.Confirm.TimeoutSec <= 0 {
		return fmt.Errorf("Confirm.TimeoutSec must be positive, got %d", c.Confirm.TimeoutSec)
	}
	switch c.Explorer.Cluster {
	case "", "mainnet-beta", "devnet", "testnet", "custom":
	default:
		return fmt.Errorf("unknown Explorer.Cluster %q", c.Explorer.Cluster)
	}
	if c.Confirm.PollIntervalMs <= 0 {
		return fmt.Errorf("Confirm.PollIntervalMs must be positive, got %d", c.Confirm.PollIntervalMs)
	}
	return nil
}

func (c *SubmitConfig) Commitment() types.Commitment {
	return types.Commitment(c.Rpc.Commitment)
}

func (c *RpcConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c *ConfirmConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c *ConfirmConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}
