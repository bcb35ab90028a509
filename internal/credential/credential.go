package credential

import (
	"context"
	"fmt"

	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// Provider 抽象签名密钥的来源（文件、环境变量、助记词……）
type Provider interface {
	Name() string
	Load(ctx context.Context) (*Credential, error)
}

// Credential 是进程内只读的签名身份
type Credential struct {
	source  string
	account sdktypes.Account
}

func (c *Credential) Source() string {
	return c.source
}

func (c *Credential) PublicKey() types.Pubkey {
	return types.PubkeyFromCommon(c.account.PublicKey)
}

// Account 返回 solana-go-sdk 的签名账户，用于交易签名
func (c *Credential) Account() sdktypes.Account {
	return c.account
}

func (c *Credential) String() string {
	return fmt.Sprintf("%s(%s)", c.source, c.PublicKey())
}

type ProviderOption struct {
	Source        string // file / env / mnemonic
	Path          string
	EnvVar        string
	MnemonicVar   string
	PassphraseVar string
}

// NewProvider 按配置选择密钥来源
func NewProvider(opt ProviderOption) (Provider, error) {
	switch opt.Source {
	case "", SourceFile:
		return NewFileProvider(opt.Path), nil
	case SourceEnv:
		return NewEnvProvider(opt.EnvVar), nil
	case SourceMnemonic:
		return NewMnemonicProvider(opt.MnemonicVar, opt.PassphraseVar), nil
	default:
		return nil, fmt.Errorf("unknown credential source %q", opt.Source)
	}
}

const (
	SourceFile     = "file"
	SourceEnv      = "env"
	SourceMnemonic = "mnemonic"
)
