package credential

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mr-tron/base58"
)

// EnvProvider 从环境变量读取密钥，支持 JSON 数组或 base58 编码的 64 字节密钥
type EnvProvider struct {
	Var    string
	lookup func(string) (string, bool)
}

func NewEnvProvider(name string) *EnvProvider {
	return &EnvProvider{Var: name, lookup: os.LookupEnv}
}

func (p *EnvProvider) Name() string {
	return SourceEnv + ":" + p.Var
}

func (p *EnvProvider) Load(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(p.Name(), err)
	}
	raw, ok := p.lookup(p.Var)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, loadErr(p.Name(), fmt.Errorf("environment variable %s is not set", p.Var))
	}

	var secret []byte
	var err error
	if strings.HasPrefix(raw, "[") {
		secret, err = DecodeKeypairJSON([]byte(raw))
	} else {
		secret, err = base58.Decode(raw)
		if err != nil {
			err = fmt.Errorf("decode base58 secret: %w", err)
		}
	}
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}

	account, err := AccountFromSecret(secret)
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}
	return &Credential{source: p.Name(), account: account}, nil
}
