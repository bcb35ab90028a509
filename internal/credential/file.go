package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tx-submitter-sol/internal/consts"
)

// FileProvider 从 solana-keygen 生成的 JSON 文件加载密钥
type FileProvider struct {
	Path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Name() string {
	return SourceFile + ":" + p.Path
}

func (p *FileProvider) Load(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(p.Name(), err)
	}
	path, err := ExpandHome(p.Path)
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadErr(p.Name(), fmt.Errorf("read keypair file: %w", err))
	}
	secret, err := DecodeKeypairJSON(data)
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}
	account, err := AccountFromSecret(secret)
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}
	return &Credential{source: p.Name(), account: account}, nil
}

// ExpandHome 把 "~" 开头的路径展开为用户 home 目录；空路径使用 Solana CLI 默认钱包
func ExpandHome(path string) (string, error) {
	if path == "" {
		path = "~/" + consts.DefaultKeypairRelPath
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
