package credential

import "fmt"

// LoadError 表示签名密钥加载失败（文件缺失、格式错误、密钥不一致等）
type LoadError struct {
	Source string // 密钥来源描述，例如 file:/home/u/.config/solana/id.json
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load credential from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, err error) error {
	return &LoadError{Source: source, Err: err}
}
