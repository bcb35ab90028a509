package consts

import "time"

// 默认值与原始脚本保持一致：本地验证器 + confirmed
const (
	DefaultEndpoint   = "http://localhost:8899"
	DefaultCommitment = "confirmed"

	// Solana CLI 默认钱包路径（相对 home 目录）
	DefaultKeypairRelPath = ".config/solana/id.json"

	DefaultExplorerURL = "https://explorer.solana.com"

	LamportsPerSOL = 1_000_000_000
)

const (
	DefaultRpcTimeout     = 10 * time.Second
	DefaultConfirmTimeout = 60 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
)
