package consts

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	// 目标程序（hello_solana 部署地址）
	DefaultProgramIDStr = "CuRF5bMpCoatpfGTKy7H99JoAseKEUCrENzFv9yHTnG4"

	SystemProgramStr = "11111111111111111111111111111111"
)

// 公共集群 RPC 地址，用于推断 explorer 的 cluster 参数
const (
	MainnetEndpoint = "https://api.mainnet-beta.solana.com"
	DevnetEndpoint  = "https://api.devnet.solana.com"
	TestnetEndpoint = "https://api.testnet.solana.com"
)
