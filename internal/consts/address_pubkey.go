package consts

import (
	"tx-submitter-sol/internal/types"
)

// 公钥形式的地址常量（types.Pubkey），用于比对
var (
	DefaultProgramID types.Pubkey
	SystemProgram    types.Pubkey
)

// init 自动将 base58 字符串地址转换为 types.Pubkey
func init() {
	DefaultProgramID = types.PubkeyFromBase58(DefaultProgramIDStr)
	SystemProgram = types.PubkeyFromBase58(SystemProgramStr)
}
