package submit

import (
	"math/big"

	"tx-submitter-sol/internal/consts"

	"github.com/shopspring/decimal"
)

var lamportsPerSOL = decimal.NewFromInt(consts.LamportsPerSOL)

// FormatSOL 将 lamports 精确换算为 SOL 字符串
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), 0).Div(lamportsPerSOL).String()
}
