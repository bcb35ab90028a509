package submit

import (
	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

type AccountMeta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction 是对目标程序的一次调用，构造后不再修改
type Instruction struct {
	Program  types.Pubkey
	Accounts []AccountMeta
	Data     []byte
}

// BuildInstruction 构造只包含付款人（signer + writable）的单账户指令
func BuildInstruction(signer, program types.Pubkey, payload []byte) Instruction {
	data := make([]byte, len(payload))
	copy(data, payload)
	return Instruction{
		Program: program,
		Accounts: []AccountMeta{
			{Pubkey: signer, IsSigner: true, IsWritable: true},
		},
		Data: data,
	}
}

func (ix Instruction) ToSdk() sdktypes.Instruction {
	metas := make([]sdktypes.AccountMeta, 0, len(ix.Accounts))
	for _, a := range ix.Accounts {
		metas = append(metas, sdktypes.AccountMeta{
			PubKey:     a.Pubkey.ToCommon(),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		})
	}
	return sdktypes.Instruction{
		ProgramID: ix.Program.ToCommon(),
		Accounts:  metas,
		Data:      ix.Data,
	}
}
