package submit

import (
	"errors"
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

// Envelope 绑定待原子提交的指令与签名者，第一个签名者同时作为手续费付款人
type Envelope struct {
	instructions []Instruction
	signers      []sdktypes.Account
}

func NewEnvelope(ix Instruction, signers ...sdktypes.Account) *Envelope {
	return &Envelope{
		instructions: []Instruction{ix},
		signers:      signers,
	}
}

func (e *Envelope) Instructions() []Instruction {
	return e.instructions
}

// Seal 填入 recent blockhash 与付款人并完成签名
func (e *Envelope) Seal(recentBlockhash string) (sdktypes.Transaction, error) {
	if len(e.signers) == 0 {
		return sdktypes.Transaction{}, errors.New("envelope has no signer")
	}
	if recentBlockhash == "" {
		return sdktypes.Transaction{}, errors.New("recent blockhash is empty")
	}

	ixs := make([]sdktypes.Instruction, 0, len(e.instructions))
	for _, ix := range e.instructions {
		ixs = append(ixs, ix.ToSdk())
	}

	tx, err := sdktypes.NewTransaction(sdktypes.NewTransactionParam{
		Message: sdktypes.NewMessage(sdktypes.NewMessageParam{
			FeePayer:        e.signers[0].PublicKey,
			RecentBlockhash: recentBlockhash,
			Instructions:    ixs,
		}),
		Signers: e.signers,
	})
	if err != nil {
		return sdktypes.Transaction{}, fmt.Errorf("sign transaction: %w", err)
	}
	return tx, nil
}
