package chaintest

import (
	"crypto/ed25519"
	"fmt"

	"tx-submitter-sol/internal/types"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

type DecodedAccount struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

type DecodedInstruction struct {
	Program  types.Pubkey
	Accounts []DecodedAccount
	Data     []byte
}

// DecodeInstructions 按 message header 还原每条指令的账户权限
func DecodeInstructions(tx sdktypes.Transaction) ([]DecodedInstruction, error) {
	msg := tx.Message
	keys := msg.Accounts
	numSigners := int(msg.Header.NumRequireSignatures)
	writableSigners := numSigners - int(msg.Header.NumReadonlySignedAccounts)
	writableNonSigners := len(keys) - int(msg.Header.NumReadonlyUnsignedAccounts)

	result := make([]DecodedInstruction, 0, len(msg.Instructions))
	for _, ci := range msg.Instructions {
		if ci.ProgramIDIndex < 0 || ci.ProgramIDIndex >= len(keys) {
			return nil, fmt.Errorf("program index %d out of range", ci.ProgramIDIndex)
		}
		ix := DecodedInstruction{
			Program: types.PubkeyFromCommon(keys[ci.ProgramIDIndex]),
			Data:    ci.Data,
		}
		for _, idx := range ci.Accounts {
			if idx < 0 || idx >= len(keys) {
				return nil, fmt.Errorf("account index %d out of range", idx)
			}
			signer := idx < numSigners
			writable := (signer && idx < writableSigners) || (!signer && idx < writableNonSigners)
			ix.Accounts = append(ix.Accounts, DecodedAccount{
				Pubkey:     types.PubkeyFromCommon(keys[idx]),
				IsSigner:   signer,
				IsWritable: writable,
			})
		}
		result = append(result, ix)
	}
	return result, nil
}

// VerifySignatures 校验每个签名者对 message 的 ed25519 签名
func VerifySignatures(tx sdktypes.Transaction) error {
	raw, err := tx.Message.Serialize()
	if err != nil {
		return fmt.Errorf("serialize message: %w", err)
	}
	numSigners := int(tx.Message.Header.NumRequireSignatures)
	if len(tx.Signatures) != numSigners {
		return fmt.Errorf("want %d signatures, got %d", numSigners, len(tx.Signatures))
	}
	for i := 0; i < numSigners; i++ {
		pub := ed25519.PublicKey(tx.Message.Accounts[i].Bytes())
		if !ed25519.Verify(pub, raw, tx.Signatures[i]) {
			return fmt.Errorf("invalid signature for %s", tx.Message.Accounts[i].ToBase58())
		}
	}
	return nil
}
