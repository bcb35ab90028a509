package types

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
)

const PubkeySize = 32

type Pubkey [PubkeySize]byte

// AddressFormatError 表示地址字符串无法解析为 32 字节公钥
type AddressFormatError struct {
	Input  string
	Reason string
	Err    error
}

func (e *AddressFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid address %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid address %q: %s", e.Input, e.Reason)
}

func (e *AddressFormatError) Unwrap() error {
	return e.Err
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

func (p Pubkey) Equals(other Pubkey) bool {
	return p == other
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// ToCommon 转换为 solana-go-sdk 的公钥类型
func (p Pubkey) ToCommon() common.PublicKey {
	return common.PublicKeyFromBytes(p[:])
}

func PubkeyFromCommon(pk common.PublicKey) Pubkey {
	return Pubkey(pk)
}

// PubkeyFromBytes 要求输入恰好 32 字节
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeySize {
		return Pubkey{}, &AddressFormatError{
			Input:  base58.Encode(b),
			Reason: fmt.Sprintf("invalid pubkey length: got %d, want %d", len(b), PubkeySize),
		}
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 *AddressFormatError（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	if s == "" {
		return Pubkey{}, &AddressFormatError{Input: s, Reason: "empty address"}
	}
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, &AddressFormatError{Input: s, Reason: "failed to decode base58", Err: err}
	}
	if len(data) != PubkeySize {
		return Pubkey{}, &AddressFormatError{
			Input:  s,
			Reason: fmt.Sprintf("invalid pubkey length: got %d, want %d", len(data), PubkeySize),
		}
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// PubkeyFromBase58 仅用于编译期常量，解析失败直接 panic
func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}
