package submit

import (
	"crypto/ed25519"
	"os"

	"tx-submitter-sol/internal/credential"
	"tx-submitter-sol/internal/types"
)

// ResolveTarget 解析目标程序地址；keypairPath 非空时取程序 keypair 文件的公钥部分
func ResolveTarget(address, keypairPath string) (types.Pubkey, error) {
	if keypairPath == "" {
		return types.TryPubkeyFromBase58(address)
	}

	path, err := credential.ExpandHome(keypairPath)
	if err != nil {
		return types.Pubkey{}, &types.AddressFormatError{Input: keypairPath, Reason: "resolve program keypair path", Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Pubkey{}, &types.AddressFormatError{Input: keypairPath, Reason: "read program keypair", Err: err}
	}
	secret, err := credential.DecodeKeypairJSON(data)
	if err != nil {
		return types.Pubkey{}, &types.AddressFormatError{Input: keypairPath, Reason: "decode program keypair", Err: err}
	}
	// keypair 为 [seed(32) | pubkey(32)]，程序 ID 即后 32 字节
	return types.PubkeyFromBytes(secret[ed25519.SeedSize:])
}
