package credential

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicProvider 由 BIP-39 助记词恢复密钥
// 与 `solana-keygen recover` 不带派生路径时一致：取 seed 前 32 字节作为 ed25519 seed
type MnemonicProvider struct {
	MnemonicVar   string
	PassphraseVar string
	lookup        func(string) (string, bool)
}

func NewMnemonicProvider(mnemonicVar, passphraseVar string) *MnemonicProvider {
	return &MnemonicProvider{
		MnemonicVar:   mnemonicVar,
		PassphraseVar: passphraseVar,
		lookup:        os.LookupEnv,
	}
}

func (p *MnemonicProvider) Name() string {
	return SourceMnemonic + ":" + p.MnemonicVar
}

func (p *MnemonicProvider) Load(ctx context.Context) (*Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadErr(p.Name(), err)
	}
	mnemonic, ok := p.lookup(p.MnemonicVar)
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !ok || mnemonic == "" {
		return nil, loadErr(p.Name(), fmt.Errorf("environment variable %s is not set", p.MnemonicVar))
	}
	var passphrase string
	if p.PassphraseVar != "" {
		passphrase, _ = p.lookup(p.PassphraseVar)
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, loadErr(p.Name(), fmt.Errorf("invalid mnemonic: %w", err))
	}
	account, err := accountFromSeed(seed[:ed25519.SeedSize])
	if err != nil {
		return nil, loadErr(p.Name(), err)
	}
	return &Credential{source: p.Name(), account: account}, nil
}
