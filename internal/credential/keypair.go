package credential

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/xeipuuv/gojsonschema"
)

// SecretKeySize 是 Solana CLI keypair 的长度：32 字节 seed + 32 字节公钥
const SecretKeySize = ed25519.PrivateKeySize

const keypairSchemaJSON = `{
  "type": "array",
  "minItems": 64,
  "maxItems": 64,
  "items": {"type": "integer", "minimum": 0, "maximum": 255}
}`

var keypairSchema *gojsonschema.Schema

func init() {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(keypairSchemaJSON))
	if err != nil {
		panic(fmt.Errorf("compile keypair schema: %w", err))
	}
	keypairSchema = s
}

// DecodeKeypairJSON 解析 keypair JSON 数组（solana-keygen 格式）并返回 64 字节密钥
func DecodeKeypairJSON(data []byte) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("keypair data is empty")
	}
	result, err := keypairSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("keypair is not valid json: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("keypair does not match schema: %s", strings.Join(msgs, "; "))
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("decode keypair json: %w", err)
	}
	secret := make([]byte, len(ints))
	for i, v := range ints {
		secret[i] = byte(v)
	}
	return secret, nil
}

// EncodeKeypairJSON 将 64 字节密钥编码为 solana-keygen 的 JSON 数组
func EncodeKeypairJSON(secret []byte) ([]byte, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("invalid secret key length: got %d, want %d", len(secret), SecretKeySize)
	}
	ints := make([]int, len(secret))
	for i, b := range secret {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// AccountFromSecret 由 64 字节密钥重建签名账户，并校验后 32 字节公钥与 seed 推导结果一致
func AccountFromSecret(secret []byte) (sdktypes.Account, error) {
	if len(secret) != SecretKeySize {
		return sdktypes.Account{}, fmt.Errorf("invalid secret key length: got %d, want %d", len(secret), SecretKeySize)
	}
	derived := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], secret[ed25519.SeedSize:]) {
		return sdktypes.Account{}, errors.New("public key does not match secret seed")
	}
	account, err := sdktypes.AccountFromBytes(secret)
	if err != nil {
		return sdktypes.Account{}, fmt.Errorf("rebuild keypair: %w", err)
	}
	return account, nil
}

// accountFromSeed 由 32 字节 ed25519 seed 生成账户
func accountFromSeed(seed []byte) (sdktypes.Account, error) {
	if len(seed) != ed25519.SeedSize {
		return sdktypes.Account{}, fmt.Errorf("invalid seed length: got %d, want %d", len(seed), ed25519.SeedSize)
	}
	return AccountFromSecret(ed25519.NewKeyFromSeed(seed))
}

// Encode 导出凭证的 keypair JSON，可被 FileProvider 重新加载
func Encode(c *Credential) ([]byte, error) {
	return EncodeKeypairJSON(c.account.PrivateKey)
}
