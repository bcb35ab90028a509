package submit

import (
	"crypto/ed25519"

	"tx-submitter-sol/internal/credential"

	sdktypes "github.com/blocto/solana-go-sdk/types"
)

func credentialAccount(key ed25519.PrivateKey) (sdktypes.Account, error) {
	return credential.AccountFromSecret(key)
}
