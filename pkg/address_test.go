package pkg

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestValidateAccountAddress(t *testing.T) {
	assert.NoError(t, ValidateAccountAddress(solana.NewWallet().PublicKey().String()))
	assert.NoError(t, ValidateAccountAddress("Stake11111111111111111111111111111111111111"))
	assert.Error(t, ValidateAccountAddress(""))
	assert.Error(t, ValidateAccountAddress("not-base58-0OIl"))
	assert.Error(t, ValidateAccountAddress("abc"))
}
