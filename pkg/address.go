package pkg

import (
	"github.com/gagliardetto/solana-go"
)

// ValidateAccountAddress checks that address is a base58 encoded 32 byte account key.
func ValidateAccountAddress(address string) error {
	_, err := solana.PublicKeyFromBase58(address)
	return err
}
