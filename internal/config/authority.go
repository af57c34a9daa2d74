package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type AuthorityConfig struct {
	// ProgramID is the base58 address the distributor authorities are derived under
	ProgramID string `mapstructure:"program-id"`
}

func (cfg *AuthorityConfig) Validate() error {
	if cfg.ProgramID == "" {
		return fmt.Errorf("program id is required")
	}

	if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return fmt.Errorf("invalid program id: %w", err)
	}

	return nil
}
