package config

import (
	"errors"
	"time"
)

const (
	defaultClaimPollingInterval = 10 * time.Minute
	defaultMaxConcurrentClaims  = 4
)

type PollerConfig struct {
	// Enabled turns on periodic claims for every entry with a payout destination
	Enabled             bool          `mapstructure:"enabled"`
	ClaimInterval       time.Duration `mapstructure:"claim-interval"`
	MaxConcurrentClaims int           `mapstructure:"max-concurrent-claims"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.ClaimInterval <= 0 {
		cfg.ClaimInterval = defaultClaimPollingInterval
	}

	if cfg.MaxConcurrentClaims < 0 {
		return errors.New("max-concurrent-claims must not be negative")
	}

	if cfg.MaxConcurrentClaims == 0 {
		cfg.MaxConcurrentClaims = defaultMaxConcurrentClaims
	}

	return nil
}
