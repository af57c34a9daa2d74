package config

import (
	"fmt"
	"time"
)

const (
	defaultClientTimeout       = 10 * time.Second
	defaultClientMaxRetryTimes = 3
	defaultClientRetryInterval = 500 * time.Millisecond
)

const (
	CustodyModeHTTP   = "http"
	CustodyModeMemory = "memory"
)

type StakeLedgerConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *StakeLedgerConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("stake ledger url is required")
	}

	setClientDefaults(&cfg.Timeout, &cfg.MaxRetryTimes, &cfg.RetryInterval)
	return nil
}

// CustodyConfig configures the token ledger that mints and transfers reward tokens.
// In memory mode the ledger lives inside the process and URL is ignored.
type CustodyConfig struct {
	Mode          string        `mapstructure:"mode"`
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// MemoryTreasuryBalance funds every custodian treasury at startup in memory mode
	MemoryTreasuryBalance uint64 `mapstructure:"memory-treasury-balance"`
}

func (cfg *CustodyConfig) Validate() error {
	if cfg.Mode == "" {
		cfg.Mode = CustodyModeHTTP
	}

	switch cfg.Mode {
	case CustodyModeHTTP:
		if cfg.URL == "" {
			return fmt.Errorf("custody url is required in %s mode", CustodyModeHTTP)
		}
	case CustodyModeMemory:
	default:
		return fmt.Errorf("unknown custody mode %q", cfg.Mode)
	}

	setClientDefaults(&cfg.Timeout, &cfg.MaxRetryTimes, &cfg.RetryInterval)
	return nil
}

func setClientDefaults(timeout *time.Duration, maxRetryTimes *uint, retryInterval *time.Duration) {
	if *timeout <= 0 {
		*timeout = defaultClientTimeout
	}
	if *maxRetryTimes == 0 {
		*maxRetryTimes = defaultClientMaxRetryTimes
	}
	if *retryInterval <= 0 {
		*retryInterval = defaultClientRetryInterval
	}
}
