package config

import (
	"fmt"
	"strings"

	queue "github.com/babylonlabs-io/staking-queue-client/config"
	"github.com/spf13/viper"
)

const envPrefix = "REWARD_DISTRIBUTOR"

type Config struct {
	Db          DbConfig          `mapstructure:"db"`
	StakeLedger StakeLedgerConfig `mapstructure:"stake-ledger"`
	Custody     CustodyConfig     `mapstructure:"custody"`
	Authority   AuthorityConfig   `mapstructure:"authority"`
	Poller      PollerConfig      `mapstructure:"poller"`
	// Queue is optional, claim events are not published when it is absent
	Queue   *queue.QueueConfig `mapstructure:"queue"`
	Metrics MetricsConfig      `mapstructure:"metrics"`
	Server  ServerConfig       `mapstructure:"server"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("invalid db config: %w", err)
	}

	if err := cfg.StakeLedger.Validate(); err != nil {
		return fmt.Errorf("invalid stake-ledger config: %w", err)
	}

	if err := cfg.Custody.Validate(); err != nil {
		return fmt.Errorf("invalid custody config: %w", err)
	}

	if err := cfg.Authority.Validate(); err != nil {
		return fmt.Errorf("invalid authority config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("invalid poller config: %w", err)
	}

	if cfg.Queue != nil {
		if cfg.Queue.Url == "" {
			return fmt.Errorf("invalid queue config: url is required")
		}
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values from the file can be overridden by REWARD_DISTRIBUTOR_ prefixed
// environment variables, e.g. REWARD_DISTRIBUTOR_DB_PASSWORD.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
