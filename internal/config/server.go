package config

import (
	"fmt"
	"time"
)

const defaultServerRequestTimeout = 30 * time.Second

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535 (inclusive)")
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultServerRequestTimeout
	}

	return nil
}

func (cfg *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
