package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	queue "github.com/babylonlabs-io/staking-queue-client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgramID = "Stake11111111111111111111111111111111111111"

func validConfig() *Config {
	return &Config{
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		StakeLedger: StakeLedgerConfig{
			URL: "http://localhost:8090",
		},
		Custody: CustodyConfig{
			Mode: CustodyModeMemory,
		},
		Authority: AuthorityConfig{
			ProgramID: testProgramID,
		},
		Poller: PollerConfig{
			ClaimInterval: time.Minute,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

func TestConfig_OptionalQueue(t *testing.T) {
	cfg := validConfig()

	err := cfg.Validate()
	require.NoError(t, err)
	assert.Nil(t, cfg.Queue)

	cfg.Queue = &queue.QueueConfig{
		QueueUser:     "test",
		QueuePassword: "test",
		Url:           "localhost:5672",
	}
	err = cfg.Validate()
	require.NoError(t, err)

	cfg.Queue.Url = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue")
}

func TestConfig_Defaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, defaultClientTimeout, cfg.StakeLedger.Timeout)
	assert.Equal(t, uint(defaultClientMaxRetryTimes), cfg.StakeLedger.MaxRetryTimes)
	assert.Equal(t, defaultClientRetryInterval, cfg.Custody.RetryInterval)
	assert.Equal(t, defaultMaxConcurrentClaims, cfg.Poller.MaxConcurrentClaims)
	assert.Equal(t, defaultServerRequestTimeout, cfg.Server.RequestTimeout)
}

func TestConfig_Invalid(t *testing.T) {
	t.Run("missing db name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Db.DbName = ""
		assert.ErrorContains(t, cfg.Validate(), "missing db name")
	})
	t.Run("http custody without url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Custody.Mode = CustodyModeHTTP
		assert.ErrorContains(t, cfg.Validate(), "custody url is required")
	})
	t.Run("unknown custody mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Custody.Mode = "paper"
		assert.ErrorContains(t, cfg.Validate(), "unknown custody mode")
	})
	t.Run("invalid program id", func(t *testing.T) {
		cfg := validConfig()
		cfg.Authority.ProgramID = "not-base58-0OIl"
		assert.ErrorContains(t, cfg.Validate(), "invalid program id")
	})
	t.Run("invalid metrics host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Metrics.Host = "localhost"
		assert.ErrorContains(t, cfg.Validate(), "invalid metrics server host")
	})
	t.Run("server port not set", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 0
		assert.ErrorContains(t, cfg.Validate(), "server port")
	})
}

func TestNew(t *testing.T) {
	const content = `
db:
  username: user
  password: password
  db-name: rewards
  address: mongodb://localhost:27017
stake-ledger:
  url: http://localhost:8090
  max-retry-times: 5
custody:
  mode: memory
authority:
  program-id: ` + testProgramID + `
poller:
  enabled: true
  claim-interval: 30s
metrics:
  host: 0.0.0.0
  port: 2112
server:
  host: 127.0.0.1
  port: 8080
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("REWARD_DISTRIBUTOR_DB_PASSWORD", "from-env")

	cfg, err := New(path)
	require.NoError(t, err)

	assert.Equal(t, "rewards", cfg.Db.DbName)
	assert.Equal(t, "from-env", cfg.Db.Password)
	assert.Equal(t, uint(5), cfg.StakeLedger.MaxRetryTimes)
	assert.Equal(t, CustodyModeMemory, cfg.Custody.Mode)
	assert.True(t, cfg.Poller.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Poller.ClaimInterval)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
	assert.Nil(t, cfg.Queue)
}
