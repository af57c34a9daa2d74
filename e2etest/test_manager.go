//go:build e2e

package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/e2etest/container"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/api"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/custodyclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/stakeclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/queue"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/services"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/stretchr/testify/require"
)

const (
	testDbName    = "reward-distributor-e2e"
	testProgramID = "Stake11111111111111111111111111111111111111"
)

type TestManager struct {
	Config      *config.Config
	DbClient    *db.Database
	Ledger      *custodyclient.MemoryLedger
	Authority   *authority.Deriver
	StakeLedger *StakeLedger
	Service     *services.Service
	API         *httptest.Server
}

// StartManager runs mongo and rabbitmq containers and serves the API over
// the real service. Custody is the in-memory ledger and the stake ledger is
// served by StakeLedger.
func StartManager(t *testing.T) *TestManager {
	ctx := t.Context()

	manager, err := container.NewManager()
	require.NoError(t, err)

	dbCfg, err := manager.RunMongo(t, testDbName)
	require.NoError(t, err)
	queueCfg, err := manager.RunRabbitMQ(t)
	require.NoError(t, err)

	stakeLedger := NewStakeLedger()
	t.Cleanup(stakeLedger.Close)

	cfg := &config.Config{
		Db: dbCfg,
		StakeLedger: config.StakeLedgerConfig{
			URL:           stakeLedger.URL(),
			Timeout:       5 * time.Second,
			MaxRetryTimes: 2,
			RetryInterval: 100 * time.Millisecond,
		},
		Custody:   config.CustodyConfig{Mode: config.CustodyModeMemory},
		Authority: config.AuthorityConfig{ProgramID: testProgramID},
		Poller: config.PollerConfig{
			ClaimInterval:       time.Minute,
			MaxConcurrentClaims: 2,
		},
		Queue:  queueCfg,
		Server: config.ServerConfig{RequestTimeout: 30 * time.Second},
	}

	require.NoError(t, model.Setup(ctx, &cfg.Db))
	dbClient, err := db.New(ctx, cfg.Db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = dbClient.Close(context.Background())
	})

	publisher, err := queue.NewEventPublisher(cfg.Queue)
	require.NoError(t, err)
	t.Cleanup(publisher.Shutdown)

	deriver, err := authority.NewDeriver(cfg.Authority.ProgramID)
	require.NoError(t, err)

	ledger := custodyclient.NewMemoryLedger()
	service := services.NewService(
		cfg,
		db.NewDbWithMetrics(dbClient),
		stakeclient.NewStakeClientWithMetrics(stakeclient.New(&cfg.StakeLedger)),
		custodyclient.NewLedgerWithMetrics(ledger),
		deriver,
		publisher,
	)

	server := httptest.NewServer(api.NewRouter(service, cfg.Server.RequestTimeout))
	t.Cleanup(server.Close)

	return &TestManager{
		Config:      cfg,
		DbClient:    dbClient,
		Ledger:      ledger,
		Authority:   deriver,
		StakeLedger: stakeLedger,
		Service:     service,
		API:         server,
	}
}

// Do sends a JSON request to the API and decodes a JSON response into out.
func (tm *TestManager) Do(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequestWithContext(t.Context(), method, tm.API.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := tm.API.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (tm *TestManager) InitRewardDistributor(t *testing.T, req map[string]any) *model.RewardDistributor {
	t.Helper()

	var distributor model.RewardDistributor
	status := tm.Do(t, http.MethodPost, "/v1/reward-distributors", req, &distributor)
	require.Equal(t, http.StatusCreated, status)
	return &distributor
}

func (tm *TestManager) InitRewardEntry(t *testing.T, distributorID, stakedAssetID, destination string) *model.RewardEntry {
	t.Helper()

	var entry model.RewardEntry
	status := tm.Do(t, http.MethodPost, "/v1/reward-entries", map[string]string{
		"reward_distributor_id": distributorID,
		"staked_asset_id":       stakedAssetID,
		"payout_destination":    destination,
	}, &entry)
	require.Equal(t, http.StatusOK, status)
	return &entry
}

func (tm *TestManager) Claim(t *testing.T, entryID string) (*services.ClaimOutcome, int) {
	t.Helper()

	var outcome services.ClaimOutcome
	status := tm.Do(t, http.MethodPost, fmt.Sprintf("/v1/reward-entries/%s/claim", entryID), nil, &outcome)
	return &outcome, status
}

// StakeLedger serves stake records over HTTP the way the stake ledger does.
type StakeLedger struct {
	mu      sync.Mutex
	records map[string]types.StakeRecord
	server  *httptest.Server
}

func NewStakeLedger() *StakeLedger {
	l := &StakeLedger{records: make(map[string]types.StakeRecord)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/stake-entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		record, ok := l.records[r.PathValue("id")]
		l.mu.Unlock()

		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(record)
	})
	l.server = httptest.NewServer(mux)

	return l
}

func (l *StakeLedger) SetStakeSeconds(stakePoolID, stakedAssetID string, totalStakeSeconds uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records[stakedAssetID] = types.StakeRecord{
		StakePoolID:       stakePoolID,
		StakedAssetID:     stakedAssetID,
		TotalStakeSeconds: totalStakeSeconds,
	}
}

func (l *StakeLedger) URL() string {
	return l.server.URL
}

func (l *StakeLedger) Close() {
	l.server.Close()
}
