package services

import (
	"context"
	"testing"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/custodyclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/babylonlabs-io/staking-reward-distributor/testutil"
	"github.com/babylonlabs-io/staking-reward-distributor/tests/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testProgramID = "Stake11111111111111111111111111111111111111"

type testEnv struct {
	svc       *Service
	db        *mocks.DbInterface
	stake     *mocks.StakeTimeProvider
	publisher *mocks.EventPublisher
	ledger    *custodyclient.MemoryLedger
	deriver   *authority.Deriver
	clock     *clockwork.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	deriver, err := authority.NewDeriver(testProgramID)
	require.NoError(t, err)

	env := &testEnv{
		db:        mocks.NewDbInterface(t),
		stake:     mocks.NewStakeTimeProvider(t),
		publisher: mocks.NewEventPublisher(t),
		ledger:    custodyclient.NewMemoryLedger(),
		deriver:   deriver,
		clock:     clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	cfg := &config.Config{
		Poller: config.PollerConfig{
			Enabled:             true,
			ClaimInterval:       time.Minute,
			MaxConcurrentClaims: 2,
		},
	}
	env.svc = NewService(cfg, env.db, env.stake, env.ledger, deriver, env.publisher)
	env.svc.clock = env.clock

	return env
}

// newDistributor returns a distributor whose signing authority is derived the
// way the service derives it, with the ledger set up to let it pay.
func (e *testEnv) newDistributor(t *testing.T, kind types.DistributorKind, treasuryBalance uint64) *model.RewardDistributor {
	d := testutil.GenerateRewardDistributor(kind)

	auth, err := e.deriver.ForStakePool(d.StakePoolID)
	require.NoError(t, err)
	d.ID = auth.Address()
	d.SigningAuthority = auth.Address()

	switch kind {
	case types.KindIssuer:
		e.ledger.SetMintAuthority(d.RewardTokenID, d.SigningAuthority)
	case types.KindCustodian:
		require.NoError(t, e.ledger.Fund(d.TreasuryAccount, d.SigningAuthority, treasuryBalance))
	}
	return d
}

// serveRecords makes the db mock return copies of the records so the
// service never shares memory with the test.
func (e *testEnv) serveRecords(d *model.RewardDistributor, entry *model.RewardEntry) {
	e.db.On("GetRewardEntry", mock.Anything, entry.ID).Return(
		func(context.Context, string) *model.RewardEntry { return entry.Clone() }, nil,
	).Maybe()
	e.db.On("GetRewardDistributor", mock.Anything, d.ID).Return(
		func(context.Context, string) *model.RewardDistributor { return d.Clone() }, nil,
	).Maybe()
}

func (e *testEnv) serveStake(d *model.RewardDistributor, entry *model.RewardEntry, totalStakeSeconds uint64) {
	e.stake.On("GetStakeRecord", mock.Anything, entry.StakedAssetID).Return(&types.StakeRecord{
		StakePoolID:       d.StakePoolID,
		StakedAssetID:     entry.StakedAssetID,
		TotalStakeSeconds: totalStakeSeconds,
	}, nil).Maybe()
}
