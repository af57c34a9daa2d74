package accrual

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	kind     types.DistributorKind
	limited  bool
	balance  uint64
	limitErr error
	payErr   error
	paid     []uint64
}

func (f *fakeExecutor) Kind() types.DistributorKind {
	return f.kind
}

func (f *fakeExecutor) Limit(context.Context) (uint64, bool, error) {
	if f.limitErr != nil {
		return 0, f.limited, f.limitErr
	}
	return f.balance, f.limited, nil
}

func (f *fakeExecutor) Pay(_ context.Context, amount uint64) error {
	if f.payErr != nil {
		return &types.PayoutError{Kind: f.kind, Err: f.payErr}
	}
	if f.limited {
		f.balance -= amount
	}
	f.paid = append(f.paid, amount)
	return nil
}

func issuer() *fakeExecutor {
	return &fakeExecutor{kind: types.KindIssuer}
}

func custodian(balance uint64) *fakeExecutor {
	return &fakeExecutor{kind: types.KindCustodian, limited: true, balance: balance}
}

func newDistributor(maxSupply *uint64) *model.RewardDistributor {
	return &model.RewardDistributor{
		ID:                    "distributor",
		StakePoolID:           "pool",
		RewardTokenID:         "token",
		RewardAmount:          100,
		RewardDurationSeconds: 10,
		MaxSupply:             maxSupply,
	}
}

func newEntry(multiplier uint64) *model.RewardEntry {
	return &model.RewardEntry{
		ID:                  "distributor:asset",
		RewardDistributorID: "distributor",
		StakedAssetID:       "asset",
		Multiplier:          multiplier,
	}
}

func ptr(v uint64) *uint64 {
	return &v
}

func TestClaim_Scenarios(t *testing.T) {
	ctx := t.Context()

	t.Run("uncapped accrual", func(t *testing.T) {
		executor := issuer()
		outcome, err := Claim(ctx, newDistributor(nil), newEntry(2), 25, executor)
		require.NoError(t, err)

		assert.False(t, outcome.Skipped())
		assert.Equal(t, uint64(400), outcome.Amount)
		assert.Equal(t, uint64(25), outcome.SecondsCredited)
		assert.Equal(t, ClampNone, outcome.Clamp)
		assert.Equal(t, uint64(400), outcome.RewardsIssued)
		assert.Equal(t, uint64(400), outcome.RewardAmountReceived)
		assert.Equal(t, uint64(25), outcome.RewardSecondsReceived)
		assert.Equal(t, []uint64{400}, executor.paid)
	})
	t.Run("max supply clamp forfeits seconds", func(t *testing.T) {
		executor := issuer()
		outcome, err := Claim(ctx, newDistributor(ptr(300)), newEntry(2), 25, executor)
		require.NoError(t, err)

		assert.Equal(t, uint64(300), outcome.Amount)
		assert.Equal(t, uint64(15), outcome.SecondsCredited)
		assert.Equal(t, ClampMaxSupply, outcome.Clamp)
		assert.Equal(t, uint64(300), outcome.RewardsIssued)
		assert.Equal(t, []uint64{300}, executor.paid)
	})
	t.Run("treasury clamp truncates seconds to zero", func(t *testing.T) {
		executor := custodian(50)
		outcome, err := Claim(ctx, newDistributor(nil), newEntry(2), 25, executor)
		require.NoError(t, err)

		assert.Equal(t, uint64(50), outcome.Amount)
		assert.Zero(t, outcome.SecondsCredited)
		assert.Equal(t, ClampTreasury, outcome.Clamp)
		assert.Equal(t, types.KindCustodian, outcome.Kind)
		assert.Zero(t, outcome.RewardSecondsReceived)
		assert.Equal(t, []uint64{50}, executor.paid)
	})
	t.Run("zero multiplier consumes time without payout", func(t *testing.T) {
		executor := issuer()
		outcome, err := Claim(ctx, newDistributor(nil), newEntry(0), 100, executor)
		require.NoError(t, err)

		assert.Zero(t, outcome.Amount)
		assert.Equal(t, uint64(100), outcome.SecondsCredited)
		assert.True(t, outcome.Changed())
		assert.Empty(t, executor.paid)
	})
	t.Run("custodian with enough balance pays in full", func(t *testing.T) {
		executor := custodian(1000)
		outcome, err := Claim(ctx, newDistributor(nil), newEntry(2), 25, executor)
		require.NoError(t, err)

		assert.Equal(t, uint64(400), outcome.Amount)
		assert.Equal(t, uint64(25), outcome.SecondsCredited)
		assert.Equal(t, ClampNone, outcome.Clamp)
		assert.Equal(t, uint64(600), executor.balance)
	})
	t.Run("reaching the cap exactly recomputes seconds", func(t *testing.T) {
		// 17 seconds is one whole period worth 200, which equals the cap
		outcome, err := Claim(ctx, newDistributor(ptr(200)), newEntry(2), 17, issuer())
		require.NoError(t, err)

		assert.Equal(t, uint64(200), outcome.Amount)
		assert.Equal(t, uint64(10), outcome.SecondsCredited)
		assert.Equal(t, ClampMaxSupply, outcome.Clamp)
	})
	t.Run("partial periods are not paid", func(t *testing.T) {
		outcome, err := Claim(ctx, newDistributor(nil), newEntry(1), 9, issuer())
		require.NoError(t, err)

		assert.Zero(t, outcome.Amount)
		assert.Equal(t, uint64(9), outcome.SecondsCredited)
	})
}

func TestClaim_Guards(t *testing.T) {
	ctx := t.Context()

	t.Run("entry ahead of stake ledger", func(t *testing.T) {
		entry := newEntry(1)
		entry.RewardSecondsReceived = 30
		executor := custodian(100)

		outcome, err := Claim(ctx, newDistributor(nil), entry, 25, executor)
		require.NoError(t, err)

		assert.Equal(t, SkipNothingAccrued, outcome.Skip)
		assert.Zero(t, outcome.Amount)
		assert.False(t, outcome.Changed())
		assert.Equal(t, uint64(30), outcome.RewardSecondsReceived)
		assert.Empty(t, executor.paid)
	})
	t.Run("supply exhausted", func(t *testing.T) {
		distributor := newDistributor(ptr(300))
		distributor.RewardsIssued = 300

		outcome, err := Claim(ctx, distributor, newEntry(1), 1000, issuer())
		require.NoError(t, err)
		assert.Equal(t, SkipSupplyExhausted, outcome.Skip)
		assert.Equal(t, uint64(300), outcome.RewardsIssued)
	})
	t.Run("supply exhausted skips before invalid duration", func(t *testing.T) {
		distributor := newDistributor(ptr(300))
		distributor.RewardsIssued = 301
		distributor.RewardDurationSeconds = 0

		outcome, err := Claim(ctx, distributor, newEntry(1), 1000, issuer())
		require.NoError(t, err)
		assert.True(t, outcome.Skipped())
	})
	t.Run("equal seconds commit nothing", func(t *testing.T) {
		entry := newEntry(1)
		entry.RewardSecondsReceived = 25

		outcome, err := Claim(ctx, newDistributor(nil), entry, 25, issuer())
		require.NoError(t, err)
		assert.False(t, outcome.Skipped())
		assert.False(t, outcome.Changed())
	})
}

func TestClaim_Errors(t *testing.T) {
	ctx := t.Context()

	assertUntouched := func(t *testing.T, distributor *model.RewardDistributor, entry *model.RewardEntry, run func() error) {
		t.Helper()
		distributorBefore := *distributor.Clone()
		entryBefore := *entry.Clone()
		require.Error(t, run())
		assert.Equal(t, distributorBefore, *distributor)
		assert.Equal(t, entryBefore, *entry)
	}

	t.Run("zero reward duration", func(t *testing.T) {
		distributor := newDistributor(nil)
		distributor.RewardDurationSeconds = 0
		entry := newEntry(1)
		executor := issuer()

		assertUntouched(t, distributor, entry, func() error {
			_, err := Claim(ctx, distributor, entry, 25, executor)
			assert.ErrorIs(t, err, types.ErrDivisionByZero)
			return err
		})
		assert.Empty(t, executor.paid)
	})
	t.Run("zero reward amount on clamp", func(t *testing.T) {
		distributor := newDistributor(nil)
		distributor.RewardAmount = 0
		entry := newEntry(1)

		// nothing is owed, so the treasury never clamps and no division happens
		outcome, err := Claim(ctx, distributor, entry, 25, custodian(0))
		require.NoError(t, err)
		assert.Zero(t, outcome.Amount)
		assert.Equal(t, uint64(25), outcome.SecondsCredited)
	})
	t.Run("amount overflow", func(t *testing.T) {
		distributor := newDistributor(nil)
		distributor.RewardAmount = math.MaxUint64
		entry := newEntry(1)
		executor := issuer()

		assertUntouched(t, distributor, entry, func() error {
			_, err := Claim(ctx, distributor, entry, 25, executor)
			assert.ErrorIs(t, err, types.ErrArithmeticOverflow)
			return err
		})
		assert.Empty(t, executor.paid)
	})
	t.Run("issued counter overflow aborts before payout", func(t *testing.T) {
		distributor := newDistributor(nil)
		distributor.RewardsIssued = math.MaxUint64 - 10
		entry := newEntry(1)
		executor := issuer()

		assertUntouched(t, distributor, entry, func() error {
			_, err := Claim(ctx, distributor, entry, 25, executor)
			assert.ErrorIs(t, err, types.ErrArithmeticOverflow)
			return err
		})
		assert.Empty(t, executor.paid)
	})
	t.Run("payout failure", func(t *testing.T) {
		distributor := newDistributor(nil)
		entry := newEntry(2)
		cause := errors.New("authority mismatch")
		executor := &fakeExecutor{kind: types.KindIssuer, payErr: cause}

		assertUntouched(t, distributor, entry, func() error {
			outcome, err := Claim(ctx, distributor, entry, 25, executor)
			assert.Nil(t, outcome)
			assert.ErrorIs(t, err, cause)
			var payoutErr *types.PayoutError
			assert.ErrorAs(t, err, &payoutErr)
			return err
		})
	})
	t.Run("treasury balance unavailable", func(t *testing.T) {
		distributor := newDistributor(nil)
		entry := newEntry(2)
		executor := custodian(0)
		executor.limitErr = errors.New("ledger unreachable")

		assertUntouched(t, distributor, entry, func() error {
			_, err := Claim(ctx, distributor, entry, 25, executor)
			return err
		})
		assert.Empty(t, executor.paid)
	})
}

func TestClaim_SecondClaimIsNoop(t *testing.T) {
	ctx := t.Context()
	distributor := newDistributor(nil)
	entry := newEntry(3)
	executor := issuer()

	first, err := Claim(ctx, distributor, entry, 95, executor)
	require.NoError(t, err)
	first.Apply(distributor, entry)
	assert.Equal(t, uint64(2700), first.Amount)

	second, err := Claim(ctx, distributor, entry, 95, executor)
	require.NoError(t, err)
	assert.Zero(t, second.Amount)
	assert.False(t, second.Changed())
	assert.Equal(t, []uint64{2700}, executor.paid)
}

func TestClaim_Invariants(t *testing.T) {
	ctx := t.Context()
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 200; round++ {
		maxSupply := uint64(rng.IntN(50_000))
		distributor := newDistributor(&maxSupply)
		distributor.RewardAmount = uint64(rng.IntN(500) + 1)
		distributor.RewardDurationSeconds = uint64(rng.IntN(60) + 1)
		entry := newEntry(uint64(rng.IntN(5)))

		var executor *fakeExecutor
		if rng.IntN(2) == 0 {
			executor = issuer()
		} else {
			executor = custodian(uint64(rng.IntN(20_000)))
		}

		var totalStakeSeconds, paid uint64
		for step := 0; step < 20; step++ {
			totalStakeSeconds += uint64(rng.IntN(600))

			issuedBefore := distributor.RewardsIssued
			amountBefore := entry.RewardAmountReceived
			secondsBefore := entry.RewardSecondsReceived

			outcome, err := Claim(ctx, distributor, entry, totalStakeSeconds, executor)
			require.NoError(t, err)
			outcome.Apply(distributor, entry)
			paid += outcome.Amount

			require.LessOrEqual(t, distributor.RewardsIssued, maxSupply)
			require.LessOrEqual(t, entry.RewardSecondsReceived, totalStakeSeconds)
			require.GreaterOrEqual(t, distributor.RewardsIssued, issuedBefore)
			require.GreaterOrEqual(t, entry.RewardAmountReceived, amountBefore)
			require.GreaterOrEqual(t, entry.RewardSecondsReceived, secondsBefore)
			require.Equal(t, paid, entry.RewardAmountReceived)

			if distributor.RewardsIssued == maxSupply {
				next, err := Claim(ctx, distributor, entry, totalStakeSeconds+1000, executor)
				require.NoError(t, err)
				require.Zero(t, next.Amount)
			}
		}
	}
}

func TestSettleDoesNotPay(t *testing.T) {
	ctx := t.Context()
	executor := issuer()

	outcome, err := Settle(ctx, newDistributor(nil), newEntry(2), 25, executor)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), outcome.Amount)
	assert.Equal(t, uint64(25), outcome.SecondsCredited)
	assert.Empty(t, executor.paid)

	require.NoError(t, Pay(ctx, executor, outcome))
	assert.Equal(t, []uint64{400}, executor.paid)

	// outcomes without changes never reach the ledger
	skipped, err := Settle(ctx, newDistributor(nil), newEntry(2), 0, executor)
	require.NoError(t, err)
	require.NoError(t, Pay(ctx, executor, skipped))
	assert.Equal(t, []uint64{400}, executor.paid)
}
