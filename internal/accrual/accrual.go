// Package accrual converts unclaimed stake seconds into reward amounts and
// settles them against a distributor's supply cap and payout balance.
package accrual

import (
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
)

type SkipReason string

const (
	SkipNone SkipReason = ""
	// SkipNothingAccrued means the entry already received more seconds than were staked
	SkipNothingAccrued  SkipReason = "nothing_accrued"
	SkipSupplyExhausted SkipReason = "supply_exhausted"
)

type ClampReason string

const (
	ClampNone      ClampReason = ""
	ClampMaxSupply ClampReason = "max_supply"
	ClampTreasury  ClampReason = "treasury_balance"
)

// Accrual is what an entry is owed for its unclaimed stake seconds.
type Accrual struct {
	UnclaimedSeconds uint64
	WholePeriods     uint64
	Amount           uint64
	SecondsCredited  uint64
	Clamp            ClampReason
}

// Compute derives the reward owed to entry for totalStakeSeconds of staking,
// limited by the distributor max supply. A non empty SkipReason means there is
// nothing to claim and the returned Accrual is nil.
//
// Every division truncates and the order of operations is fixed: whole
// reward periods are taken before the multiplier is applied, so fractions of
// a period never pay out.
func Compute(
	distributor *model.RewardDistributor,
	entry *model.RewardEntry,
	totalStakeSeconds uint64,
) (*Accrual, SkipReason, error) {
	if entry.RewardSecondsReceived > totalStakeSeconds {
		return nil, SkipNothingAccrued, nil
	}

	maxSupply, capped := distributor.Cap()
	if capped && distributor.RewardsIssued >= maxSupply {
		return nil, SkipSupplyExhausted, nil
	}

	unclaimed, err := checkedSub(totalStakeSeconds, entry.RewardSecondsReceived)
	if err != nil {
		return nil, SkipNone, err
	}

	periods, err := checkedDiv(unclaimed, distributor.RewardDurationSeconds)
	if err != nil {
		return nil, SkipNone, fmt.Errorf("invalid reward duration: %w", err)
	}

	amount, err := checkedMul(periods, distributor.RewardAmount)
	if err != nil {
		return nil, SkipNone, err
	}
	amount, err = checkedMul(amount, entry.Multiplier)
	if err != nil {
		return nil, SkipNone, err
	}

	acc := &Accrual{
		UnclaimedSeconds: unclaimed,
		WholePeriods:     periods,
		Amount:           amount,
		SecondsCredited:  unclaimed,
	}

	if capped {
		total, err := checkedAdd(distributor.RewardsIssued, amount)
		if err != nil {
			return nil, SkipNone, err
		}
		if total >= maxSupply {
			remaining, err := checkedSub(maxSupply, distributor.RewardsIssued)
			if err != nil {
				return nil, SkipNone, err
			}
			if err := acc.clampTo(remaining, ClampMaxSupply, distributor, entry); err != nil {
				return nil, SkipNone, err
			}
		}
	}

	return acc, SkipNone, nil
}

// clampTo lowers the amount to limit and credits only the stake seconds that
// the reduced amount pays for. Seconds beyond that are forfeited, they do not
// stay claimable.
func (a *Accrual) clampTo(
	limit uint64,
	reason ClampReason,
	distributor *model.RewardDistributor,
	entry *model.RewardEntry,
) error {
	seconds, err := secondsForAmount(limit, distributor, entry)
	if err != nil {
		return fmt.Errorf("failed to credit seconds for clamped amount %d: %w", limit, err)
	}

	a.Amount = limit
	a.SecondsCredited = seconds
	a.Clamp = reason
	return nil
}

// secondsForAmount is ((amount / reward_amount) * reward_duration_seconds) / multiplier.
func secondsForAmount(amount uint64, distributor *model.RewardDistributor, entry *model.RewardEntry) (uint64, error) {
	periods, err := checkedDiv(amount, distributor.RewardAmount)
	if err != nil {
		return 0, err
	}
	seconds, err := checkedMul(periods, distributor.RewardDurationSeconds)
	if err != nil {
		return 0, err
	}
	return checkedDiv(seconds, entry.Multiplier)
}
