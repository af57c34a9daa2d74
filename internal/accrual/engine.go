package accrual

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

// Outcome is the result of a claim. A skipped claim has a zero amount and
// carries the unchanged counters.
type Outcome struct {
	Skip              SkipReason            `json:"skip,omitempty"`
	Kind              types.DistributorKind `json:"kind"`
	TotalStakeSeconds uint64                `json:"total_stake_seconds"`
	Amount            uint64                `json:"amount"`
	SecondsCredited   uint64                `json:"seconds_credited"`
	Clamp             ClampReason           `json:"clamp,omitempty"`

	RewardsIssued         uint64 `json:"rewards_issued"`
	RewardAmountReceived  uint64 `json:"reward_amount_received"`
	RewardSecondsReceived uint64 `json:"reward_seconds_received"`
}

func (o *Outcome) Skipped() bool {
	return o.Skip != SkipNone
}

// Changed reports whether committing the outcome modifies any counter.
func (o *Outcome) Changed() bool {
	return !o.Skipped() && (o.Amount > 0 || o.SecondsCredited > 0)
}

// Apply writes the post-claim counters onto the records.
func (o *Outcome) Apply(distributor *model.RewardDistributor, entry *model.RewardEntry) {
	distributor.RewardsIssued = o.RewardsIssued
	entry.RewardAmountReceived = o.RewardAmountReceived
	entry.RewardSecondsReceived = o.RewardSecondsReceived
}

// Claim computes what entry is owed, pays it through executor and returns the
// counters to commit. The records are never modified; on error nothing was
// paid unless the error is a *types.PayoutError raised by the executor itself.
func Claim(
	ctx context.Context,
	distributor *model.RewardDistributor,
	entry *model.RewardEntry,
	totalStakeSeconds uint64,
	executor payout.Executor,
) (*Outcome, error) {
	outcome, err := Settle(ctx, distributor, entry, totalStakeSeconds, executor)
	if err != nil {
		return nil, err
	}
	if err := Pay(ctx, executor, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// Settle computes what entry is owed, clamped to the executor limit, and the
// counters to commit, without paying anything.
func Settle(
	ctx context.Context,
	distributor *model.RewardDistributor,
	entry *model.RewardEntry,
	totalStakeSeconds uint64,
	executor payout.Executor,
) (*Outcome, error) {
	outcome := &Outcome{
		Kind:                  executor.Kind(),
		TotalStakeSeconds:     totalStakeSeconds,
		RewardsIssued:         distributor.RewardsIssued,
		RewardAmountReceived:  entry.RewardAmountReceived,
		RewardSecondsReceived: entry.RewardSecondsReceived,
	}

	acc, skip, err := Compute(distributor, entry, totalStakeSeconds)
	if err != nil {
		return nil, err
	}
	if skip != SkipNone {
		outcome.Skip = skip
		return outcome, nil
	}

	limit, limited, err := executor.Limit(ctx)
	if err != nil {
		return nil, err
	}
	if limited && acc.Amount > limit {
		if err := acc.clampTo(limit, ClampTreasury, distributor, entry); err != nil {
			return nil, err
		}
	}

	// counters are settled before paying so that a failing addition can
	// never follow a payout that already happened
	if outcome.RewardsIssued, err = checkedAdd(distributor.RewardsIssued, acc.Amount); err != nil {
		return nil, fmt.Errorf("failed to add to rewards issued: %w", err)
	}
	if outcome.RewardAmountReceived, err = checkedAdd(entry.RewardAmountReceived, acc.Amount); err != nil {
		return nil, fmt.Errorf("failed to add to reward amount received: %w", err)
	}
	if outcome.RewardSecondsReceived, err = checkedAdd(entry.RewardSecondsReceived, acc.SecondsCredited); err != nil {
		return nil, fmt.Errorf("failed to add to reward seconds received: %w", err)
	}

	outcome.Amount = acc.Amount
	outcome.SecondsCredited = acc.SecondsCredited
	outcome.Clamp = acc.Clamp
	return outcome, nil
}

// Pay moves the settled amount. A zero amount is not sent to the ledger, the
// seconds are still credited.
func Pay(ctx context.Context, executor payout.Executor, outcome *Outcome) error {
	if !outcome.Changed() || outcome.Amount == 0 {
		return nil
	}
	return executor.Pay(ctx, outcome.Amount)
}
