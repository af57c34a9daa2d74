package model

import (
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

const RewardClaimsCollection = "reward_claims"

type ClaimStatus string

const (
	// ClaimStatusPending claims hold their counters but may not be paid yet
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusSettled  ClaimStatus = "settled"
	ClaimStatusReleased ClaimStatus = "released"
)

// RewardClaim is the journal record written in the same transaction that
// reserves the counter updates. It stays pending until the payout is done.
type RewardClaim struct {
	ID                  string                `bson:"_id" json:"id"`
	RewardDistributorID string                `bson:"reward_distributor_id" json:"reward_distributor_id"`
	RewardEntryID       string                `bson:"reward_entry_id" json:"reward_entry_id"`
	StakedAssetID       string                `bson:"staked_asset_id" json:"staked_asset_id"`
	Destination         string                `bson:"destination" json:"destination"`
	Kind                types.DistributorKind `bson:"kind" json:"kind"`
	TotalStakeSeconds   uint64                `bson:"total_stake_seconds" json:"total_stake_seconds"`
	Amount              uint64                `bson:"amount" json:"amount"`
	SecondsCredited     uint64                `bson:"seconds_credited" json:"seconds_credited"`
	ClampReason         string                `bson:"clamp_reason,omitempty" json:"clamp_reason,omitempty"`
	// counters before and after the claim, used for the optimistic commit
	PrevRewardsIssued         uint64    `bson:"prev_rewards_issued" json:"prev_rewards_issued"`
	PrevRewardSecondsReceived uint64    `bson:"prev_reward_seconds_received" json:"prev_reward_seconds_received"`
	PrevRewardAmountReceived  uint64    `bson:"prev_reward_amount_received" json:"prev_reward_amount_received"`
	RewardsIssued             uint64    `bson:"rewards_issued" json:"rewards_issued"`
	RewardSecondsReceived     uint64    `bson:"reward_seconds_received" json:"reward_seconds_received"`
	RewardAmountReceived      uint64    `bson:"reward_amount_received" json:"reward_amount_received"`
	ClaimedAt                 time.Time `bson:"claimed_at" json:"claimed_at"`

	Status ClaimStatus `bson:"status" json:"status"`
}
