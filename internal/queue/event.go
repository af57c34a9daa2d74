package queue

import (
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
)

const (
	RewardClaimedQueueName = "reward_claimed_queue"
	RewardClaimedEventType = "reward_claimed"
)

type RewardClaimedEvent struct {
	EventType       string `json:"event_type"`
	ClaimID         string `json:"claim_id"`
	DistributorID   string `json:"reward_distributor_id"`
	EntryID         string `json:"reward_entry_id"`
	StakedAssetID   string `json:"staked_asset_id"`
	Destination     string `json:"destination"`
	Amount          uint64 `json:"amount"`
	SecondsCredited uint64 `json:"seconds_credited"`
	Kind            string `json:"kind"`
	ClampReason     string `json:"clamp_reason,omitempty"`
	// Timestamp is the claim time in unix seconds
	Timestamp int64 `json:"timestamp"`
}

func NewRewardClaimedEvent(claim *model.RewardClaim) *RewardClaimedEvent {
	return &RewardClaimedEvent{
		EventType:       RewardClaimedEventType,
		ClaimID:         claim.ID,
		DistributorID:   claim.RewardDistributorID,
		EntryID:         claim.RewardEntryID,
		StakedAssetID:   claim.StakedAssetID,
		Destination:     claim.Destination,
		Amount:          claim.Amount,
		SecondsCredited: claim.SecondsCredited,
		Kind:            claim.Kind.String(),
		ClampReason:     claim.ClampReason,
		Timestamp:       claim.ClaimedAt.Unix(),
	}
}
