package model

import "github.com/babylonlabs-io/staking-reward-distributor/internal/types"

const RewardDistributorsCollection = "reward_distributors"

// RewardDistributor holds the emission configuration and issued counter of one stake pool.
type RewardDistributor struct {
	ID                    string                `bson:"_id" json:"id"`
	StakePoolID           string                `bson:"stake_pool_id" json:"stake_pool_id"`
	RewardTokenID         string                `bson:"reward_token_id" json:"reward_token_id"`
	RewardAmount          uint64                `bson:"reward_amount" json:"reward_amount"`
	RewardDurationSeconds uint64                `bson:"reward_duration_seconds" json:"reward_duration_seconds"`
	Kind                  types.DistributorKind `bson:"kind" json:"kind"`
	MaxSupply             *uint64               `bson:"max_supply,omitempty" json:"max_supply,omitempty"`
	RewardsIssued         uint64                `bson:"rewards_issued" json:"rewards_issued"`
	SigningAuthority      string                `bson:"signing_authority" json:"signing_authority"`
	// TreasuryAccount is the pre-funded token account custodian distributors pay from
	TreasuryAccount string `bson:"treasury_account,omitempty" json:"treasury_account,omitempty"`
}

// Cap returns the max supply and whether the distributor is capped.
func (d *RewardDistributor) Cap() (uint64, bool) {
	if d.MaxSupply == nil {
		return 0, false
	}
	return *d.MaxSupply, true
}

func (d *RewardDistributor) Clone() *RewardDistributor {
	c := *d
	if d.MaxSupply != nil {
		maxSupply := *d.MaxSupply
		c.MaxSupply = &maxSupply
	}
	return &c
}
