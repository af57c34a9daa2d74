package model

const RewardEntriesCollection = "reward_entries"

const DefaultMultiplier = 1

type RewardEntry struct {
	ID                    string `bson:"_id" json:"id"`
	RewardDistributorID   string `bson:"reward_distributor_id" json:"reward_distributor_id"`
	StakedAssetID         string `bson:"staked_asset_id" json:"staked_asset_id"`
	Multiplier            uint64 `bson:"multiplier" json:"multiplier"`
	RewardSecondsReceived uint64 `bson:"reward_seconds_received" json:"reward_seconds_received"`
	RewardAmountReceived  uint64 `bson:"reward_amount_received" json:"reward_amount_received"`
	// PayoutDestination is the token account periodic claims are paid to, empty disables them
	PayoutDestination string `bson:"payout_destination,omitempty" json:"payout_destination,omitempty"`
}

func NewRewardEntry(distributorID, stakedAssetID string) *RewardEntry {
	return &RewardEntry{
		ID:                  RewardEntryID(distributorID, stakedAssetID),
		RewardDistributorID: distributorID,
		StakedAssetID:       stakedAssetID,
		Multiplier:          DefaultMultiplier,
	}
}

// RewardEntryID is the deterministic id of the entry of a staked asset within a distributor.
func RewardEntryID(distributorID, stakedAssetID string) string {
	return distributorID + ":" + stakedAssetID
}

func (e *RewardEntry) Clone() *RewardEntry {
	c := *e
	return &c
}
