package types

// StakeRecord is the read-only view of a stake entry reported by the stake ledger.
type StakeRecord struct {
	StakePoolID       string `json:"stake_pool_id"`
	StakedAssetID     string `json:"staked_asset_id"`
	TotalStakeSeconds uint64 `json:"total_stake_seconds"`
}
