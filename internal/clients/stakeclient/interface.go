package stakeclient

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

//go:generate mockery --name=StakeTimeProvider --output=../../../tests/mocks --outpkg=mocks --filename=mock_stake_time_provider.go
type StakeTimeProvider interface {
	// GetStakeRecord returns the stake ledger view of the staked asset.
	// ErrStakeRecordNotFound is returned when the ledger has no entry for it.
	GetStakeRecord(ctx context.Context, stakedAssetID string) (*types.StakeRecord, error)
}
