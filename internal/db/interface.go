package db

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error

	SaveNewRewardDistributor(ctx context.Context, distributor *model.RewardDistributor) error
	GetRewardDistributor(ctx context.Context, id string) (*model.RewardDistributor, error)
	FindRewardDistributors(ctx context.Context) ([]*model.RewardDistributor, error)

	SaveNewRewardEntry(ctx context.Context, entry *model.RewardEntry) error
	GetRewardEntry(ctx context.Context, id string) (*model.RewardEntry, error)
	UpdateRewardEntryPayoutDestination(ctx context.Context, id, destination string) error
	// FindPayableRewardEntries returns the entries of a distributor that have a payout destination.
	FindPayableRewardEntries(ctx context.Context, distributorID string) ([]*model.RewardEntry, error)

	// ReserveClaim applies the counters of claim to its distributor and entry and
	// journals it as pending, atomically. StaleRecordError is returned when either
	// record no longer holds the counters the claim was computed from.
	ReserveClaim(ctx context.Context, claim *model.RewardClaim) error
	// ReleaseClaim takes back the counters of a pending claim that was not paid.
	ReleaseClaim(ctx context.Context, claim *model.RewardClaim) error
	// SettleClaim marks a pending claim as paid.
	SettleClaim(ctx context.Context, claimID string) error
	GetRewardClaims(ctx context.Context, entryID string, limit int64) ([]*model.RewardClaim, error)
}
