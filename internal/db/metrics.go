package db

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewRewardDistributor(ctx context.Context, distributor *model.RewardDistributor) error {
	return d.run("SaveNewRewardDistributor", func() error {
		return d.db.SaveNewRewardDistributor(ctx, distributor)
	})
}

func (d *DbWithMetrics) GetRewardDistributor(ctx context.Context, id string) (result *model.RewardDistributor, err error) {
	//nolint:errcheck
	d.run("GetRewardDistributor", func() error {
		result, err = d.db.GetRewardDistributor(ctx, id)
		return err
	})
	return
}

func (d *DbWithMetrics) FindRewardDistributors(ctx context.Context) (result []*model.RewardDistributor, err error) {
	//nolint:errcheck
	d.run("FindRewardDistributors", func() error {
		result, err = d.db.FindRewardDistributors(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewRewardEntry(ctx context.Context, entry *model.RewardEntry) error {
	return d.run("SaveNewRewardEntry", func() error {
		return d.db.SaveNewRewardEntry(ctx, entry)
	})
}

func (d *DbWithMetrics) GetRewardEntry(ctx context.Context, id string) (result *model.RewardEntry, err error) {
	//nolint:errcheck
	d.run("GetRewardEntry", func() error {
		result, err = d.db.GetRewardEntry(ctx, id)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateRewardEntryPayoutDestination(ctx context.Context, id, destination string) error {
	return d.run("UpdateRewardEntryPayoutDestination", func() error {
		return d.db.UpdateRewardEntryPayoutDestination(ctx, id, destination)
	})
}

func (d *DbWithMetrics) FindPayableRewardEntries(ctx context.Context, distributorID string) (result []*model.RewardEntry, err error) {
	//nolint:errcheck
	d.run("FindPayableRewardEntries", func() error {
		result, err = d.db.FindPayableRewardEntries(ctx, distributorID)
		return err
	})
	return
}

func (d *DbWithMetrics) ReserveClaim(ctx context.Context, claim *model.RewardClaim) error {
	return d.run("ReserveClaim", func() error {
		return d.db.ReserveClaim(ctx, claim)
	})
}

func (d *DbWithMetrics) ReleaseClaim(ctx context.Context, claim *model.RewardClaim) error {
	return d.run("ReleaseClaim", func() error {
		return d.db.ReleaseClaim(ctx, claim)
	})
}

func (d *DbWithMetrics) SettleClaim(ctx context.Context, claimID string) error {
	return d.run("SettleClaim", func() error {
		return d.db.SettleClaim(ctx, claimID)
	})
}

func (d *DbWithMetrics) GetRewardClaims(ctx context.Context, entryID string, limit int64) (result []*model.RewardClaim, err error) {
	//nolint:errcheck
	d.run("GetRewardClaims", func() error {
		result, err = d.db.GetRewardClaims(ctx, entryID, limit)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
