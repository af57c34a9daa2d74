package stakeclient

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

type StakeClientWithMetrics struct {
	client StakeTimeProvider
}

func NewStakeClientWithMetrics(client StakeTimeProvider) *StakeClientWithMetrics {
	return &StakeClientWithMetrics{client: client}
}

func (s *StakeClientWithMetrics) GetStakeRecord(ctx context.Context, stakedAssetID string) (*types.StakeRecord, error) {
	startTime := time.Now()
	record, err := s.client.GetStakeRecord(ctx, stakedAssetID)
	metrics.RecordStakeClientLatency(time.Since(startTime), "GetStakeRecord", err != nil)
	return record, err
}
