package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/utils/poller"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// StartClaimPoller periodically claims every entry that has a payout destination.
func (s *Service) StartClaimPoller(ctx context.Context) {
	if !s.cfg.Poller.Enabled {
		log.Info().Msg("claim poller is disabled")
		return
	}

	claimPoller := poller.NewPoller(
		"claims",
		s.cfg.Poller.ClaimInterval,
		metrics.RecordPollerDuration("claims", s.claimPayableEntries),
	)
	go claimPoller.Start(ctx)
}

// claimPayableEntries claims distributors in parallel. Entries of one
// distributor are claimed one after another since they share its lock.
func (s *Service) claimPayableEntries(ctx context.Context) error {
	distributors, err := s.db.FindRewardDistributors(ctx)
	if err != nil {
		return fmt.Errorf("failed to find reward distributors: %w", err)
	}

	p := pool.New().
		WithMaxGoroutines(s.cfg.Poller.MaxConcurrentClaims).
		WithContext(ctx)
	for _, distributor := range distributors {
		p.Go(func(ctx context.Context) error {
			return s.claimDistributorEntries(ctx, distributor)
		})
	}

	return p.Wait()
}

func (s *Service) claimDistributorEntries(ctx context.Context, distributor *model.RewardDistributor) error {
	entries, err := s.db.FindPayableRewardEntries(ctx, distributor.ID)
	if err != nil {
		return fmt.Errorf("failed to find payable entries of %s: %w", distributor.ID, err)
	}

	var (
		errs    []error
		claimed int
	)
	for _, entry := range entries {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		outcome, err := s.Claim(ctx, ClaimRequest{EntryID: entry.ID})
		if err != nil {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("reward_entry_id", entry.ID).
				Msg("periodic claim failed")
			errs = append(errs, fmt.Errorf("entry %s: %w", entry.ID, err))
			continue
		}
		if outcome.ClaimID != "" {
			claimed++
		}
	}

	log.Ctx(ctx).Debug().
		Str("reward_distributor_id", distributor.ID).
		Int("entries", len(entries)).
		Int("claimed", claimed).
		Msg("periodic claims finished")

	return errors.Join(errs...)
}
