package services

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/accrual"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/queue"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/babylonlabs-io/staking-reward-distributor/pkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ClaimRequest struct {
	EntryID string
	// Destination overrides the payout destination stored on the entry
	Destination string
}

type ClaimOutcome struct {
	// ClaimID is empty when nothing was committed
	ClaimID       string `json:"claim_id,omitempty"`
	DistributorID string `json:"reward_distributor_id"`
	EntryID       string `json:"reward_entry_id"`
	Destination   string `json:"destination"`
	accrual.Outcome
}

// Claim pays the entry what it accrued since its last claim. The new counters
// are reserved in the database before paying and released if the payout
// fails. Claims against the same distributor are serialized in process.
func (s *Service) Claim(ctx context.Context, req ClaimRequest) (result *ClaimOutcome, err error) {
	startTime := s.clock.Now()
	defer func() {
		metrics.RecordClaimDuration(s.clock.Since(startTime), err != nil)
	}()

	log := log.Ctx(ctx).With().Str("entry_id", req.EntryID).Logger()

	entry, err := s.db.GetRewardEntry(ctx, req.EntryID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lockClaim(entry.RewardDistributorID, entry.ID)
	defer unlock()

	// reload under the lock, counters may have moved while waiting
	distributor, err := s.db.GetRewardDistributor(ctx, entry.RewardDistributorID)
	if err != nil {
		return nil, err
	}
	if entry, err = s.db.GetRewardEntry(ctx, req.EntryID); err != nil {
		return nil, err
	}

	destination, err := s.payoutDestination(req, entry)
	if err != nil {
		return nil, err
	}

	stake, err := s.stake.GetStakeRecord(ctx, entry.StakedAssetID)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrStakeLedger, entry.StakedAssetID, err)
	}
	if stake.StakePoolID != distributor.StakePoolID {
		return nil, fmt.Errorf(
			"%w: asset %s is staked in pool %s, distributor %s pays pool %s",
			types.ErrRelationshipMismatch, entry.StakedAssetID, stake.StakePoolID, distributor.ID, distributor.StakePoolID,
		)
	}

	auth, err := s.signingAuthority(distributor)
	if err != nil {
		return nil, err
	}

	result = &ClaimOutcome{
		DistributorID: distributor.ID,
		EntryID:       entry.ID,
		Destination:   destination,
	}

	// guards run before the payout is resolved, a claim with nothing owed
	// succeeds whatever the payout configuration
	_, skip, err := accrual.Compute(distributor, entry, stake.TotalStakeSeconds)
	if err != nil {
		s.recordFailedClaim(distributor)
		return nil, err
	}
	if skip != accrual.SkipNone {
		result.Outcome = accrual.Outcome{
			Skip:                  skip,
			Kind:                  distributor.Kind,
			TotalStakeSeconds:     stake.TotalStakeSeconds,
			RewardsIssued:         distributor.RewardsIssued,
			RewardAmountReceived:  entry.RewardAmountReceived,
			RewardSecondsReceived: entry.RewardSecondsReceived,
		}
		s.recordUnchangedClaim(log, &result.Outcome)
		return result, nil
	}

	executor, err := payout.ForDistributor(distributor, s.ledger, auth, destination)
	if err != nil {
		s.recordFailedClaim(distributor)
		return nil, err
	}

	outcome, err := accrual.Settle(ctx, distributor, entry, stake.TotalStakeSeconds, executor)
	if err != nil {
		s.recordFailedClaim(distributor)
		log.Warn().Err(err).Str("reward_distributor_id", distributor.ID).Msg("claim failed")
		return nil, err
	}
	result.Outcome = *outcome

	if !outcome.Changed() {
		s.recordUnchangedClaim(log, outcome)
		return result, nil
	}

	// the counters are reserved before paying, a concurrent claim on the same
	// records from any process fails here with nothing paid
	claim := s.newClaimRecord(distributor, entry, destination, outcome)
	if err := s.db.ReserveClaim(ctx, claim); err != nil {
		s.recordFailedClaim(distributor)
		return nil, fmt.Errorf("failed to reserve claim %s: %w", claim.ID, err)
	}

	if err := accrual.Pay(ctx, executor, outcome); err != nil {
		s.recordFailedClaim(distributor)
		s.releaseClaim(ctx, claim)
		log.Warn().Err(err).Str("claim_id", claim.ID).Msg("claim payout failed")
		return nil, err
	}

	if err := s.db.SettleClaim(context.WithoutCancel(ctx), claim.ID); err != nil {
		// paid and counted, only the journal status is behind
		metrics.IncClaimLeftPending("settle")
		log.Error().Err(err).Str("claim_id", claim.ID).Msg("failed to settle a paid claim")
	} else {
		claim.Status = model.ClaimStatusSettled
	}
	outcome.Apply(distributor, entry)

	result.ClaimID = claim.ID
	metrics.RecordClaim(outcome.Kind.String(), metrics.ClaimPaid, outcome.Amount)
	if outcome.Clamp != accrual.ClampNone {
		metrics.RecordClaimClamp(string(outcome.Clamp))
	}

	log.Info().
		Str("claim_id", claim.ID).
		Str("reward_distributor_id", distributor.ID).
		Uint64("amount", outcome.Amount).
		Uint64("seconds_credited", outcome.SecondsCredited).
		Str("clamp", string(outcome.Clamp)).
		Msg("reward claimed")

	if err := s.publisher.PublishRewardClaimed(ctx, queue.NewRewardClaimedEvent(claim)); err != nil {
		log.Warn().Err(err).Str("claim_id", claim.ID).Msg("failed to publish reward claimed event")
	}

	return result, nil
}

// releaseClaim gives back the counters of a reserved claim whose payout
// failed. If that fails too the entry stays credited without being paid.
func (s *Service) releaseClaim(ctx context.Context, claim *model.RewardClaim) {
	err := s.db.ReleaseClaim(context.WithoutCancel(ctx), claim)
	if err == nil {
		return
	}

	metrics.IncClaimLeftPending("release")
	log.Ctx(ctx).Error().
		Err(err).
		Str("claim_id", claim.ID).
		Str("reward_distributor_id", claim.RewardDistributorID).
		Str("reward_entry_id", claim.RewardEntryID).
		Uint64("amount", claim.Amount).
		Uint64("seconds_credited", claim.SecondsCredited).
		Msg("failed to release an unpaid claim")
}

func (s *Service) recordUnchangedClaim(log zerolog.Logger, outcome *accrual.Outcome) {
	label := metrics.ClaimNoop
	if outcome.Skipped() {
		label = metrics.ClaimSkipped
	}
	metrics.RecordClaim(outcome.Kind.String(), label, 0)
	log.Debug().
		Str("skip", string(outcome.Skip)).
		Uint64("total_stake_seconds", outcome.TotalStakeSeconds).
		Msg("nothing to claim")
}

func (s *Service) payoutDestination(req ClaimRequest, entry *model.RewardEntry) (string, error) {
	destination := req.Destination
	if destination == "" {
		destination = entry.PayoutDestination
	}
	if destination == "" {
		return "", fmt.Errorf("%w for entry %s", ErrNoPayoutDestination, entry.ID)
	}
	if err := pkg.ValidateAccountAddress(destination); err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidDestination, destination, err)
	}
	return destination, nil
}

// signingAuthority derives the authority of the distributor and checks it
// against the one recorded when the distributor was created.
func (s *Service) signingAuthority(distributor *model.RewardDistributor) (authority.Authority, error) {
	auth, err := s.authority.ForStakePool(distributor.StakePoolID)
	if err != nil {
		return authority.Authority{}, err
	}
	if auth.Address() != distributor.SigningAuthority {
		return authority.Authority{}, fmt.Errorf(
			"%w: distributor %s records %s, derived %s",
			ErrAuthorityMismatch, distributor.ID, distributor.SigningAuthority, auth.Address(),
		)
	}
	return auth, nil
}

func (s *Service) newClaimRecord(
	distributor *model.RewardDistributor,
	entry *model.RewardEntry,
	destination string,
	outcome *accrual.Outcome,
) *model.RewardClaim {
	return &model.RewardClaim{
		ID:                        uuid.NewString(),
		RewardDistributorID:       distributor.ID,
		RewardEntryID:             entry.ID,
		StakedAssetID:             entry.StakedAssetID,
		Destination:               destination,
		Kind:                      outcome.Kind,
		TotalStakeSeconds:         outcome.TotalStakeSeconds,
		Amount:                    outcome.Amount,
		SecondsCredited:           outcome.SecondsCredited,
		ClampReason:               string(outcome.Clamp),
		PrevRewardsIssued:         distributor.RewardsIssued,
		PrevRewardSecondsReceived: entry.RewardSecondsReceived,
		PrevRewardAmountReceived:  entry.RewardAmountReceived,
		RewardsIssued:             outcome.RewardsIssued,
		RewardSecondsReceived:     outcome.RewardSecondsReceived,
		RewardAmountReceived:      outcome.RewardAmountReceived,
		ClaimedAt:                 s.clock.Now().UTC(),
		Status:                    model.ClaimStatusPending,
	}
}

func (s *Service) recordFailedClaim(distributor *model.RewardDistributor) {
	metrics.RecordClaim(distributor.Kind.String(), metrics.ClaimFailed, 0)
}
