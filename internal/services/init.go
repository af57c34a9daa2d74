package services

import (
	"context"
	"fmt"
	"math"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/babylonlabs-io/staking-reward-distributor/pkg"
	"github.com/rs/zerolog/log"
)

type InitRewardDistributorRequest struct {
	StakePoolID           string                `json:"stake_pool_id"`
	RewardTokenID         string                `json:"reward_token_id"`
	RewardAmount          uint64                `json:"reward_amount"`
	RewardDurationSeconds uint64                `json:"reward_duration_seconds"`
	Kind                  types.DistributorKind `json:"kind"`
	MaxSupply             *uint64               `json:"max_supply,omitempty"`
	TreasuryAccount       string                `json:"treasury_account,omitempty"`
}

func (r *InitRewardDistributorRequest) Validate() error {
	if r.RewardTokenID == "" {
		return fmt.Errorf("%w: reward token id is required", ErrInvalidDistributor)
	}
	if r.RewardDurationSeconds == 0 {
		return fmt.Errorf("%w: reward duration must be positive", ErrInvalidDistributor)
	}
	// counters are stored as int64
	if r.RewardAmount > math.MaxInt64 || r.RewardDurationSeconds > math.MaxInt64 {
		return fmt.Errorf("%w: reward amount and duration must not exceed %d", ErrInvalidDistributor, int64(math.MaxInt64))
	}
	if r.MaxSupply != nil && *r.MaxSupply > math.MaxInt64 {
		return fmt.Errorf("%w: max supply must not exceed %d", ErrInvalidDistributor, int64(math.MaxInt64))
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: %s", types.ErrInvalidDistributorKind, r.Kind)
	}
	if r.Kind == types.KindCustodian {
		if err := pkg.ValidateAccountAddress(r.TreasuryAccount); err != nil {
			return fmt.Errorf("%w: custodian distributors need a valid treasury account: %v", ErrInvalidDistributor, err)
		}
	}
	return nil
}

// InitRewardDistributor creates the distributor of a stake pool. Its id is the
// signing authority derived for the pool, so a pool has at most one distributor.
func (s *Service) InitRewardDistributor(
	ctx context.Context, req InitRewardDistributorRequest,
) (*model.RewardDistributor, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	auth, err := s.authority.ForStakePool(req.StakePoolID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDistributor, err)
	}

	distributor := &model.RewardDistributor{
		ID:                    auth.Address(),
		StakePoolID:           req.StakePoolID,
		RewardTokenID:         req.RewardTokenID,
		RewardAmount:          req.RewardAmount,
		RewardDurationSeconds: req.RewardDurationSeconds,
		Kind:                  req.Kind,
		MaxSupply:             req.MaxSupply,
		SigningAuthority:      auth.Address(),
	}
	if req.Kind == types.KindCustodian {
		distributor.TreasuryAccount = req.TreasuryAccount
	}

	if err := s.db.SaveNewRewardDistributor(ctx, distributor); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("reward_distributor_id", distributor.ID).
		Str("stake_pool_id", distributor.StakePoolID).
		Stringer("kind", distributor.Kind).
		Msg("reward distributor created")

	return distributor, nil
}

// InitRewardEntry returns the entry of the staked asset, creating it with the
// default multiplier when missing. A non empty destination replaces the
// stored payout destination.
func (s *Service) InitRewardEntry(
	ctx context.Context, distributorID, stakedAssetID, destination string,
) (*model.RewardEntry, error) {
	if destination != "" {
		if err := pkg.ValidateAccountAddress(destination); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidDestination, destination, err)
		}
	}

	distributor, err := s.db.GetRewardDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}

	stake, err := s.stake.GetStakeRecord(ctx, stakedAssetID)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %w", ErrStakeLedger, stakedAssetID, err)
	}
	if stake.StakePoolID != distributor.StakePoolID {
		return nil, fmt.Errorf(
			"%w: asset %s is staked in pool %s, distributor %s pays pool %s",
			types.ErrRelationshipMismatch, stakedAssetID, stake.StakePoolID, distributor.ID, distributor.StakePoolID,
		)
	}

	entry := model.NewRewardEntry(distributorID, stakedAssetID)
	entry.PayoutDestination = destination

	err = s.db.SaveNewRewardEntry(ctx, entry)
	if err == nil {
		log.Ctx(ctx).Info().
			Str("reward_entry_id", entry.ID).
			Str("reward_distributor_id", distributorID).
			Msg("reward entry created")
		return entry, nil
	}
	if !db.IsDuplicateKeyError(err) {
		return nil, err
	}

	existing, err := s.db.GetRewardEntry(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	if destination != "" && destination != existing.PayoutDestination {
		if err := s.db.UpdateRewardEntryPayoutDestination(ctx, existing.ID, destination); err != nil {
			return nil, err
		}
		existing.PayoutDestination = destination
	}
	return existing, nil
}
