package services

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/clients/stakeclient"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/queue"
	"github.com/jonboulle/clockwork"
)

var (
	ErrNoPayoutDestination = errors.New("no payout destination")
	ErrInvalidDestination  = errors.New("invalid payout destination")
	ErrAuthorityMismatch   = errors.New("signing authority does not match the stake pool")
	ErrInvalidDistributor  = errors.New("invalid reward distributor")
	ErrStakeLedger         = errors.New("stake ledger request failed")
)

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	stake     stakeclient.StakeTimeProvider
	ledger    payout.TokenLedger
	authority authority.Provider
	publisher queue.EventPublisher
	clock     clockwork.Clock
	locks     *recordLocks
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	stake stakeclient.StakeTimeProvider,
	ledger payout.TokenLedger,
	authority authority.Provider,
	publisher queue.EventPublisher,
) *Service {
	return &Service{
		cfg:       cfg,
		db:        db,
		stake:     stake,
		ledger:    ledger,
		authority: authority,
		publisher: publisher,
		clock:     clockwork.NewRealClock(),
		locks:     newRecordLocks(),
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) GetRewardDistributor(ctx context.Context, id string) (*model.RewardDistributor, error) {
	return s.db.GetRewardDistributor(ctx, id)
}

func (s *Service) GetRewardEntry(ctx context.Context, id string) (*model.RewardEntry, error) {
	return s.db.GetRewardEntry(ctx, id)
}

func (s *Service) GetRewardClaims(ctx context.Context, entryID string, limit int64) ([]*model.RewardClaim, error) {
	if _, err := s.db.GetRewardEntry(ctx, entryID); err != nil {
		return nil, err
	}
	return s.db.GetRewardClaims(ctx, entryID, limit)
}
