package payout

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

// Executor moves reward tokens to a claimant.
type Executor interface {
	// Limit reports the largest amount Pay can currently deliver.
	// limited is false when the executor is not bounded by a balance.
	Limit(ctx context.Context) (limit uint64, limited bool, err error)
	Pay(ctx context.Context, amount uint64) error
	Kind() types.DistributorKind
}

// ForDistributor selects the payout mechanism configured on the distributor.
func ForDistributor(
	distributor *model.RewardDistributor,
	ledger TokenLedger,
	auth authority.Authority,
	destination string,
) (Executor, error) {
	switch distributor.Kind {
	case types.KindIssuer:
		return NewIssuer(ledger, distributor.RewardTokenID, destination, auth), nil
	case types.KindCustodian:
		if distributor.TreasuryAccount == "" {
			return nil, fmt.Errorf("custodian distributor %s has no treasury account", distributor.ID)
		}
		return NewCustodian(ledger, distributor.TreasuryAccount, destination, auth), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidDistributorKind, distributor.Kind)
	}
}
