package payout

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

// Custodian pays out of a pre-funded treasury account and can never pay
// more than the treasury currently holds.
type Custodian struct {
	ledger      TokenLedger
	treasury    string
	destination string
	authority   authority.Authority
}

func NewCustodian(ledger TokenLedger, treasury, destination string, auth authority.Authority) *Custodian {
	return &Custodian{
		ledger:      ledger,
		treasury:    treasury,
		destination: destination,
		authority:   auth,
	}
}

func (c *Custodian) Kind() types.DistributorKind {
	return types.KindCustodian
}

func (c *Custodian) Limit(ctx context.Context) (uint64, bool, error) {
	balance, err := c.ledger.AvailableBalance(ctx, c.treasury)
	if err != nil {
		return 0, true, &types.PayoutError{Kind: types.KindCustodian, Err: err}
	}
	return balance, true, nil
}

func (c *Custodian) Pay(ctx context.Context, amount uint64) error {
	err := c.ledger.Transfer(ctx, TransferRequest{
		Source:      c.treasury,
		Destination: c.destination,
		Authority:   c.authority.Address(),
		Amount:      amount,
	})
	if err != nil {
		return &types.PayoutError{Kind: types.KindCustodian, Err: err}
	}
	return nil
}
