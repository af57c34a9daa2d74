package payout

import (
	"context"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/authority"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

// Issuer mints new reward tokens, it is bounded only by the distributor cap.
type Issuer struct {
	ledger      TokenLedger
	token       string
	destination string
	authority   authority.Authority
}

func NewIssuer(ledger TokenLedger, token, destination string, auth authority.Authority) *Issuer {
	return &Issuer{
		ledger:      ledger,
		token:       token,
		destination: destination,
		authority:   auth,
	}
}

func (i *Issuer) Kind() types.DistributorKind {
	return types.KindIssuer
}

func (i *Issuer) Limit(context.Context) (uint64, bool, error) {
	return 0, false, nil
}

func (i *Issuer) Pay(ctx context.Context, amount uint64) error {
	err := i.ledger.MintTo(ctx, MintRequest{
		Token:       i.token,
		Destination: i.destination,
		Authority:   i.authority.Address(),
		Amount:      amount,
	})
	if err != nil {
		return &types.PayoutError{Kind: types.KindIssuer, Err: err}
	}
	return nil
}
