package authority

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const distributorSeed = "reward-distributor"

// Authority is the opaque credential a distributor authorizes payouts with.
type Authority struct {
	address solana.PublicKey
	bump    uint8
}

func FromAddress(address solana.PublicKey) Authority {
	return Authority{address: address}
}

func (a Authority) Address() string {
	return a.address.String()
}

func (a Authority) Bump() uint8 {
	return a.bump
}

func (a Authority) IsZero() bool {
	return a.address.IsZero()
}

//go:generate mockery --name=Provider --output=../../tests/mocks --outpkg=mocks --filename=mock_authority_provider.go
type Provider interface {
	ForStakePool(stakePoolID string) (Authority, error)
}

// Deriver derives distributor authorities as program addresses of
// ["reward-distributor", stake pool] under a program id.
type Deriver struct {
	programID solana.PublicKey
}

func NewDeriver(programID string) (*Deriver, error) {
	pk, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %w", programID, err)
	}
	return &Deriver{programID: pk}, nil
}

func (d *Deriver) ForStakePool(stakePoolID string) (Authority, error) {
	pool, err := solana.PublicKeyFromBase58(stakePoolID)
	if err != nil {
		return Authority{}, fmt.Errorf("invalid stake pool id %q: %w", stakePoolID, err)
	}

	address, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte(distributorSeed), pool.Bytes()},
		d.programID,
	)
	if err != nil {
		return Authority{}, fmt.Errorf("failed to derive authority for stake pool %s: %w", stakePoolID, err)
	}

	return Authority{address: address, bump: bump}, nil
}
