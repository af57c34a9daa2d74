package testutil

import (
	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gagliardetto/solana-go"
)

func RandomAccountAddress() string {
	return solana.NewWallet().PublicKey().String()
}

// GenerateRewardDistributor returns an uncapped distributor of the given kind
// with fresh counters and random ids.
func GenerateRewardDistributor(kind types.DistributorKind) *model.RewardDistributor {
	d := &model.RewardDistributor{
		ID:                    gofakeit.UUID(),
		StakePoolID:           RandomAccountAddress(),
		RewardTokenID:         RandomAccountAddress(),
		RewardAmount:          gofakeit.Uint64()%1_000 + 1,
		RewardDurationSeconds: gofakeit.Uint64()%3_600 + 1,
		Kind:                  kind,
		SigningAuthority:      RandomAccountAddress(),
	}
	if kind == types.KindCustodian {
		d.TreasuryAccount = RandomAccountAddress()
	}
	return d
}

func GenerateRewardEntry(distributorID string) *model.RewardEntry {
	entry := model.NewRewardEntry(distributorID, RandomAccountAddress())
	entry.PayoutDestination = RandomAccountAddress()
	return entry
}
