package model

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardDistributor_Clone(t *testing.T) {
	var distributor RewardDistributor
	require.NoError(t, gofakeit.Struct(&distributor))

	maxSupply := uint64(1000)
	distributor.MaxSupply = &maxSupply

	clone := distributor.Clone()
	assert.Equal(t, &distributor, clone)

	// clones must not share the max supply pointer
	*clone.MaxSupply = 1
	clone.RewardsIssued++
	assert.Equal(t, uint64(1000), *distributor.MaxSupply)
	assert.NotEqual(t, distributor.RewardsIssued, clone.RewardsIssued)
}

func TestRewardDistributor_Cap(t *testing.T) {
	distributor := &RewardDistributor{}
	_, capped := distributor.Cap()
	assert.False(t, capped)

	maxSupply := uint64(300)
	distributor.MaxSupply = &maxSupply
	value, capped := distributor.Cap()
	assert.True(t, capped)
	assert.Equal(t, uint64(300), value)
}

func TestNewRewardEntry(t *testing.T) {
	entry := NewRewardEntry("distributor", "asset")
	assert.Equal(t, "distributor:asset", entry.ID)
	assert.Equal(t, uint64(DefaultMultiplier), entry.Multiplier)
	assert.Zero(t, entry.RewardSecondsReceived)
	assert.Zero(t, entry.RewardAmountReceived)
}
