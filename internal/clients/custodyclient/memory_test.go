package custodyclient

import (
	"math"
	"testing"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerMint(t *testing.T) {
	ctx := t.Context()
	ledger := NewMemoryLedger()
	ledger.SetMintAuthority("tok", "auth")

	require.NoError(t, ledger.MintTo(ctx, payout.MintRequest{Token: "tok", Destination: "user", Authority: "auth", Amount: 10}))
	require.NoError(t, ledger.MintTo(ctx, payout.MintRequest{Token: "tok", Destination: "user", Authority: "auth", Amount: 5}))
	assert.Equal(t, uint64(15), ledger.Balance("user"))

	err := ledger.MintTo(ctx, payout.MintRequest{Token: "tok", Destination: "user", Authority: "intruder", Amount: 1})
	require.ErrorIs(t, err, ErrUnauthorized)

	err = ledger.MintTo(ctx, payout.MintRequest{Token: "other", Destination: "user", Authority: "auth", Amount: 1})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uint64(15), ledger.Balance("user"))
}

func TestMemoryLedgerTransfer(t *testing.T) {
	ctx := t.Context()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.Fund("treasury", "auth", 50))

	balance, err := ledger.AvailableBalance(ctx, "treasury")
	require.NoError(t, err)
	assert.Equal(t, uint64(50), balance)

	require.NoError(t, ledger.Transfer(ctx, payout.TransferRequest{Source: "treasury", Destination: "user", Authority: "auth", Amount: 20}))
	assert.Equal(t, uint64(30), ledger.Balance("treasury"))
	assert.Equal(t, uint64(20), ledger.Balance("user"))

	err = ledger.Transfer(ctx, payout.TransferRequest{Source: "treasury", Destination: "user", Authority: "auth", Amount: 31})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	err = ledger.Transfer(ctx, payout.TransferRequest{Source: "treasury", Destination: "user", Authority: "intruder", Amount: 1})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, uint64(30), ledger.Balance("treasury"))
}

func TestMemoryLedgerOverflow(t *testing.T) {
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.Fund("user", "owner", math.MaxUint64))
	require.ErrorIs(t, ledger.Fund("user", "owner", 1), ErrBalanceOverflow)
	assert.Equal(t, uint64(math.MaxUint64), ledger.Balance("user"))
}

func TestMemoryLedgerProvision(t *testing.T) {
	ctx := t.Context()
	ledger := NewMemoryLedger()

	distributors := []*model.RewardDistributor{
		{ID: "a", Kind: types.KindIssuer, RewardTokenID: "tok", SigningAuthority: "auth-a"},
		{ID: "b", Kind: types.KindCustodian, RewardTokenID: "tok", SigningAuthority: "auth-b", TreasuryAccount: "treasury-b"},
	}
	require.NoError(t, ledger.Provision(distributors, 100))

	require.NoError(t, ledger.MintTo(ctx, payout.MintRequest{Token: "tok", Destination: "user", Authority: "auth-a", Amount: 1}))
	assert.Equal(t, uint64(100), ledger.Balance("treasury-b"))

	require.NoError(t, ledger.Transfer(ctx, payout.TransferRequest{Source: "treasury-b", Destination: "user", Authority: "auth-b", Amount: 40}))

	// provisioning again does not refill a known treasury
	require.NoError(t, ledger.Provision(distributors, 100))
	assert.Equal(t, uint64(60), ledger.Balance("treasury-b"))
	assert.Equal(t, uint64(41), ledger.Balance("user"))
}
