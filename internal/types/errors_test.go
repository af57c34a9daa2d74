package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoutError(t *testing.T) {
	cause := errors.New("authority check failed")
	err := fmt.Errorf("claim: %w", &PayoutError{Kind: KindIssuer, Err: cause})

	assert.ErrorIs(t, err, cause)

	var payoutErr *PayoutError
	require.ErrorAs(t, err, &payoutErr)
	assert.Equal(t, KindIssuer, payoutErr.Kind)
	assert.Contains(t, err.Error(), "issuer payout failed")
	assert.False(t, IsConfigurationError(err))
}

func TestIsConfigurationError(t *testing.T) {
	for _, err := range []error{ErrArithmeticOverflow, ErrDivisionByZero, ErrInvalidDistributorKind} {
		assert.True(t, IsConfigurationError(fmt.Errorf("wrapped: %w", err)), err.Error())
	}
	assert.False(t, IsConfigurationError(ErrRelationshipMismatch))
}

func TestParseDistributorKindErrors(t *testing.T) {
	kind, err := ParseDistributorKind("treasury")
	require.NoError(t, err)
	assert.Equal(t, KindCustodian, kind)

	kind, err = ParseDistributorKind("issuer")
	require.NoError(t, err)
	assert.Equal(t, KindIssuer, kind)

	_, err = ParseDistributorKind("burn")
	assert.ErrorIs(t, err, ErrInvalidDistributorKind)

	assert.Equal(t, "unknown(7)", DistributorKind(7).String())
	assert.False(t, DistributorKind(7).IsValid())
}
