package accrual

import (
	"math"
	"testing"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		v, err := checkedAdd(math.MaxUint64-1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), v)

		_, err = checkedAdd(math.MaxUint64, 1)
		assert.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
	t.Run("sub", func(t *testing.T) {
		v, err := checkedSub(10, 10)
		require.NoError(t, err)
		assert.Zero(t, v)

		_, err = checkedSub(9, 10)
		assert.ErrorIs(t, err, types.ErrArithmeticOverflow)
	})
	t.Run("mul", func(t *testing.T) {
		v, err := checkedMul(1<<32-1, 1<<32+1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), v)

		_, err = checkedMul(1<<32, 1<<32)
		assert.ErrorIs(t, err, types.ErrArithmeticOverflow)

		v, err = checkedMul(math.MaxUint64, 0)
		require.NoError(t, err)
		assert.Zero(t, v)
	})
	t.Run("div truncates", func(t *testing.T) {
		v, err := checkedDiv(25, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), v)

		_, err = checkedDiv(25, 0)
		assert.ErrorIs(t, err, types.ErrDivisionByZero)
	})
}
