package accrual

import (
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

var maxUint64 = sdkmath.NewUint(math.MaxUint64)

// checked operations work on unsigned 64-bit counters; the intermediate
// value is computed wide and rejected if it leaves the uint64 range.

func checkedAdd(a, b uint64) (uint64, error) {
	sum := sdkmath.NewUint(a).Add(sdkmath.NewUint(b))
	if sum.GT(maxUint64) {
		return 0, fmt.Errorf("%w: %d + %d", types.ErrArithmeticOverflow, a, b)
	}
	return sum.Uint64(), nil
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", types.ErrArithmeticOverflow, a, b)
	}
	return a - b, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	product := sdkmath.NewUint(a).Mul(sdkmath.NewUint(b))
	if product.GT(maxUint64) {
		return 0, fmt.Errorf("%w: %d * %d", types.ErrArithmeticOverflow, a, b)
	}
	return product.Uint64(), nil
}

func checkedDiv(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %d / 0", types.ErrDivisionByZero, a)
	}
	return a / b, nil
}
