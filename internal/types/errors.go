package types

import (
	"errors"
	"fmt"
)

var (
	ErrArithmeticOverflow     = errors.New("arithmetic overflow")
	ErrDivisionByZero         = errors.New("division by zero")
	ErrInvalidDistributorKind = errors.New("invalid reward distributor kind")
	ErrRelationshipMismatch   = errors.New("records do not belong to the same reward distributor")
)

// PayoutError wraps a failure reported by the token ledger while paying out a claim.
type PayoutError struct {
	Kind DistributorKind
	Err  error
}

func (e *PayoutError) Error() string {
	return fmt.Sprintf("%s payout failed: %v", e.Kind, e.Err)
}

func (e *PayoutError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is caused by a misconfigured
// distributor or entry rather than by an external collaborator.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrArithmeticOverflow) ||
		errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrInvalidDistributorKind)
}
