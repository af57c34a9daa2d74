package types

import (
	"encoding/json"
	"fmt"
)

// DistributorKind selects how a reward distributor pays out rewards.
// It is persisted as a small integer so records written by other tools
// with unknown values still decode and fail at claim time instead.
type DistributorKind uint8

const (
	// KindIssuer mints new reward tokens under the distributor authority.
	KindIssuer DistributorKind = 0
	// KindCustodian transfers reward tokens out of a pre-funded treasury.
	KindCustodian DistributorKind = 1
)

func (k DistributorKind) String() string {
	switch k {
	case KindIssuer:
		return "issuer"
	case KindCustodian:
		return "custodian"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

func (k DistributorKind) IsValid() bool {
	return k == KindIssuer || k == KindCustodian
}

func ParseDistributorKind(s string) (DistributorKind, error) {
	switch s {
	case "issuer", "mint":
		return KindIssuer, nil
	case "custodian", "treasury":
		return KindCustodian, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDistributorKind, s)
	}
}

func (k DistributorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the kind name or its numeric value.
func (k *DistributorKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseDistributorKind(name)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}

	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDistributorKind, data)
	}
	*k = DistributorKind(n)
	return nil
}
