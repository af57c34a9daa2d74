package payout

import (
	"context"
)

type MintRequest struct {
	Token       string `json:"token"`
	Destination string `json:"destination"`
	Authority   string `json:"authority"`
	Amount      uint64 `json:"amount"`
}

type TransferRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Authority   string `json:"authority"`
	Amount      uint64 `json:"amount"`
}

// TokenLedger is the custody subsystem that owns token balances.
//
//go:generate mockery --name=TokenLedger --output=../../tests/mocks --outpkg=mocks --filename=mock_token_ledger.go
type TokenLedger interface {
	MintTo(ctx context.Context, req MintRequest) error
	Transfer(ctx context.Context, req TransferRequest) error
	AvailableBalance(ctx context.Context, account string) (uint64, error)
}
