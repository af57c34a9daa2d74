package custodyclient

import (
	"context"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
)

type LedgerWithMetrics struct {
	ledger payout.TokenLedger
}

func NewLedgerWithMetrics(ledger payout.TokenLedger) *LedgerWithMetrics {
	return &LedgerWithMetrics{ledger: ledger}
}

func (l *LedgerWithMetrics) MintTo(ctx context.Context, req payout.MintRequest) error {
	_, err := runWithMetrics("MintTo", func() (struct{}, error) {
		return struct{}{}, l.ledger.MintTo(ctx, req)
	})
	return err
}

func (l *LedgerWithMetrics) Transfer(ctx context.Context, req payout.TransferRequest) error {
	_, err := runWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, l.ledger.Transfer(ctx, req)
	})
	return err
}

func (l *LedgerWithMetrics) AvailableBalance(ctx context.Context, account string) (uint64, error) {
	return runWithMetrics("AvailableBalance", func() (uint64, error) {
		return l.ledger.AvailableBalance(ctx, account)
	})
}

func runWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	metrics.RecordCustodyClientLatency(time.Since(startTime), method, err != nil)
	return v, err
}
