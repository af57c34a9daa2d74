package custodyclient

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/db/model"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/payout"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/types"
)

var (
	ErrUnauthorized        = errors.New("authority is not allowed to move these tokens")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// MemoryLedger is an in-process TokenLedger. Balances are keyed by account;
// a token can only be minted by its registered mint authority and an
// account can only be debited by its owner.
type MemoryLedger struct {
	mu              sync.Mutex
	balances        map[string]uint64
	mintAuthorities map[string]string
	owners          map[string]string
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances:        make(map[string]uint64),
		mintAuthorities: make(map[string]string),
		owners:          make(map[string]string),
	}
}

func (l *MemoryLedger) SetMintAuthority(token, authority string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mintAuthorities[token] = authority
}

// Fund credits amount to account and records owner as the only authority
// able to debit it.
func (l *MemoryLedger) Fund(account, owner string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.credit(account, amount); err != nil {
		return err
	}
	l.owners[account] = owner
	return nil
}

// Provision registers each distributor authority on the ledger: issuers
// become mint authority of their reward token and custodian treasuries are
// funded with treasuryBalance. Treasuries already known are left untouched.
func (l *MemoryLedger) Provision(distributors []*model.RewardDistributor, treasuryBalance uint64) error {
	for _, d := range distributors {
		switch d.Kind {
		case types.KindIssuer:
			l.SetMintAuthority(d.RewardTokenID, d.SigningAuthority)
		case types.KindCustodian:
			if l.isOwned(d.TreasuryAccount) {
				continue
			}
			if err := l.Fund(d.TreasuryAccount, d.SigningAuthority, treasuryBalance); err != nil {
				return fmt.Errorf("failed to fund treasury of %s: %w", d.ID, err)
			}
		}
	}
	return nil
}

func (l *MemoryLedger) isOwned(account string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.owners[account]
	return ok
}

func (l *MemoryLedger) Balance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

func (l *MemoryLedger) MintTo(ctx context.Context, req payout.MintRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	authority, ok := l.mintAuthorities[req.Token]
	if !ok || authority != req.Authority {
		return fmt.Errorf("%w: mint of %s by %s", ErrUnauthorized, req.Token, req.Authority)
	}
	return l.credit(req.Destination, req.Amount)
}

func (l *MemoryLedger) Transfer(ctx context.Context, req payout.TransferRequest) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.owners[req.Source] != req.Authority {
		return fmt.Errorf("%w: debit of %s by %s", ErrUnauthorized, req.Source, req.Authority)
	}
	balance := l.balances[req.Source]
	if balance < req.Amount {
		return fmt.Errorf("%w: %s holds %d, %d requested", ErrInsufficientBalance, req.Source, balance, req.Amount)
	}
	if err := l.credit(req.Destination, req.Amount); err != nil {
		return err
	}
	l.balances[req.Source] = balance - req.Amount
	return nil
}

func (l *MemoryLedger) AvailableBalance(ctx context.Context, account string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account], nil
}

func (l *MemoryLedger) credit(account string, amount uint64) error {
	balance := l.balances[account]
	if balance > math.MaxUint64-amount {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, account)
	}
	l.balances[account] = balance + amount
	return nil
}
