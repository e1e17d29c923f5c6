// Package ledger defines the Ledger aggregate: the owning collection of all
// accounts plus the account number allocator.
//
// Invariants:
//   - Every account number ever issued is unique; the allocator never
//     decreases, including across a snapshot save/load cycle.
//   - A transfer conserves money: the sum of the two balances is unchanged,
//     and a failed transfer mutates neither account.
//
// A single mutex serializes every mutating operation and the snapshot
// export, so validate + mutate + log always completes as one unit even if a
// future caller drives the ledger from more than one goroutine.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/amirasaad/miniatm/pkg/domain/account"
	"github.com/amirasaad/miniatm/pkg/money"
)

// FirstAccountNumber is the number assigned to the first account created in
// a fresh ledger.
const FirstAccountNumber = 1001001001

var (
	// ErrAccountNotFound is returned when an account number resolves to no
	// account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrSameAccount is returned when a transfer names the same account on
	// both sides.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)

// Ledger owns all accounts and allocates their numbers.
type Ledger struct {
	mu         sync.Mutex
	nextNumber int64
	accounts   map[int64]*account.Account
}

// New creates an empty ledger with the allocator at its starting value.
func New() *Ledger {
	return &Ledger{
		nextNumber: FirstAccountNumber,
		accounts:   make(map[int64]*account.Account),
	}
}

// CreateAccount allocates the next account number, registers a fresh account
// under it, and returns the account. Input format validation (4-digit PIN,
// trimmed name) is the caller's responsibility.
func (l *Ledger) CreateAccount(name, pin string) *account.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	number := l.nextNumber
	l.nextNumber++
	a := account.New(number, name, pin)
	l.accounts[number] = a
	return a
}

// Get resolves an account by number.
func (l *Ledger) Get(number int64) (*account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// Exists reports whether an account number is registered.
func (l *Ledger) Exists(number int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.accounts[number]
	return ok
}

// List returns all accounts ordered by account number.
func (l *Ledger) List() []*account.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*account.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Len returns the number of registered accounts.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.accounts)
}

// Deposit credits an account inside the ledger's critical section.
func (l *Ledger) Deposit(number int64, amount money.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	return a.Deposit(amount)
}

// Withdraw debits an account inside the ledger's critical section.
func (l *Ledger) Withdraw(number int64, amount money.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	return a.Withdraw(amount)
}

// ChangePIN replaces an account's PIN inside the ledger's critical section.
// The caller validates the 4-digit format.
func (l *Ledger) ChangePIN(number int64, newPIN string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	a.ChangePIN(newPIN)
	return nil
}

// Transfer moves the amount between two accounts inside one critical
// section. All validation happens before either side is touched: both
// accounts must exist, they must differ, the amount must be positive, and
// the source must hold sufficient funds. On success the source is debited
// and the destination credited with matching log entries, so the sum of the
// two balances is conserved; on failure neither account changes.
func (l *Ledger) Transfer(from, to int64, amount money.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from == to {
		return ErrSameAccount
	}
	src, ok := l.accounts[from]
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := l.accounts[to]
	if !ok {
		return ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return account.ErrInvalidAmount
	}
	if amount.GreaterThan(src.Balance()) {
		return account.ErrInsufficientFunds
	}

	// Validation above guarantees both legs succeed; a debit without the
	// matching credit would break conservation.
	if err := src.TransferOut(amount, to); err != nil {
		return err
	}
	return dst.TransferIn(amount, from)
}
