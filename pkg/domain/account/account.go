// Package account defines the Account aggregate: one customer's balance,
// PIN credential, and append-only transaction log.
//
// Invariants:
//   - The balance can never be negative.
//   - Every balance change appends exactly one transaction log entry in the
//     same synchronous step.
//   - The account number is immutable once assigned by the ledger.
package account

import (
	"errors"
	"fmt"

	"github.com/amirasaad/miniatm/pkg/money"
)

var (
	// ErrInvalidAmount is returned when a transaction amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds
	// the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Account represents a bank account. All mutations go through the operation
// methods; the balance is never assigned directly.
//
// Account itself is not safe for concurrent use; the owning ledger
// serializes access.
type Account struct {
	number       int64
	name         string
	pin          credential
	balance      money.Money
	transactions []Transaction
}

// New creates an account with a zero balance and records the opening entry.
// Inputs are pre-validated by the caller (the ledger assigns the number, the
// interaction layer checks the PIN format).
func New(number int64, name, pin string) *Account {
	a := &Account{
		number: number,
		name:   name,
		pin:    credential(pin),
	}
	a.record("Account created.", money.Zero())
	return a
}

// Hydrate reconstructs an account from snapshot data. It bypasses operation
// invariants and must only be used for snapshot restore and test fixtures.
func Hydrate(number int64, name, pin string, balance money.Money, transactions []Transaction) *Account {
	return &Account{
		number:       number,
		name:         name,
		pin:          credential(pin),
		balance:      balance,
		transactions: transactions,
	}
}

// Number returns the immutable account number.
func (a *Account) Number() int64 { return a.number }

// Name returns the account holder's display name.
func (a *Account) Name() string { return a.name }

// Balance returns the current balance.
func (a *Account) Balance() money.Money { return a.balance }

// PIN returns the stored credential for snapshot serialization only.
func (a *Account) PIN() string { return string(a.pin) }

// VerifyPIN reports whether the input matches the stored PIN. Attempt
// counting is a session concern and is not tracked here.
func (a *Account) VerifyPIN(input string) bool {
	return a.pin.verify(input)
}

// ChangePIN replaces the stored PIN and records a log entry. The caller is
// responsible for validating the 4-digit format.
func (a *Account) ChangePIN(newPIN string) {
	a.pin = credential(newPIN)
	a.record("PIN changed.", money.Zero())
}

// Deposit adds the amount to the balance and records a log entry.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record(fmt.Sprintf("Deposited %s", amount), amount)
	return nil
}

// Withdraw subtracts the amount from the balance and records a log entry.
// The balance never goes negative.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Subtract(amount)
	a.record(fmt.Sprintf("Withdrawn %s", amount), amount.Negate())
	return nil
}

// TransferOut debits the amount as the sending side of a transfer, recording
// the counterparty account number.
func (a *Account) TransferOut(amount money.Money, to int64) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Subtract(amount)
	a.record(fmt.Sprintf("Transferred %s to A/C %d", amount, to), amount.Negate())
	return nil
}

// TransferIn credits the amount as the receiving side of a transfer. There
// is no upper bound check; arriving money cannot be insufficient.
func (a *Account) TransferIn(amount money.Money, from int64) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record(fmt.Sprintf("Received %s from A/C %d", amount, from), amount)
	return nil
}

// Transactions returns a copy of the transaction log, oldest first.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// record appends a log entry with the post-operation balance snapshot.
func (a *Account) record(note string, amount money.Money) {
	a.transactions = append(a.transactions, newTransaction(note, amount, a.balance))
}

// String renders the brief single-line account summary.
func (a *Account) String() string {
	return fmt.Sprintf("A/C %d | %s | Balance: %s", a.number, a.name, a.balance)
}
