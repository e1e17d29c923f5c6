// Package service provides the business operations the interaction layer
// calls: account creation, login, deposits, withdrawals, transfers, PIN
// changes, and statement queries. Every mutating operation snapshots the
// ledger to durable storage afterwards.
package service

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/miniatm/pkg/domain/account"
	"github.com/amirasaad/miniatm/pkg/ledger"
	"github.com/amirasaad/miniatm/pkg/money"
	"github.com/amirasaad/miniatm/pkg/storage"
)

// ErrInvalidPIN is returned by Login when the PIN does not match.
var ErrInvalidPIN = errors.New("incorrect PIN")

// BankService wires the ledger to its snapshot store. A failed save is
// logged as a warning and not surfaced to the caller: the in-memory state
// stays authoritative and the last successful save wins.
type BankService struct {
	ledger *ledger.Ledger
	store  *storage.Store
	logger *slog.Logger
}

// NewBankService creates a service over the given ledger and store.
func NewBankService(l *ledger.Ledger, store *storage.Store, logger *slog.Logger) *BankService {
	return &BankService{
		ledger: l,
		store:  store,
		logger: logger,
	}
}

// CreateAccount registers a new account and persists the ledger.
func (s *BankService) CreateAccount(name, pin string) *account.Account {
	a := s.ledger.CreateAccount(name, pin)
	s.logger.Info("account created", "number", a.Number())
	s.persist()
	return a
}

// Login resolves the account and verifies the PIN. It mutates nothing:
// a wrong PIN returns ErrInvalidPIN, an unknown number returns
// ledger.ErrAccountNotFound.
func (s *BankService) Login(number int64, pin string) (*account.Account, error) {
	a, err := s.ledger.Get(number)
	if err != nil {
		return nil, err
	}
	if !a.VerifyPIN(pin) {
		return nil, ErrInvalidPIN
	}
	return a, nil
}

// Exists reports whether an account number is registered.
func (s *BankService) Exists(number int64) bool {
	return s.ledger.Exists(number)
}

// Deposit credits the account and persists the ledger.
func (s *BankService) Deposit(number int64, amount money.Money) error {
	if err := s.ledger.Deposit(number, amount); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Withdraw debits the account and persists the ledger.
func (s *BankService) Withdraw(number int64, amount money.Money) error {
	if err := s.ledger.Withdraw(number, amount); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Transfer moves funds between two accounts atomically and persists the
// ledger.
func (s *BankService) Transfer(from, to int64, amount money.Money) error {
	if err := s.ledger.Transfer(from, to, amount); err != nil {
		return err
	}
	s.persist()
	return nil
}

// ChangePIN replaces the account PIN and persists the ledger. The new PIN's
// 4-digit format is validated by the interaction layer.
func (s *BankService) ChangePIN(number int64, newPIN string) error {
	if err := s.ledger.ChangePIN(number, newPIN); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Balance returns the account's current balance.
func (s *BankService) Balance(number int64) (money.Money, error) {
	a, err := s.ledger.Get(number)
	if err != nil {
		return money.Zero(), err
	}
	return a.Balance(), nil
}

// Transactions returns the account's log entries, most recent last.
func (s *BankService) Transactions(number int64) ([]account.Transaction, error) {
	a, err := s.ledger.Get(number)
	if err != nil {
		return nil, err
	}
	return a.Transactions(), nil
}

// ListAccounts returns all accounts ordered by number.
func (s *BankService) ListAccounts() []*account.Account {
	return s.ledger.List()
}

// Close performs the final save on shutdown and returns any save error so
// the caller can report it.
func (s *BankService) Close() error {
	return s.store.Save(s.ledger.Snapshot())
}

func (s *BankService) persist() {
	if err := s.store.Save(s.ledger.Snapshot()); err != nil {
		s.logger.Warn("failed to save bank data, in-memory state remains authoritative",
			"path", s.store.Path(), "error", err)
	}
}
