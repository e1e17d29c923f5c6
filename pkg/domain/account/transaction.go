package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/miniatm/pkg/money"
	"github.com/google/uuid"
)

// Transaction is one append-only entry in an account's log. Amount is signed
// (negative for debits, zero for non-monetary entries such as a PIN change)
// and Balance snapshots the account balance after the operation.
type Transaction struct {
	ID      uuid.UUID
	Time    time.Time
	Note    string
	Amount  money.Money
	Balance money.Money
}

func newTransaction(note string, amount, balance money.Money) Transaction {
	return Transaction{
		ID:      uuid.New(),
		Time:    time.Now(),
		Note:    note,
		Amount:  amount,
		Balance: balance,
	}
}

// NewTransactionFromData creates a Transaction from raw data. It bypasses
// invariants and must only be used for snapshot restore and test fixtures.
func NewTransactionFromData(id uuid.UUID, at time.Time, note string, amount, balance money.Money) Transaction {
	return Transaction{
		ID:      id,
		Time:    at,
		Note:    note,
		Amount:  amount,
		Balance: balance,
	}
}

// String renders a statement line, e.g.
// "2025-01-02 15:04:05 - Deposited ₹500.00 | Balance: ₹500.00".
func (t Transaction) String() string {
	return fmt.Sprintf("%s - %s | Balance: %s",
		t.Time.Format("2006-01-02 15:04:05"), t.Note, t.Balance)
}
