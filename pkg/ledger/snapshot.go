package ledger

import (
	"fmt"
	"time"

	"github.com/amirasaad/miniatm/pkg/domain/account"
	"github.com/amirasaad/miniatm/pkg/storage"
)

// Snapshot exports the full ledger state, including the account number
// allocator, as a storage snapshot.
func (l *Ledger) Snapshot() storage.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := storage.Snapshot{
		Version:    storage.SnapshotVersion,
		SavedAt:    time.Now(),
		NextNumber: l.nextNumber,
	}
	for _, a := range l.accounts {
		rec := storage.AccountRecord{
			Number:  a.Number(),
			Name:    a.Name(),
			PIN:     a.PIN(),
			Balance: a.Balance(),
		}
		for _, tx := range a.Transactions() {
			rec.Transactions = append(rec.Transactions, storage.TransactionRecord{
				ID:      tx.ID,
				Time:    tx.Time,
				Note:    tx.Note,
				Amount:  tx.Amount,
				Balance: tx.Balance,
			})
		}
		snap.Accounts = append(snap.Accounts, rec)
	}
	return snap
}

// FromSnapshot reconstructs a ledger from a storage snapshot. The result is
// observably identical to the ledger the snapshot was exported from.
//
// The allocator is validated along with the account records: it must not
// sit below the starting account number, and every account number must be
// one the allocator could have issued, so a restored ledger can never hand
// out an existing number again.
func FromSnapshot(snap storage.Snapshot) (*Ledger, error) {
	if snap.NextNumber < FirstAccountNumber {
		return nil, fmt.Errorf("%w: allocator %d is below the starting account number %d",
			storage.ErrInvalidSnapshot, snap.NextNumber, int64(FirstAccountNumber))
	}
	l := New()
	l.nextNumber = snap.NextNumber
	for _, rec := range snap.Accounts {
		if rec.Number >= snap.NextNumber {
			return nil, fmt.Errorf("%w: account number %d was never issued by allocator %d",
				storage.ErrInvalidSnapshot, rec.Number, snap.NextNumber)
		}
		if _, exists := l.accounts[rec.Number]; exists {
			return nil, fmt.Errorf("%w: duplicate account number %d", storage.ErrInvalidSnapshot, rec.Number)
		}
		if rec.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: negative balance on account %d", storage.ErrInvalidSnapshot, rec.Number)
		}
		var transactions []account.Transaction
		for _, tx := range rec.Transactions {
			transactions = append(transactions, account.NewTransactionFromData(
				tx.ID, tx.Time, tx.Note, tx.Amount, tx.Balance,
			))
		}
		l.accounts[rec.Number] = account.Hydrate(
			rec.Number, rec.Name, rec.PIN, rec.Balance, transactions,
		)
	}
	return l, nil
}
