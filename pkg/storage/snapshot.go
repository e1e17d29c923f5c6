// Package storage persists whole-ledger snapshots as versioned JSON files.
//
// The snapshot schema is explicit and self-validating: a load can tell
// "file absent" apart from "not a valid snapshot", and a version field
// distinguishes "corrupt" from "older schema".
package storage

import (
	"time"

	"github.com/amirasaad/miniatm/pkg/money"
	"github.com/google/uuid"
)

// SnapshotVersion is the current on-disk schema version. Load rejects
// snapshots with any other version.
const SnapshotVersion = 1

// Snapshot is a complete serialized copy of the ledger's state: every
// account with its balance, PIN, and transaction log, plus the account
// number allocator.
type Snapshot struct {
	Version    int             `json:"version"`
	SavedAt    time.Time       `json:"saved_at"`
	NextNumber int64           `json:"next_account_number"`
	Accounts   []AccountRecord `json:"accounts"`
}

// AccountRecord is the persisted form of one account. Balance encodes as a
// bare smallest-unit integer.
type AccountRecord struct {
	Number       int64               `json:"number"`
	Name         string              `json:"name"`
	PIN          string              `json:"pin"`
	Balance      money.Money         `json:"balance"`
	Transactions []TransactionRecord `json:"transactions"`
}

// TransactionRecord is the persisted form of one log entry. Amount and
// Balance encode as bare smallest-unit integers.
type TransactionRecord struct {
	ID      uuid.UUID   `json:"id"`
	Time    time.Time   `json:"time"`
	Note    string      `json:"note"`
	Amount  money.Money `json:"amount"`
	Balance money.Money `json:"balance"`
}
